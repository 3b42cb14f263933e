package pdf417

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, payload []byte) {
	t.Helper()
	codewords := compact(payload)
	for _, cw := range codewords {
		require.GreaterOrEqual(t, cw, 0)
		require.Less(t, cw, fieldSize)
	}
	decoded, err := decompact(codewords)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestCompactRoundTripText(t *testing.T) {
	cases := []string{
		"SMITH",
		"JOHN SMITH",
		"Hello, World!",
		"mixed Case With 123 digits",
		"punctuation: ;<>@[]{}?!",
		"UPPER lower UPPER lower",
		"a",
		"A",
		" ",
	}
	for _, tc := range cases {
		t.Run(tc, func(t *testing.T) {
			roundTrip(t, []byte(tc))
		})
	}
}

func TestCompactRoundTripNumeric(t *testing.T) {
	cases := []string{
		"1234567890123",               // exactly the numeric threshold
		"0000000000000",               // leading zeros must survive
		strings.Repeat("9", 44),       // one full group
		strings.Repeat("123", 30),     // more than one group
		strings.Repeat("0", 45),       // full group plus single digit
		"98765432109876543210987654321098765432109876543", // 47 digits
	}
	for _, tc := range cases {
		t.Run(tc[:8], func(t *testing.T) {
			roundTrip(t, []byte(tc))
		})
	}
}

func TestCompactRoundTripBytes(t *testing.T) {
	cases := [][]byte{
		{0x00},
		{0xff},
		{0x01, 0x02, 0x03, 0x04, 0x05, 0x06},             // one full group (924 latch)
		{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},       // group plus one
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},              // 6q+5 boundary
		{0xde, 0xad, 0xbe, 0xef, 0x00, 0x00, 0x00, 0xff},
	}
	for _, tc := range cases {
		roundTrip(t, tc)
	}
}

func TestCompactRoundTripMixedSegments(t *testing.T) {
	cases := []string{
		"ANSI 636014040002DL00410278ZV03190008",
		"DAQD12345678\nDCSSMITH\nDAC JOHN",
		"@\n\x1e\rANSI 636000090002DL",
		"text then 12345678901234567890 then more text",
		"\x00\x01binary\x02 with text runs inside it\x03\x04",
	}
	for _, tc := range cases {
		roundTrip(t, []byte(tc))
	}
}

func TestCompactRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 200 {
		payload := make([]byte, 1+rng.Intn(120))
		for i := range payload {
			payload[i] = byte(rng.Intn(256))
		}
		roundTrip(t, payload)
	}
}

func TestCompactRoundTripRandomASCII(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	for range 200 {
		payload := make([]byte, 1+rng.Intn(120))
		for i := range payload {
			payload[i] = byte(0x20 + rng.Intn(0x5f))
		}
		roundTrip(t, payload)
	}
}

func TestCompactEmptyPayload(t *testing.T) {
	assert.Empty(t, compact(nil))
	decoded, err := decompact(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestSplitSegments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		modes []CompactionMode
	}{
		{"all text", "HELLO WORLD", []CompactionMode{ModeText}},
		{"long digits", "12345678901234", []CompactionMode{ModeNumeric}},
		{"short digits stay text", "AB 1234 CD", []CompactionMode{ModeText}},
		{"binary only", "\x00\x01\x02", []CompactionMode{ModeByte}},
		{"text then digits", "NAME:12345678901234567", []CompactionMode{ModeText, ModeNumeric}},
		{"short text is bytes", "ab\x00", []CompactionMode{ModeByte}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := splitSegments([]byte(tt.input))
			modes := make([]CompactionMode, len(segs))
			total := 0
			for i, s := range segs {
				modes[i] = s.mode
				total += len(s.data)
			}
			assert.Equal(t, tt.modes, modes)
			assert.Equal(t, len(tt.input), total)
		})
	}
}

func TestCompactNumericDensity(t *testing.T) {
	// 44 digits must pack into a latch plus 15 codewords.
	codewords := compact([]byte(strings.Repeat("7", 44)))
	assert.Equal(t, 16, len(codewords))
	assert.Equal(t, latchNumeric, codewords[0])
}

func TestDecompactMalformed(t *testing.T) {
	tests := []struct {
		name      string
		codewords []int
	}{
		{"byte shift at end", []int{shiftByte}},
		{"full byte latch short group", []int{latchByteFull, 1, 2, 3}},
		{"byte shift outside text", []int{latchNumeric, shiftByte, 5}},
		{"unknown mode codeword", []int{903}},
		{"numeric group without leading one", []int{latchNumeric, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decompact(tt.codewords)
			assert.ErrorIs(t, err, ErrMalformedSymbol)
		})
	}
}
