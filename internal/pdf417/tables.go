package pdf417

// Mode latch and shift codewords. Codeword values 900 and above are
// reserved for mode control; data codewords occupy [0, 900).
const (
	latchText        = 900
	latchByte        = 901 // byte count not a multiple of 6
	latchNumeric     = 902
	shiftByte        = 913 // single byte, text sub-mode retained
	latchByteFull    = 924 // byte count a multiple of 6
	padCodeword      = 900 // trailing text latches are inert
	maxDataCodeword  = 899
	maxTotalCodeword = 928
)

// Text compaction sub-modes. Two sub-mode values pack into one codeword
// (high*30 + low).
type textSubMode int

const (
	subUpper textSubMode = iota
	subLower
	subMixed
	subPunct
)

// Sub-mode control values.
const (
	textLatchLower  = 27 // from Upper or Mixed
	textLatchMixed  = 28 // from Upper or Lower
	textLatchUpper  = 28 // from Mixed
	textLatchPunct  = 25 // from Mixed
	textExitPunct   = 29 // from Punct back to Upper
	textShiftUpper  = 27 // from Lower, one value
	textShiftPunct  = 29 // from Upper, Lower or Mixed, one value
	textPadValue    = 29 // fills the low half of an odd final codeword
	textValuesPerCW = 2
)

var (
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ "
	lowerChars = "abcdefghijklmnopqrstuvwxyz "
	// Index 25 of the mixed sub-mode is the punctuation latch, not a
	// character; the placeholder byte is skipped when building the table.
	mixedChars = "0123456789&\r\t,:#-.$/+%*=^\x00 "
	punctChars = ";<>@[\\]_`~!\r\t,:\n-.$/\"|*()?{}'"
)

// textValue[sub][b] is the sub-mode value for byte b, or -1.
var textValue [4][256]int

func init() {
	for sub := range textValue {
		for b := range textValue[sub] {
			textValue[sub][b] = -1
		}
	}
	for i, c := range []byte(upperChars) {
		textValue[subUpper][c] = i
	}
	for i, c := range []byte(lowerChars) {
		textValue[subLower][c] = i
	}
	for i, c := range []byte(mixedChars) {
		if c != 0 {
			textValue[subMixed][c] = i
		}
	}
	for i, c := range []byte(punctChars) {
		textValue[subPunct][c] = i
	}
}

// isTextByte reports whether b is encodable in some text sub-mode.
func isTextByte(b byte) bool {
	return textValue[subUpper][b] >= 0 || textValue[subLower][b] >= 0 ||
		textValue[subMixed][b] >= 0 || textValue[subPunct][b] >= 0
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
