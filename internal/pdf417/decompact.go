package pdf417

import (
	"fmt"
	"math/big"
)

// decompact reconstructs the original byte payload from data codewords.
// Decoding starts in text mode; latch codewords switch modes and 913
// shifts insert a single raw byte without leaving text mode.
func decompact(codewords []int) ([]byte, error) {
	var out []byte
	mode := ModeText
	sub := subUpper
	i := 0
	for i < len(codewords) {
		cw := codewords[i]
		switch {
		case cw == latchText:
			mode = ModeText
			sub = subUpper
			i++
		case cw == latchByte || cw == latchByteFull:
			mode = ModeByte
			i++
			run, n := dataRun(codewords[i:])
			decoded, err := expandBytes(run, cw == latchByteFull)
			if err != nil {
				return nil, err
			}
			out = append(out, decoded...)
			i += n
		case cw == latchNumeric:
			mode = ModeNumeric
			i++
			run, n := dataRun(codewords[i:])
			decoded, err := expandNumeric(run)
			if err != nil {
				return nil, err
			}
			out = append(out, decoded...)
			i += n
		case cw == shiftByte:
			if mode != ModeText {
				return nil, fmt.Errorf("%w: byte shift outside text mode", ErrMalformedSymbol)
			}
			if i+1 >= len(codewords) {
				return nil, fmt.Errorf("%w: byte shift at end of data", ErrMalformedSymbol)
			}
			if codewords[i+1] > 255 {
				return nil, fmt.Errorf("%w: byte shift value %d out of range", ErrMalformedSymbol, codewords[i+1])
			}
			out = append(out, byte(codewords[i+1]))
			i += 2
		case cw > maxDataCodeword:
			return nil, fmt.Errorf("%w: unrecognized mode codeword %d", ErrMalformedSymbol, cw)
		default:
			if mode != ModeText {
				// Data codewords outside a latch run can only occur in
				// text mode; byte and numeric runs are consumed above.
				return nil, fmt.Errorf("%w: stray codeword %d in %s mode", ErrMalformedSymbol, cw, mode)
			}
			run, n := dataRun(codewords[i:])
			decoded, nextSub := expandText(run, sub)
			sub = nextSub
			out = append(out, decoded...)
			i += n
		}
	}
	return out, nil
}

// dataRun returns the prefix of codewords below the mode-control range and
// its length.
func dataRun(codewords []int) ([]int, int) {
	n := 0
	for n < len(codewords) && codewords[n] <= maxDataCodeword {
		n++
	}
	return codewords[:n], n
}

// expandText decodes a run of text codewords starting in the given
// sub-mode, returning the decoded bytes and the sub-mode in effect at the
// end of the run.
func expandText(run []int, sub textSubMode) ([]byte, textSubMode) {
	values := make([]int, 0, len(run)*textValuesPerCW)
	for _, cw := range run {
		values = append(values, cw/30, cw%30)
	}

	var out []byte
	shifted := textSubMode(-1)
	for _, v := range values {
		active := sub
		if shifted >= 0 {
			active = shifted
			shifted = -1
		}

		switch active {
		case subUpper, subLower:
			switch v {
			case 27:
				if active == subUpper {
					sub = subLower
				} else {
					shifted = subUpper
				}
				continue
			case 28:
				sub = subMixed
				continue
			case 29:
				shifted = subPunct
				continue
			}
		case subMixed:
			switch v {
			case textLatchPunct:
				sub = subPunct
				continue
			case 27:
				sub = subLower
				continue
			case 28:
				sub = subUpper
				continue
			case 29:
				shifted = subPunct
				continue
			}
		case subPunct:
			if v == textExitPunct {
				sub = subUpper
				continue
			}
		}

		if b := textByte(active, v); b != 0 {
			out = append(out, b)
		}
	}
	return out, sub
}

// textByte returns the byte for a sub-mode value, or 0 for control values
// (which the caller has already consumed).
func textByte(sub textSubMode, v int) byte {
	var table string
	switch sub {
	case subUpper:
		table = upperChars
	case subLower:
		table = lowerChars
	case subMixed:
		table = mixedChars
	case subPunct:
		table = punctChars
	}
	if v < 0 || v >= len(table) {
		return 0
	}
	b := table[v]
	if b == 0 {
		return 0
	}
	return b
}

// expandBytes decodes a byte-compaction run. Under the full latch (924)
// the run must be whole 5-codeword groups. Under 901 a 5-codeword group
// counts as a 6-byte group only while more codewords follow; a trailing
// group of fewer than five (or exactly five at the very end) decodes one
// byte per codeword.
func expandBytes(run []int, full bool) ([]byte, error) {
	var out []byte
	if full {
		if len(run) == 0 || len(run)%byteGroupCodewords != 0 {
			return nil, fmt.Errorf("%w: byte compaction run of %d codewords under full latch",
				ErrMalformedSymbol, len(run))
		}
		for i := 0; i < len(run); i += byteGroupCodewords {
			out = appendByteGroup(out, run[i:i+byteGroupCodewords])
		}
		return out, nil
	}

	i := 0
	for len(run)-i > byteGroupCodewords {
		out = appendByteGroup(out, run[i:i+byteGroupCodewords])
		i += byteGroupCodewords
	}
	for ; i < len(run); i++ {
		if run[i] > 255 {
			return nil, fmt.Errorf("%w: byte value %d out of range", ErrMalformedSymbol, run[i])
		}
		out = append(out, byte(run[i]))
	}
	return out, nil
}

func appendByteGroup(out []byte, group []int) []byte {
	var value uint64
	for _, cw := range group {
		value = value*900 + uint64(cw)
	}
	var decoded [byteGroupSize]byte
	for i := byteGroupSize - 1; i >= 0; i-- {
		decoded[i] = byte(value & 0xff)
		value >>= 8
	}
	return append(out, decoded[:]...)
}

// expandNumeric decodes a numeric-compaction run: groups of up to 15
// codewords convert from base 900 to a decimal string whose leading 1 is
// stripped.
func expandNumeric(run []int) ([]byte, error) {
	const groupCodewords = 15
	var out []byte
	for len(run) > 0 {
		n := min(len(run), groupCodewords)
		group := run[:n]
		run = run[n:]

		value := new(big.Int)
		for _, cw := range group {
			value.Mul(value, big.NewInt(900))
			value.Add(value, big.NewInt(int64(cw)))
		}
		digits := value.String()
		if len(digits) < 2 || digits[0] != '1' {
			return nil, fmt.Errorf("%w: numeric group does not start with leading 1", ErrMalformedSymbol)
		}
		out = append(out, digits[1:]...)
	}
	return out, nil
}
