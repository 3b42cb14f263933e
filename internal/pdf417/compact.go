package pdf417

import "math/big"

// Compaction mode selection thresholds. Switching modes costs a latch
// codeword, so short runs are not worth breaking out of the current mode:
// numeric compaction beats text only from 13 digits up, and text beats
// byte from 5 characters up. The same thresholds are used by common
// PDF417 encoders, which keeps our output comparable.
const (
	minNumericRun = 13
	minTextRun    = 5

	numericGroupDigits = 44
	byteGroupSize      = 6
	byteGroupCodewords = 5
)

// CompactionMode identifies one of the three PDF417 data compaction modes.
type CompactionMode int

const (
	ModeText CompactionMode = iota
	ModeByte
	ModeNumeric
)

func (m CompactionMode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeByte:
		return "byte"
	case ModeNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

type segment struct {
	mode CompactionMode
	data []byte
}

// splitSegments partitions data into mode runs: maximal digit runs of at
// least minNumericRun become numeric segments, remaining text runs of at
// least minTextRun become text segments, everything else falls back to
// byte compaction. Adjacent segments of equal mode are merged.
func splitSegments(data []byte) []segment {
	var segments []segment
	appendSegment := func(mode CompactionMode, chunk []byte) {
		if len(chunk) == 0 {
			return
		}
		if n := len(segments); n > 0 && segments[n-1].mode == mode {
			segments[n-1].data = append(segments[n-1].data, chunk...)
			return
		}
		segments = append(segments, segment{mode: mode, data: append([]byte(nil), chunk...)})
	}

	splitText := func(chunk []byte) {
		for len(chunk) > 0 {
			i := 0
			for i < len(chunk) && isTextByte(chunk[i]) {
				i++
			}
			if i >= minTextRun {
				appendSegment(ModeText, chunk[:i])
			} else if i > 0 {
				appendSegment(ModeByte, chunk[:i])
			}
			chunk = chunk[i:]
			j := 0
			for j < len(chunk) && !isTextByte(chunk[j]) {
				j++
			}
			appendSegment(ModeByte, chunk[:j])
			chunk = chunk[j:]
		}
	}

	rest := data
	for len(rest) > 0 {
		i := 0
		for i < len(rest) && isDigit(rest[i]) {
			i++
		}
		if i >= minNumericRun {
			appendSegment(ModeNumeric, rest[:i])
			rest = rest[i:]
			continue
		}
		// Too short for numeric; scan forward to the next long digit run.
		j := i
		for j < len(rest) {
			k := j
			for k < len(rest) && isDigit(rest[k]) {
				k++
			}
			if k-j >= minNumericRun {
				break
			}
			if k == j {
				k++
			}
			j = k
		}
		splitText(rest[:j])
		rest = rest[j:]
	}
	return segments
}

// compact converts a byte payload into data codewords, switching
// compaction modes with latch codewords. The decoder's initial mode is
// text, so a leading text segment needs no latch.
func compact(data []byte) []int {
	var out []int
	mode := ModeText
	for i, seg := range splitSegments(data) {
		switch seg.mode {
		case ModeText:
			if mode != ModeText || i > 0 {
				// A latch also resets the sub-mode state, so it is
				// required between any two non-adjacent text runs.
				out = append(out, latchText)
			}
			out = appendTextCodewords(out, seg.data)
		case ModeByte:
			if len(seg.data)%byteGroupSize == 0 {
				out = append(out, latchByteFull)
			} else {
				out = append(out, latchByte)
			}
			out = appendByteCodewords(out, seg.data)
		case ModeNumeric:
			out = append(out, latchNumeric)
			out = appendNumericCodewords(out, seg.data)
		}
		mode = seg.mode
	}
	return out
}

// latchPaths[from][to] is the sub-mode value sequence that latches from
// one text sub-mode to another.
var latchPaths = [4][4][]int{
	subUpper: {
		subLower: {textLatchLower},
		subMixed: {textLatchMixed},
		subPunct: {textLatchMixed, textLatchPunct},
	},
	subLower: {
		subUpper: {textLatchMixed, textLatchUpper},
		subMixed: {textLatchMixed},
		subPunct: {textLatchMixed, textLatchPunct},
	},
	subMixed: {
		subUpper: {textLatchUpper},
		subLower: {textLatchLower},
		subPunct: {textLatchPunct},
	},
	subPunct: {
		subUpper: {textExitPunct},
		subLower: {textExitPunct, textLatchLower},
		subMixed: {textExitPunct, textLatchMixed},
	},
}

// appendTextCodewords encodes a text segment. Sub-mode state starts in
// uppercase (the state a text latch establishes) and single out-of-mode
// characters use shift values when the following character returns to the
// current sub-mode.
func appendTextCodewords(out []int, data []byte) []int {
	values := make([]int, 0, len(data)+4)
	sub := subUpper
	for i, b := range data {
		if v := textValue[sub][b]; v >= 0 {
			values = append(values, v)
			continue
		}

		nextInCurrent := i+1 >= len(data) || textValue[sub][data[i+1]] >= 0
		if nextInCurrent && sub != subPunct && textValue[subPunct][b] >= 0 {
			values = append(values, textShiftPunct, textValue[subPunct][b])
			continue
		}
		if nextInCurrent && sub == subLower && textValue[subUpper][b] >= 0 {
			values = append(values, textShiftUpper, textValue[subUpper][b])
			continue
		}

		target := chooseSubMode(sub, b)
		values = append(values, latchPaths[sub][target]...)
		values = append(values, textValue[target][b])
		sub = target
	}
	if len(values)%textValuesPerCW != 0 {
		values = append(values, textPadValue)
	}
	for i := 0; i < len(values); i += textValuesPerCW {
		out = append(out, values[i]*30+values[i+1])
	}
	return out
}

// chooseSubMode picks the cheapest sub-mode that can encode b from the
// current sub-mode, preferring earlier sub-modes on equal latch cost.
func chooseSubMode(from textSubMode, b byte) textSubMode {
	best := textSubMode(-1)
	bestCost := -1
	for _, to := range []textSubMode{subUpper, subLower, subMixed, subPunct} {
		if to == from || textValue[to][b] < 0 {
			continue
		}
		cost := len(latchPaths[from][to])
		if bestCost < 0 || cost < bestCost {
			best, bestCost = to, cost
		}
	}
	return best
}

// appendByteCodewords packs 6-byte groups into 5 base-900 codewords, with
// any remaining tail emitted as one codeword per byte.
func appendByteCodewords(out []int, data []byte) []int {
	for len(data) >= byteGroupSize {
		var value uint64
		for _, b := range data[:byteGroupSize] {
			value = value<<8 | uint64(b)
		}
		var group [byteGroupCodewords]int
		for i := byteGroupCodewords - 1; i >= 0; i-- {
			group[i] = int(value % 900)
			value /= 900
		}
		out = append(out, group[:]...)
		data = data[byteGroupSize:]
	}
	for _, b := range data {
		out = append(out, int(b))
	}
	return out
}

// appendNumericCodewords packs digit groups of up to 44 digits into
// base-900 codewords. Each group is prefixed with a leading 1 so that
// leading zeros in the digit run survive the base conversion.
func appendNumericCodewords(out []int, digits []byte) []int {
	base := big.NewInt(900)
	for len(digits) > 0 {
		n := min(len(digits), numericGroupDigits)
		group := digits[:n]
		digits = digits[n:]

		value := new(big.Int)
		value.SetString("1"+string(group), 10)
		var codewords []int
		mod := new(big.Int)
		for value.Sign() > 0 {
			value.DivMod(value, base, mod)
			codewords = append(codewords, int(mod.Int64()))
		}
		for i := len(codewords) - 1; i >= 0; i-- {
			out = append(out, codewords[i])
		}
	}
	return out
}
