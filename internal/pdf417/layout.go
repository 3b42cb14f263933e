package pdf417

import (
	"fmt"
	"sort"
)

// Symbol geometry limits from the symbology.
const (
	MinColumns = 1
	MaxColumns = 30
	MinRows    = 3
	MaxRows    = 90
)

// Start and stop patterns, exposed as module-level bit strings for
// renderers. The codec itself never rasterizes them.
const (
	StartPattern = "11111111010101000"
	StopPattern  = "111111101000101001"
)

// SymbolMatrix is the row/column grid of codewords forming one symbol.
// Each row is columns+2 wide: a left row-indicator codeword, the data
// codewords, and a right row-indicator codeword. The indicators jointly
// encode the row index, total row count, column count and security level,
// so rows can be validated and reordered independently of scan order.
type SymbolMatrix struct {
	Rows          int     `json:"rows"`
	Columns       int     `json:"columns"`
	SecurityLevel int     `json:"security_level"`
	Codewords     [][]int `json:"codewords"`
}

// Row-indicator slot identifiers: the three values cycled through the
// cluster sequence. Slot 0 carries (rows-1)/3, slot 1 carries
// level*3 + (rows-1)%3, slot 2 carries columns-1.
const (
	slotRowsHigh = 0
	slotLevelRow = 1
	slotColumns  = 2
)

// leftIndicator returns the left row-indicator codeword for the given row.
func leftIndicator(row, rows, columns, level int) int {
	idx := 30 * (row / 3)
	switch row % 3 {
	case 0:
		return idx + (rows-1)/3
	case 1:
		return idx + level*3 + (rows-1)%3
	default:
		return idx + columns - 1
	}
}

// rightIndicator returns the right row-indicator codeword; it cycles the
// same three values one cluster behind the left.
func rightIndicator(row, rows, columns, level int) int {
	idx := 30 * (row / 3)
	switch row % 3 {
	case 0:
		return idx + columns - 1
	case 1:
		return idx + (rows-1)/3
	default:
		return idx + level*3 + (rows-1)%3
	}
}

// layoutSymbol arranges the data region (length descriptor, data
// codewords, pad and check codewords) into a SymbolMatrix.
func layoutSymbol(data []int, columns, level int) (*SymbolMatrix, error) {
	checkCount := CheckCodewordCount(level)
	needed := 1 + len(data) + checkCount
	if needed > maxTotalCodeword {
		return nil, fmt.Errorf("%w: %d codewords exceed the %d codeword capacity",
			ErrSymbolTooLarge, needed, maxTotalCodeword)
	}

	rows := (needed + columns - 1) / columns
	if rows < MinRows {
		rows = MinRows
	}
	if rows > MaxRows || rows*columns > maxTotalCodeword {
		return nil, fmt.Errorf("%w: %d codewords need %d rows of %d columns",
			ErrSymbolTooLarge, needed, rows, columns)
	}

	// Data region: descriptor, data, pad; the descriptor counts all three.
	descriptorCount := rows*columns - checkCount
	region := make([]int, 0, rows*columns)
	region = append(region, descriptorCount)
	region = append(region, data...)
	for len(region) < descriptorCount {
		region = append(region, padCodeword)
	}
	region = append(region, computeCheckCodewords(region, level)...)

	matrix := &SymbolMatrix{
		Rows:          rows,
		Columns:       columns,
		SecurityLevel: level,
		Codewords:     make([][]int, rows),
	}
	for r := range rows {
		row := make([]int, 0, columns+2)
		row = append(row, leftIndicator(r, rows, columns, level))
		row = append(row, region[r*columns:(r+1)*columns]...)
		row = append(row, rightIndicator(r, rows, columns, level))
		matrix.Codewords[r] = row
	}
	return matrix, nil
}

// rowHypothesis is one candidate reading of a scanned row's indicators.
type rowHypothesis struct {
	slots [3]int // slot values; -1 where the hypothesis carries none
}

// hypotheses derives the candidate cluster readings of one scanned row.
// Column count is already known from the grid width, which prunes two of
// the three cluster candidates for most rows.
func hypotheses(left, right, columns int) []rowHypothesis {
	if left/30 != right/30 {
		return nil
	}
	var out []rowHypothesis
	for cluster := range 3 {
		leftSlot := cluster
		rightSlot := (cluster + 2) % 3
		slots := [3]int{-1, -1, -1}
		slots[leftSlot] = left % 30
		slots[rightSlot] = right % 30
		if slots[slotColumns] >= 0 && slots[slotColumns] != columns-1 {
			continue
		}
		out = append(out, rowHypothesis{slots: slots})
	}
	return out
}

// reassemble groups scanned rows back into codeword order. Rows may be
// presented in any order; the geometry is elected by scoring every
// candidate (row count, level) pair against the scanned indicators, and
// missing rows are zero-filled for the error-correction stage.
func reassemble(grid [][]int) (region []int, rows, columns, level int, err error) {
	if len(grid) == 0 {
		return nil, 0, 0, 0, fmt.Errorf("%w: empty matrix", ErrMalformedSymbol)
	}
	width := len(grid[0])
	columns = width - 2
	if columns < MinColumns || columns > MaxColumns {
		return nil, 0, 0, 0, fmt.Errorf("%w: %d columns out of range", ErrMalformedSymbol, columns)
	}
	for _, row := range grid {
		if len(row) != width {
			return nil, 0, 0, 0, fmt.Errorf("%w: ragged rows", ErrMalformedSymbol)
		}
		for _, cw := range row {
			if cw < 0 || cw >= fieldSize {
				return nil, 0, 0, 0, fmt.Errorf("%w: codeword %d out of range", ErrMalformedSymbol, cw)
			}
		}
	}

	// Candidate slot values gathered from every cluster reading of every
	// row. A spurious reading can propose a wrong value, so the pair is
	// not elected by counting raw readings: each candidate (rows, level)
	// fully determines both indicators of every row index, and the pair
	// explaining the most scanned rows wins. Candidates are scanned in
	// ascending order so ties resolve deterministically.
	var slotValues [2][]int
	for _, row := range grid {
		for _, h := range hypotheses(row[0], row[width-1], columns) {
			for slot := range 2 {
				if h.slots[slot] >= 0 {
					slotValues[slot] = appendUnique(slotValues[slot], h.slots[slot])
				}
			}
		}
	}
	sort.Ints(slotValues[0])
	sort.Ints(slotValues[1])

	bestScore := 0
	for _, rowsHigh := range slotValues[0] {
		for _, levelRow := range slotValues[1] {
			candRows := 3*rowsHigh + levelRow%3 + 1
			candLevel := levelRow / 3
			if candRows < MinRows || candRows > MaxRows || candLevel > MaxSecurityLevel {
				continue
			}
			score := 0
			for _, row := range grid {
				if matchRowIndex(row[0], row[width-1], candRows, columns, candLevel) >= 0 {
					score++
				}
			}
			if score > bestScore {
				bestScore, rows, level = score, candRows, candLevel
			}
		}
	}
	if bestScore == 0 {
		return nil, 0, 0, 0, fmt.Errorf("%w: row indicators unreadable", ErrMalformedSymbol)
	}

	// Place each scanned row at the index its indicators claim under the
	// elected geometry. Rows with torn indicators match nowhere and are
	// left to the error-correction stage.
	placed := make([][]int, rows)
	for _, row := range grid {
		if r := matchRowIndex(row[0], row[width-1], rows, columns, level); r >= 0 && placed[r] == nil {
			placed[r] = row[1 : width-1]
		}
	}

	region = make([]int, 0, rows*columns)
	for _, row := range placed {
		if row == nil {
			// Missing row: zero-fill and leave recovery to the
			// error-correction stage.
			row = make([]int, columns)
		}
		region = append(region, row...)
	}
	return region, rows, columns, level, nil
}

// matchRowIndex returns the row index whose left and right indicators
// under the given geometry both equal the scanned pair, or -1.
func matchRowIndex(left, right, rows, columns, level int) int {
	if left/30 != right/30 {
		return -1
	}
	for cluster := range 3 {
		r := 3*(left/30) + cluster
		if r >= rows {
			break
		}
		if leftIndicator(r, rows, columns, level) == left &&
			rightIndicator(r, rows, columns, level) == right {
			return r
		}
	}
	return -1
}

func appendUnique(values []int, v int) []int {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
