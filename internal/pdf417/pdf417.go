// Package pdf417 implements the codeword-level PDF417 symbol codec:
// Text/Byte/Numeric data compaction, GF(929) Reed-Solomon error
// correction, and row/column symbol layout with row-indicator codewords.
//
// The package is purely computational and stateless across calls; its
// lookup tables are built once at init and shared immutably, so
// concurrent Encode/Decode calls on separate inputs need no
// synchronization. Pixel rendering and optical symbol detection are out
// of scope: Encode produces a codeword matrix for an external renderer,
// and Decode consumes the codeword matrix an external detector recovered.
package pdf417

import "fmt"

// Options controls symbol generation.
type Options struct {
	// Columns is the number of data codewords per row, 1-30.
	Columns int

	// SecurityLevel selects the error-correction level, 0-8. Level l adds
	// 2^(l+1) check codewords and corrects up to 2^l substitutions.
	SecurityLevel int
}

// DefaultOptions mirrors the generation defaults of the original tool.
func DefaultOptions() Options {
	return Options{Columns: 10, SecurityLevel: 2}
}

func (o Options) validate() error {
	if o.Columns < MinColumns || o.Columns > MaxColumns {
		return fmt.Errorf("pdf417: columns %d out of range [%d, %d]",
			o.Columns, MinColumns, MaxColumns)
	}
	return ValidateSecurityLevel(o.SecurityLevel)
}

// DecodeResult carries a decoded payload plus the symbol parameters
// recovered from the row indicators.
type DecodeResult struct {
	Payload            []byte
	Rows               int
	Columns            int
	SecurityLevel      int
	CorrectedCodewords int
}

// Encode compacts payload into codewords, appends check codewords for the
// configured security level, and lays the result out as a symbol matrix.
func Encode(payload []byte, opts Options) (*SymbolMatrix, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return layoutSymbol(compact(payload), opts.Columns, opts.SecurityLevel)
}

// Decode reassembles a scanned codeword grid (rows in any order), runs
// error correction, and expands the compacted data back into the original
// payload.
func Decode(grid [][]int) (*DecodeResult, error) {
	region, rows, columns, level, err := reassemble(grid)
	if err != nil {
		return nil, err
	}

	checkCount := CheckCodewordCount(level)
	if len(region) < 1+checkCount {
		return nil, fmt.Errorf("%w: %d codewords cannot hold %d check codewords",
			ErrMalformedSymbol, len(region), checkCount)
	}
	corrected, err := correctErrors(region, checkCount)
	if err != nil {
		return nil, err
	}

	descriptor := region[0]
	if descriptor < 1 || descriptor > len(region)-checkCount {
		return nil, fmt.Errorf("%w: length descriptor %d outside data region of %d codewords",
			ErrMalformedSymbol, descriptor, len(region)-checkCount)
	}
	payload, err := decompact(region[1:descriptor])
	if err != nil {
		return nil, err
	}
	return &DecodeResult{
		Payload:            payload,
		Rows:               rows,
		Columns:            columns,
		SecurityLevel:      level,
		CorrectedCodewords: corrected,
	}, nil
}

// DecodeMatrix is a convenience wrapper for matrices produced by Encode.
func DecodeMatrix(m *SymbolMatrix) (*DecodeResult, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrMalformedSymbol)
	}
	return Decode(m.Codewords)
}
