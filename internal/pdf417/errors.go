package pdf417

import "errors"

var (
	// ErrSymbolTooLarge is returned when the data, pad and check codewords
	// would exceed the symbology's capacity of 928 codewords (or 90 rows).
	ErrSymbolTooLarge = errors.New("pdf417: symbol too large")

	// ErrMalformedSymbol is returned when a decoded codeword stream is
	// structurally inconsistent: wrong codeword count, an out-of-range
	// value, or an incomplete final compaction group.
	ErrMalformedSymbol = errors.New("pdf417: malformed symbol")

	// ErrChecksumFailed is returned when error correction cannot reconcile
	// the syndromes at the symbol's security level.
	ErrChecksumFailed = errors.New("pdf417: checksum failed")
)
