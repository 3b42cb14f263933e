package barcode

import (
	"context"
	"image"
)

// Options controls backend scanning behavior.
type Options struct {
	// TryHarder enables more exhaustive search (slower but more robust).
	TryHarder bool

	// ROI optionally restricts scanning to a sub-rectangle of the image.
	// If zero-sized or out of bounds, backends should ignore it.
	ROI image.Rectangle
}

// Point is an integer point in image coordinates.
type Point struct {
	X int
	Y int
}

// Result is the detector's best-effort reading of one PDF417 symbol.
type Result struct {
	// Payload is the decoded data stream of the symbol.
	Payload string

	// Points are corner or key points of the located symbol, if available.
	Points []Point

	// Confidence is the backend's confidence in the reading, or -1 when
	// the backend does not provide one.
	Confidence float64
}

// Backend is a pluggable PDF417 image reader implementation.
type Backend interface {
	Scan(ctx context.Context, img image.Image, opts Options) ([]Result, error)
}

// NewBackend returns the default backend implementation. The default
// build has no backend; enable one via build tags.
func NewBackend() (Backend, error) { return newDefaultBackend() }
