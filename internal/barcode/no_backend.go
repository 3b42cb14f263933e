//go:build !barcode_gozxing

package barcode

import (
	"context"
	"errors"
	"image"
)

// ErrNoBackend is returned when no detector backend is linked into the
// binary.
var ErrNoBackend = errors.New("barcode: no detector backend linked; build with -tags=barcode_gozxing")

type defaultBackend struct{}

func newDefaultBackend() (Backend, error) { return &defaultBackend{}, nil }

func (d *defaultBackend) Scan(_ context.Context, _ image.Image, _ Options) ([]Result, error) {
	return nil, ErrNoBackend
}
