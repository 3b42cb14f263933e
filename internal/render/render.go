// Package render draws a codeword-level preview of a PDF417 symbol
// matrix. This is a visual aid, not a symbology-compliant rasterization:
// bar-level rendering belongs to an external renderer that consumes the
// matrix. The preview maps each codeword to its ten-bit module pattern,
// framed by the symbology's start and stop patterns, so the output keeps
// the barcode's proportions and row structure.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/Ahrimdon/pdf417-decoder/internal/pdf417"
)

const codewordBits = 10 // codeword values fit in [0, 929)

// Options controls preview geometry and colors.
type Options struct {
	// Scale is the pixel width of one module.
	Scale int

	// AspectRatio is the row height in multiples of the module width.
	AspectRatio float64

	// Foreground and Background are the module colors. Nil defaults to
	// black on white.
	Foreground color.Color
	Background color.Color
}

// DefaultOptions mirrors the original tool's rendering defaults.
func DefaultOptions() Options {
	return Options{Scale: 3, AspectRatio: 3.0}
}

// ParseColor parses a #rrggbb hex color.
func ParseColor(s string) (color.NRGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("render: invalid color %q (expected #rrggbb)", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("render: invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Preview renders the matrix to an image.
func Preview(m *pdf417.SymbolMatrix, opts Options) (image.Image, error) {
	if m == nil || len(m.Codewords) == 0 {
		return nil, fmt.Errorf("render: empty matrix")
	}
	if opts.Scale < 1 {
		return nil, fmt.Errorf("render: scale %d must be at least 1", opts.Scale)
	}
	if opts.AspectRatio <= 0 {
		return nil, fmt.Errorf("render: aspect ratio %g must be positive", opts.AspectRatio)
	}
	fg := opts.Foreground
	if fg == nil {
		fg = color.Black
	}
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	rowWidth := len(pdf417.StartPattern) + len(m.Codewords[0])*codewordBits + len(pdf417.StopPattern)
	base := image.NewNRGBA(image.Rect(0, 0, rowWidth, len(m.Codewords)))
	for y, row := range m.Codewords {
		x := 0
		x = drawPattern(base, x, y, pdf417.StartPattern, fg, bg)
		for _, cw := range row {
			for bit := codewordBits - 1; bit >= 0; bit-- {
				c := bg
				if cw>>bit&1 == 1 {
					c = fg
				}
				base.Set(x, y, c)
				x++
			}
		}
		drawPattern(base, x, y, pdf417.StopPattern, fg, bg)
	}

	width := rowWidth * opts.Scale
	height := int(float64(len(m.Codewords)) * float64(opts.Scale) * opts.AspectRatio)
	if height < len(m.Codewords) {
		height = len(m.Codewords)
	}
	return imaging.Resize(base, width, height, imaging.NearestNeighbor), nil
}

func drawPattern(img *image.NRGBA, x, y int, pattern string, fg, bg color.Color) int {
	for _, bit := range pattern {
		c := bg
		if bit == '1' {
			c = fg
		}
		img.Set(x, y, c)
		x++
	}
	return x
}
