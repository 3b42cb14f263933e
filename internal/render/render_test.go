package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahrimdon/pdf417-decoder/internal/pdf417"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, c)

	for _, bad := range []string{"", "red", "#fff", "#zzzzzz", "ff8000"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestPreviewDimensions(t *testing.T) {
	m, err := pdf417.Encode([]byte("DCSSMITH\nDACJOHN\n"), pdf417.DefaultOptions())
	require.NoError(t, err)

	opts := Options{Scale: 2, AspectRatio: 3}
	img, err := Preview(m, opts)
	require.NoError(t, err)

	rowWidth := len(pdf417.StartPattern) + (m.Columns+2)*10 + len(pdf417.StopPattern)
	assert.Equal(t, rowWidth*2, img.Bounds().Dx())
	assert.Equal(t, m.Rows*2*3, img.Bounds().Dy())
}

func TestPreviewValidatesOptions(t *testing.T) {
	m, err := pdf417.Encode([]byte("x"), pdf417.DefaultOptions())
	require.NoError(t, err)

	_, err = Preview(m, Options{Scale: 0, AspectRatio: 1})
	assert.Error(t, err)
	_, err = Preview(m, Options{Scale: 1, AspectRatio: 0})
	assert.Error(t, err)
	_, err = Preview(nil, DefaultOptions())
	assert.Error(t, err)
}

func TestPreviewUsesConfiguredColors(t *testing.T) {
	m, err := pdf417.Encode([]byte("COLORS"), pdf417.DefaultOptions())
	require.NoError(t, err)

	fg := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	bg := color.NRGBA{R: 240, G: 250, B: 255, A: 255}
	img, err := Preview(m, Options{Scale: 1, AspectRatio: 1, Foreground: fg, Background: bg})
	require.NoError(t, err)

	// The start pattern begins with foreground modules at the left edge.
	assert.Equal(t, fg, color.NRGBAModel.Convert(img.At(0, 0)))

	seen := map[color.NRGBA]bool{}
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		seen[color.NRGBAModel.Convert(img.At(x, 0)).(color.NRGBA)] = true
	}
	assert.True(t, seen[fg])
	assert.True(t, seen[bg])
	assert.Len(t, seen, 2)
}
