//go:build barcode_gozxing

package barcode

import (
	"context"
	"image"
	"image/draw"

	gozxing "github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/common"
	"github.com/makiuchi-d/gozxing/multi"
	"github.com/makiuchi-d/gozxing/pdf417"
)

// newDefaultBackend returns the gozxing-backed implementation when the
// build tag is enabled.
func newDefaultBackend() (Backend, error) { return &gozxingBackend{}, nil }

type gozxingBackend struct{}

func (b *gozxingBackend) Scan(_ context.Context, img image.Image, opts Options) ([]Result, error) {
	if !opts.ROI.Empty() {
		if roiImg, ok := subImage(img, opts.ROI); ok {
			img = roiImg
		}
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_POSSIBLE_FORMATS: []gozxing.BarcodeFormat{
			gozxing.BarcodeFormat_PDF_417,
		},
	}
	if opts.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	source := gozxing.NewLuminanceSourceFromImage(img)
	bitmap := gozxing.NewBinaryBitmap(common.NewHybridBinarizer(source))

	reader := multi.NewGenericMultipleBarcodeReader(pdf417.NewPDF417Reader())
	results, err := reader.DecodeMultiple(bitmap, hints)
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(results))
	for _, r := range results {
		var points []Point
		for _, p := range r.GetResultPoints() {
			points = append(points, Point{X: int(p.GetX()), Y: int(p.GetY())})
		}
		out = append(out, Result{
			Payload:    r.GetText(),
			Points:     points,
			Confidence: -1, // gozxing does not provide calibrated confidence
		})
	}
	return out, nil
}

// subImage returns a sub-image if supported by the image implementation.
func subImage(img image.Image, r image.Rectangle) (image.Image, bool) {
	rb := r.Intersect(img.Bounds())
	if rb.Empty() {
		return nil, false
	}
	type subImager interface{ SubImage(r image.Rectangle) image.Image }
	if s, ok := img.(subImager); ok {
		return s.SubImage(rb), true
	}
	dst := image.NewRGBA(image.Rect(0, 0, rb.Dx(), rb.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rb.Min, draw.Src)
	return dst, true
}
