// Package barcode provides a pluggable interface for locating and reading
// a PDF417 symbol in a raster image. The codec itself never touches
// pixels; this package is the seam to an external optical detector.
//
// The default build has no concrete backend to avoid adding external
// dependencies implicitly. Enable the gozxing-backed reader with the
// build tag `barcode_gozxing`:
//
//	go build -tags=barcode_gozxing ./...
package barcode
