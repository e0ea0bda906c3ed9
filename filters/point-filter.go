package filters

import (
	"errors"
	"image"

	"github.com/soypat/pixfx"
	"golang.org/x/sync/errgroup"
)

var errShapeMismatch = errors.New("pixel shape mismatch")

// RowFunc processes a contiguous run of pixels of a single row.
// src[0:bytesPerPixel] is the pixel at absolute image coordinates (x0, y) and
// width, height are the dimensions of the whole source image, not of the ROI.
// The function should iterate through pixels: for i := 0; i < len(src); i += bytesPerPixel { ... }
type RowFunc func(dst, src []byte, x0, y, width, height int)

// PointFilter applies a per-pixel transformation using a callback function.
// It handles the iteration, buffering, and ROI logic common to all per-pixel filters.
// The callback is invoked once per row with contiguous pixel data.
type PointFilter struct {
	In    pixfx.Shape
	Out   pixfx.Shape
	Fn    RowFunc
	Ctrls []pixfx.Control // User-defined controls for this filter.

	// Workers bounds the number of rows processed concurrently when the
	// source is buffered in memory. Values below 2 process rows in order.
	Workers int
}

// ShapeIO implements [pixfx.Filter].
func (f *PointFilter) ShapeIO() (output, input pixfx.Shape) {
	return f.Out, f.In
}

// Controls implements [pixfx.Filter].
func (f *PointFilter) Controls() []pixfx.Control {
	return f.Ctrls
}

// Process implements [pixfx.Filter].
func (f *PointFilter) Process(dst []byte, src pixfx.Image, roi *image.Rectangle) (pixfx.Dims, error) {
	fn := f.Fn
	if fn == nil {
		return pixfx.Dims{}, errNilRowFunc
	}

	outShape, inShape := f.ShapeIO()
	srcDims := src.Dims()
	if srcDims.Shape != inShape {
		return pixfx.Dims{}, errShapeMismatch
	}

	inBytesPerPixel := (inShape.BitsPerPixel() + 7) / 8
	outBytesPerPixel := (outShape.BitsPerPixel() + 7) / 8

	// Calculate output dimensions based on ROI or full image.
	var outWidth, outHeight int
	if roi != nil {
		outWidth, outHeight = roi.Dx(), roi.Dy()
	} else {
		outWidth, outHeight = srcDims.Width, srcDims.Height
	}
	outStride := outWidth * outBytesPerPixel

	dstDims := pixfx.Dims{
		Width:  outWidth,
		Height: outHeight,
		Stride: outStride,
		Shape:  outShape,
	}

	dst, _, err := pixfx.ValidateProcessArgs(dst, dstDims, src, roi)
	if err != nil {
		return pixfx.Dims{}, err
	}

	// Determine source region to process.
	startX, startY := 0, 0
	endX, endY := srcDims.Width, srcDims.Height
	if roi != nil {
		startX, startY = roi.Min.X, roi.Min.Y
		endX, endY = roi.Max.X, roi.Max.Y
	}
	srcStart := startX * inBytesPerPixel
	srcEnd := endX * inBytesPerPixel
	srcRowBytes := srcDims.SizeRow()

	row := func(srcRow []byte, y int) {
		dstRowStart := (y - startY) * outStride
		fn(dst[dstRowStart:dstRowStart+outStride], srcRow[srcStart:srcEnd], startX, y, srcDims.Width, srcDims.Height)
	}

	var srcBuf []byte
	if buffered, ok := src.(pixfx.ImageBuffered); ok {
		srcBuf = buffered.Buffer()
	}
	if srcBuf == nil {
		// Rows are read one at a time into a shared buffer, so no concurrency here.
		rowBuf := make([]byte, srcRowBytes)
		for y := startY; y < endY; y++ {
			srcRow, err := pixfx.ImageRow(rowBuf, src, y)
			if err != nil {
				return pixfx.Dims{}, err
			}
			row(srcRow, y)
		}
		return dstDims, nil
	}

	srcRow := func(y int) []byte {
		off := y * srcDims.Stride
		return srcBuf[off : off+srcRowBytes]
	}
	if f.Workers < 2 {
		for y := startY; y < endY; y++ {
			row(srcRow(y), y)
		}
		return dstDims, nil
	}
	var g errgroup.Group
	g.SetLimit(f.Workers)
	for y := startY; y < endY; y++ {
		g.Go(func() error {
			row(srcRow(y), y)
			return nil
		})
	}
	return dstDims, g.Wait()
}

var errNilRowFunc = errorString("nil RowFunc")

type errorString string

func (e errorString) Error() string { return string(e) }
