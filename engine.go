package pixfx

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// bandsPerWorker splits the image into more bands than workers so that
// goroutines finishing early pick up remaining rows.
const bandsPerWorker = 4

// Engine applies transforms over whole buffers.
// The zero value processes rows sequentially on the calling goroutine.
type Engine struct {
	// Workers is the maximum number of goroutines used for one pass.
	// Values below 2 disable concurrency.
	Workers int
}

// Apply transforms every pixel of buf in place using a sequential [Engine].
func Apply(buf *Buffer, t Transform) error {
	return Engine{}.Apply(buf, t)
}

// ApplyTo writes the transformed pixels of src to dst using a sequential [Engine].
func ApplyTo(dst, src *Buffer, t Transform) error {
	return Engine{}.ApplyTo(dst, src, t)
}

// Apply transforms every pixel of buf in place. After the call every pixel's
// alpha is 255. A buffer with zero width or height is left untouched.
func (e Engine) Apply(buf *Buffer, t Transform) error {
	if buf == nil {
		return ErrNilBuffer
	}
	return e.ApplyTo(buf, buf, t)
}

// ApplyTo reads every pixel of src, transforms it and stores the result at the
// same position in dst. dst and src must have identical dimensions and may be
// the same buffer. Arguments are validated before any pixel is written.
func (e Engine) ApplyTo(dst, src *Buffer, t Transform) error {
	switch {
	case dst == nil || src == nil:
		return ErrNilBuffer
	case t == nil:
		return ErrNilTransform
	case dst.width != src.width || dst.height != src.height:
		return fmt.Errorf("dst %dx%d, src %dx%d: %w", dst.width, dst.height, src.width, src.height, ErrDimensionMismatch)
	}
	width, height := src.width, src.height
	workers := min(e.Workers, height)
	Logger().Debug("pixfx apply", "width", width, "height", height, "workers", max(workers, 1), "inplace", dst == src)
	if src.Empty() {
		return nil
	}
	stride := width * BytesPerPixel
	rows := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			off := y * stride
			TransformRow(dst.data[off:off+stride], src.data[off:off+stride], 0, y, width, height, t)
		}
	}
	if workers < 2 {
		rows(0, height)
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	bands := min(workers*bandsPerWorker, height)
	bandHeight := (height + bands - 1) / bands
	for y0 := 0; y0 < height; y0 += bandHeight {
		y1 := min(y0+bandHeight, height)
		g.Go(func() error {
			rows(y0, y1)
			return nil
		})
	}
	return g.Wait()
}

// TransformRow applies t to a contiguous run of BGRA pixels.
// src[0:4] is the pixel at (x0, y); width and height are those of the whole
// image. Results are written to dst, which must be at least len(src) long and
// may alias src. Alpha of every written pixel is set to 255.
func TransformRow(dst, src []byte, x0, y, width, height int, t Transform) {
	dst = dst[:len(src)]
	for i := 0; i+BytesPerPixel <= len(src); i += BytesPerPixel {
		x := x0 + i/BytesPerPixel
		b, g, r := t(src[i], src[i+1], src[i+2], x, y, width, height)
		dst[i] = b
		dst[i+1] = g
		dst[i+2] = r
		dst[i+3] = 255
	}
}
