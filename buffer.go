package pixfx

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// BytesPerPixel is the size of one interleaved BGRA pixel.
const BytesPerPixel = 4

// Pixel holds the color channels of a single BGRA pixel.
// Alpha is not part of Pixel: writes through [Buffer.Set] and the engine
// always store a fully opaque alpha.
type Pixel struct {
	B, G, R uint8
}

// Buffer is an owned raster of width*height interleaved BGRA pixels
// stored row-major without row padding.
// The length of the underlying data is always width*height*4.
type Buffer struct {
	width  int
	height int
	data   []byte
}

var _ ImageBuffered = (*Buffer)(nil)

// New allocates a zero filled buffer of the given dimensions.
func New(width, height int) (*Buffer, error) {
	size, err := bufferSize(width, height)
	if err != nil {
		return nil, err
	}
	return &Buffer{width: width, height: height, data: make([]byte, size)}, nil
}

// FromBytes wraps data as a width x height BGRA buffer. data is used as is, not copied.
func FromBytes(width, height int, data []byte) (*Buffer, error) {
	size, err := bufferSize(width, height)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, fmt.Errorf("%d bytes for %dx%d image, want %d: %w", len(data), width, height, size, ErrSizeMismatch)
	}
	return &Buffer{width: width, height: height, data: data}, nil
}

func bufferSize(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("negative size %dx%d: %w", width, height, ErrInvalidDimension)
	}
	if width != 0 && height > math.MaxInt/BytesPerPixel/width {
		return 0, fmt.Errorf("size %dx%d overflows: %w", width, height, ErrInvalidDimension)
	}
	return width * height * BytesPerPixel, nil
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Bytes returns the underlying BGRA data. Writes to the slice modify the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{width: b.width, height: b.height, data: append([]byte(nil), b.data...)}
}

// Empty reports whether the buffer holds no pixels.
func (b *Buffer) Empty() bool { return b.width == 0 || b.height == 0 }

func (b *Buffer) offset(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, fmt.Errorf("pixel (%d,%d) in %dx%d image: %w", x, y, b.width, b.height, ErrOutOfBounds)
	}
	return (y*b.width + x) * BytesPerPixel, nil
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) (Pixel, error) {
	off, err := b.offset(x, y)
	if err != nil {
		return Pixel{}, err
	}
	return Pixel{B: b.data[off], G: b.data[off+1], R: b.data[off+2]}, nil
}

// Alpha returns the alpha channel of the pixel at (x, y).
func (b *Buffer) Alpha(x, y int) (uint8, error) {
	off, err := b.offset(x, y)
	if err != nil {
		return 0, err
	}
	return b.data[off+3], nil
}

// Set stores p at (x, y) with an opaque alpha.
func (b *Buffer) Set(x, y int, p Pixel) error {
	off, err := b.offset(x, y)
	if err != nil {
		return err
	}
	b.data[off] = p.B
	b.data[off+1] = p.G
	b.data[off+2] = p.R
	b.data[off+3] = 255
	return nil
}

// Dims implements [Image].
func (b *Buffer) Dims() Dims {
	return Dims{
		Width:  b.width,
		Height: b.height,
		Stride: b.width * BytesPerPixel,
		Shape:  ShapeBGRA8888,
	}
}

// ReadAt implements [io.ReaderAt] over the raw BGRA data.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("pixfx: negative offset")
	} else if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Buffer implements [ImageBuffered].
func (b *Buffer) Buffer() []byte { return b.data }
