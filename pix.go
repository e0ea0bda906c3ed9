package pixfx

import (
	"fmt"
	"image"
	"io"
)

// Image is a low-level, whole-buffer image access abstraction of raw memory.
// It does not do bounds abstraction. As made implicit by Dims signature, row spacing must be homogenous in images.
type Image interface {
	// Dims returns information on in-memory image structure.
	// Row spacing must be homogenous in entire image separated by stride bytes.
	Dims() Dims
	// ReadAt reads from the image buffer of pixels, which may be in-memory or elsewhere (disk, network).
	//
	// Users should always try casting [Image] to [ImageBuffered]
	// to see if they can work with the image in-memory which is more efficient.
	io.ReaderAt
}

type ImageBuffered interface {
	Image
	// Buffer returns the raw underlying buffer for images stored in memory.
	// Buffer returns the entire buffer or nil to signal buffer is currently not in memory.
	Buffer() []byte
}

// Filter is a low-level whole-image filter.
type Filter interface {
	// ShapeIO returns expected output and input [Shape] of the filter.
	// output shape MUST match Process [Dims.Shape] output.
	ShapeIO() (output, input Shape)
	// Process processes an input image and writes the result to
	// destination buffer and returns the dimensions of the resulting image.
	//
	// If destination buffer is nil Filter will assert [ImageBuffered.Buffer] non-nilness
	// and use the buffer as the destination data. In-place does not support ROI.
	// Use [ValidateProcessArgs] to acquire dst buffer and validate arguments.
	Process(dstOrNilForInPlace []byte, src Image, roi *image.Rectangle) (Dims, error)
	// Controls returns the actual controls of the filter.
	// Controls should remain valid even after calling [Control.ChangeValue]
	// and their [Control.ActualValue] return the updated value.
	Controls() []Control
}

type Shape int

const (
	// Negative values can encode application defined shapes.

	shapeUndefined Shape = iota // undefined
	ShapeRGB888                 // rgb888
	ShapeRGBA8888               // rgba8888
	ShapeBGRA8888               // bgra8888
)

func (sh Shape) String() string {
	switch sh {
	case ShapeRGB888:
		return "rgb888"
	case ShapeRGBA8888:
		return "rgba8888"
	case ShapeBGRA8888:
		return "bgra8888"
	}
	return "undefined"
}

func (sh Shape) BitsPerPixel() (bits int) {
	switch sh {
	default:
		bits = -1
	case ShapeRGBA8888, ShapeBGRA8888:
		bits = 32
	case ShapeRGB888:
		bits = 24
	}
	return bits
}

type Dims struct {
	Width  int
	Height int
	Stride int
	Shape  Shape
}

func (d Dims) Validate() error {
	pixbits := d.Shape.BitsPerPixel()
	if d.Height <= 0 || d.Width <= 0 {
		return fmt.Errorf("empty image %dx%d: %w", d.Width, d.Height, ErrInvalidDimension)
	} else if pixbits < 1 {
		return fmt.Errorf("bad pixel shape %v: %w", d.Shape, ErrInvalidDimension)
	} else if (d.Width*pixbits+7)/8 > d.Stride {
		return fmt.Errorf("stride %d smaller than pixel row size: %w", d.Stride, ErrInvalidDimension)
	}
	return nil
}

func (d Dims) NumPixels() int64 {
	return int64(d.Height) * int64(d.Width)
}

// Size returns the readable section size of raw image in bytes.
func (d Dims) Size() int64 {
	if d.Height == 0 || d.Width == 0 {
		return 0
	}
	return int64(d.Height-1)*int64(d.Stride) + int64(d.SizeRow())
}

func (d Dims) SizeRow() int {
	return (d.Width*d.Shape.BitsPerPixel() + 7) / 8
}

// ImageRow returns the bytes of a single row of img. When img is buffered the
// returned slice aliases the image memory, otherwise dst is filled via ReadAt.
func ImageRow(dst []byte, img Image, row int) (resultSized []byte, err error) {
	d := img.Dims()
	err = d.Validate()
	if err != nil {
		return nil, err
	}
	rowLenBytes := d.SizeRow()
	if len(dst) < rowLenBytes {
		// Checked before trying ImageBuffered so callers handle the unbuffered case.
		return nil, io.ErrShortBuffer
	} else if row < 0 || row >= d.Height {
		return nil, fmt.Errorf("row %d: %w", row, ErrOutOfBounds)
	}
	off := int64(row) * int64(d.Stride)
	if buffered, ok := img.(ImageBuffered); ok {
		buf := buffered.Buffer()
		if buf != nil {
			return buf[off : off+int64(rowLenBytes)], nil
		}
	}
	resultSized = dst[:rowLenBytes]
	n, err := img.ReadAt(resultSized, off)
	if n != rowLenBytes {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return resultSized, nil
}

// ValidateProcessArgs gets correct write destination buffer and
// provides basic guarantees of inputs to Filter such as:
//   - Source [Dims.Validate] early validation. Always returned as called.
//   - Valid ROI argument.
//   - Valid input image for buffered in-place operations. In-place rejects non-nil ROI.
//   - shape match for in-place operations.
//   - For users who know the output stride and height offers checking of dst buffer size.
//     Use dstDims.Stride=0 to omit this check.
//
// dstDims.Shape must be set to support in-place operations. Other fields are optional but provide buffer size checks.
// srcDims is always returned as called by src.Dims.
func ValidateProcessArgs(dst []byte, dstShape Dims, src Image, roi *image.Rectangle) (_ []byte, srcDims Dims, err error) {
	srcDims = src.Dims()
	if err = srcDims.Validate(); err != nil {
		return nil, srcDims, err
	}
	var requiredMinDstSize int64
	if roi != nil {
		if roi.Max.X < 0 || roi.Min.X < 0 || roi.Min.Y < 0 || roi.Max.Y < 0 {
			return nil, srcDims, fmt.Errorf("negative ROI %v: %w", *roi, ErrOutOfBounds)
		} else if roi.Max.X > srcDims.Width || roi.Max.Y > srcDims.Height {
			return nil, srcDims, fmt.Errorf("ROI %v exceeds image bounds: %w", *roi, ErrOutOfBounds)
		} else if roi.Empty() {
			return nil, srcDims, fmt.Errorf("empty ROI: %w", ErrInvalidDimension)
		}
		requiredMinDstSize = int64(dstShape.Stride) * int64(roi.Dy())
	} else {
		requiredMinDstSize = int64(dstShape.Stride) * int64(dstShape.Height)
	}
	if dst == nil {
		if roi != nil {
			return nil, srcDims, errInPlaceROI
		}
		if dstShape.Shape != srcDims.Shape {
			return nil, srcDims, fmt.Errorf("in-place %v to %v: %w", srcDims.Shape, dstShape.Shape, ErrDimensionMismatch)
		}
		buffered, ok := src.(ImageBuffered)
		if !ok {
			return nil, srcDims, errNotBuffered
		}
		buf := buffered.Buffer()
		if buf == nil {
			return nil, srcDims, errNotBuffered
		} else if len(buf) < int(srcDims.Size()) {
			return nil, srcDims, fmt.Errorf("src buffer of %d bytes for %d byte image: %w", len(buf), srcDims.Size(), ErrSizeMismatch)
		}
		dst = buf
	}
	if int64(len(dst)) < requiredMinDstSize {
		return dst, srcDims, fmt.Errorf("destination of %d bytes needs %d: %w", len(dst), requiredMinDstSize, ErrSizeMismatch)
	}
	return dst, srcDims, nil
}
