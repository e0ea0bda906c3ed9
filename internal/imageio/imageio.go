// Package imageio converts between encoded image files and BGRA pixel buffers.
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding supports
// PNG, JPEG, BMP and TIFF, selected by file extension.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/soypat/pixfx"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when an output format can not be encoded.
var ErrUnsupportedFormat = errors.New("imageio: unsupported format")

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 90

// Format is an encodable output format.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	}
	return "unknown"
}

// FormatFromPath picks the output format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	}
	return 0, fmt.Errorf("%q: %w", filepath.Ext(path), ErrUnsupportedFormat)
}

// Load decodes the image file at path into a new buffer.
func Load(path string) (*pixfx.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	buf, _, err := Decode(f)
	return buf, err
}

// Decode decodes an image of any registered format and returns it with the format name.
func Decode(r io.Reader) (*pixfx.Buffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	buf, err := FromImage(img)
	if err != nil {
		return nil, format, err
	}
	return buf, format, nil
}

// Save encodes buf to path in the format given by the path extension.
// quality applies to JPEG only; values outside 1..100 are clamped.
func Save(path string, buf *pixfx.Buffer, quality int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	if err := Encode(f, buf, format, quality); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Encode writes buf to w in the given format.
func Encode(w io.Writer, buf *pixfx.Buffer, format Format, quality int) error {
	img := ToImage(buf)
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: min(max(quality, 1), 100)})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%v: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %v: %w", format, err)
	}
	return nil
}

// FromImage copies img into a new BGRA buffer with straight (non premultiplied) alpha.
func FromImage(img image.Image) (*pixfx.Buffer, error) {
	bounds := img.Bounds()
	buf, err := pixfx.New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	dst := buf.Bytes()
	width := bounds.Dx()

	// Fast path for NRGBA, the usual result of PNG decoding.
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range bounds.Dy() {
			row := nrgba.Pix[nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			swapRB(dst[y*width*4:(y+1)*width*4], row[:width*4])
		}
		return buf, nil
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst[i], dst[i+1], dst[i+2], dst[i+3] = c.B, c.G, c.R, c.A
			i += 4
		}
	}
	return buf, nil
}

// ToImage copies buf into a new NRGBA image.
func ToImage(buf *pixfx.Buffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width(), buf.Height()))
	swapRB(img.Pix, buf.Bytes())
	return img
}

// swapRB copies 4-byte pixels from src to dst exchanging bytes 0 and 2,
// converting RGBA to BGRA and back.
func swapRB(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i+2], src[i+1], src[i], src[i+3]
	}
}
