package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/soypat/pixfx"
)

func TestFromImageByteOrder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	img.SetNRGBA(1, 0, color.NRGBA{R: 250, G: 0, B: 0, A: 255})
	buf, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{3, 2, 1, 4, 0, 0, 250, 255}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %v, want %v", buf.Bytes(), want)
	}
	back := ToImage(buf)
	if !bytes.Equal(back.Pix, img.Pix) {
		t.Errorf("ToImage(FromImage) = %v, want %v", back.Pix, img.Pix)
	}
}

func TestFromImageGenericAndOffsetBounds(t *testing.T) {
	gray := image.NewGray(image.Rect(5, 5, 7, 6))
	gray.SetGray(5, 5, color.Gray{Y: 100})
	gray.SetGray(6, 5, color.Gray{Y: 200})
	buf, err := FromImage(gray)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Width() != 2 || buf.Height() != 1 {
		t.Fatalf("dims %dx%d", buf.Width(), buf.Height())
	}
	want := []byte{100, 100, 100, 255, 200, 200, 200, 255}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %v, want %v", buf.Bytes(), want)
	}

	sub := image.NewNRGBA(image.Rect(0, 0, 4, 4)).SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	sub.SetNRGBA(1, 1, color.NRGBA{R: 9, A: 255})
	buf, err = FromImage(sub)
	if err != nil {
		t.Fatal(err)
	}
	if p, _ := buf.At(0, 0); p.R != 9 {
		t.Errorf("sub image origin not mapped to (0,0): %+v", p)
	}
}

func TestEncodeDecodeLossless(t *testing.T) {
	buf, _ := pixfx.New(3, 2)
	for i := range buf.Bytes() {
		buf.Bytes()[i] = byte(i * 9)
	}
	for i := 3; i < len(buf.Bytes()); i += 4 {
		buf.Bytes()[i] = 255
	}
	for _, format := range []Format{FormatPNG, FormatBMP, FormatTIFF} {
		var b bytes.Buffer
		if err := Encode(&b, buf, format, DefaultQuality); err != nil {
			t.Fatalf("%v: %v", format, err)
		}
		got, name, err := Decode(&b)
		if err != nil {
			t.Fatalf("%v: %v", format, err)
		}
		if name != format.String() {
			t.Errorf("decoded format %q, want %q", name, format)
		}
		if !bytes.Equal(got.Bytes(), buf.Bytes()) {
			t.Errorf("%v roundtrip mismatch:\n got %v\nwant %v", format, got.Bytes(), buf.Bytes())
		}
	}
}

func TestSaveLoad(t *testing.T) {
	buf, _ := pixfx.New(8, 8)
	_ = pixfx.Apply(buf, func(_, _, _ uint8, x, y, _, _ int) (uint8, uint8, uint8) {
		return uint8(x * 30), 128, uint8(y * 30)
	})
	dir := t.TempDir()
	png := filepath.Join(dir, "out.png")
	if err := Save(png, buf, 0); err != nil {
		t.Fatal(err)
	}
	got, err := Load(png)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), buf.Bytes()) {
		t.Error("png save/load mismatch")
	}

	jpg := filepath.Join(dir, "out.JPG")
	if err := Save(jpg, buf, 500); err != nil {
		t.Fatal(err)
	}
	got, err = Load(jpg)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width() != 8 || got.Height() != 8 {
		t.Errorf("jpeg dims %dx%d", got.Width(), got.Height())
	}

	if err := Save(filepath.Join(dir, "out.webp"), buf, 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("webp encode error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
