package filters

import (
	"bytes"
	"image"
	"math/rand"
	"testing"

	"github.com/soypat/pixfx"
)

// readerOnly hides the ImageBuffered implementation of a buffer.
type readerOnly struct{ buf *pixfx.Buffer }

func (r readerOnly) Dims() pixfx.Dims                        { return r.buf.Dims() }
func (r readerOnly) ReadAt(p []byte, off int64) (int, error) { return r.buf.ReadAt(p, off) }

func TestChannelFilterMatchesEngine(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	src := randomBGRA(rng, 33, 21)
	for _, k := range Kinds() {
		want := src.Clone()
		if err := pixfx.Apply(want, k.Transform()); err != nil {
			t.Fatal(err)
		}

		f := NewChannelFilter(k)
		dst := make([]byte, len(src.Bytes()))
		dims, err := f.Process(dst, src, nil)
		if err != nil {
			t.Fatalf("%v: %v", k, err)
		}
		if dims != src.Dims() {
			t.Errorf("%v: dims %+v, want %+v", k, dims, src.Dims())
		}
		if !bytes.Equal(dst, want.Bytes()) {
			t.Errorf("%v: point filter output differs from engine", k)
		}

		// Unbuffered source goes through ReadAt.
		clear(dst)
		if _, err := f.Process(dst, readerOnly{src}, nil); err != nil {
			t.Fatalf("%v unbuffered: %v", k, err)
		}
		if !bytes.Equal(dst, want.Bytes()) {
			t.Errorf("%v: unbuffered output differs from engine", k)
		}
	}
}

func TestChannelFilterInPlaceWorkers(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	src := randomBGRA(rng, 40, 40)
	want := src.Clone()
	_ = pixfx.Apply(want, HorizontalGradient.Transform())

	f := NewChannelFilter(RedOnly)
	ctrls := f.Controls()
	if err := ctrls[0].ChangeValue(HorizontalGradient); err != nil {
		t.Fatal(err)
	}
	if err := ctrls[1].ChangeValue(4); err != nil {
		t.Fatal(err)
	}
	if f.Workers != 4 {
		t.Fatalf("workers control not applied: %d", f.Workers)
	}
	if _, err := f.Process(nil, src, nil); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(src.Bytes(), want.Bytes()) {
		t.Error("in-place concurrent output differs from engine")
	}
}

func TestPointFilterROI(t *testing.T) {
	const w, h = 10, 8
	src, _ := pixfx.New(w, h)
	roi := image.Rect(2, 3, 6, 5)
	f := NewChannelFilter(ColorGradient)
	dst := make([]byte, roi.Dx()*roi.Dy()*4)
	dims, err := f.Process(dst, src, &roi)
	if err != nil {
		t.Fatal(err)
	}
	if dims.Width != 4 || dims.Height != 2 {
		t.Fatalf("ROI dims %+v", dims)
	}
	out, _ := pixfx.FromBytes(dims.Width, dims.Height, dst)
	// Coordinates passed to the transform are absolute, so the first ROI pixel
	// carries x=2 of 10 and y=3 of 8.
	p, _ := out.At(0, 0)
	if p.B != 51 || p.R != 96 {
		t.Errorf("ROI origin pixel %+v, want B=51 R=96", p)
	}

	if _, err := f.Process(nil, src, &roi); err == nil {
		t.Error("in-place with ROI must fail")
	}
	bad := image.Rect(5, 5, 11, 6)
	if _, err := f.Process(dst, src, &bad); err == nil {
		t.Error("ROI outside image must fail")
	}
}

func TestPointFilterErrors(t *testing.T) {
	src, _ := pixfx.New(2, 2)
	f := &PointFilter{In: pixfx.ShapeBGRA8888, Out: pixfx.ShapeBGRA8888}
	if _, err := f.Process(nil, src, nil); err != errNilRowFunc {
		t.Errorf("nil RowFunc error = %v", err)
	}
	f = NewChannelFilter(RedOnly)
	f.In = pixfx.ShapeRGB888
	if _, err := f.Process(nil, src, nil); err != errShapeMismatch {
		t.Errorf("shape mismatch error = %v", err)
	}
}

func TestGrayscaleModes(t *testing.T) {
	src, _ := pixfx.FromBytes(1, 1, []byte{10, 200, 50, 0})
	f := NewGrayscale(GrayscaleMax)
	for _, tc := range []struct {
		mode GrayscaleMode
		want byte
	}{
		{GrayscaleMax, 200},
		{GrayscaleAverage, 87},
		{GrayscaleMin, 10},
	} {
		if err := f.Controls()[0].ChangeValue(tc.mode); err != nil {
			t.Fatal(err)
		}
		dst := make([]byte, 4)
		if _, err := f.Process(dst, src, nil); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(dst, []byte{tc.want, tc.want, tc.want, 255}) {
			t.Errorf("%v: got %v", tc.mode, dst)
		}
	}
}
