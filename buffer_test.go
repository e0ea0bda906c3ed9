package pixfx

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       error
	}{
		{name: "1x1", width: 1, height: 1},
		{name: "wide", width: 640, height: 1},
		{name: "zero area", width: 0, height: 10},
		{name: "negative width", width: -1, height: 2, wantErr: ErrInvalidDimension},
		{name: "negative height", width: 2, height: -3, wantErr: ErrInvalidDimension},
		{name: "overflow", width: math.MaxInt / 2, height: 3, wantErr: ErrInvalidDimension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := New(tt.width, tt.height)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New(%d,%d) error = %v, want %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got, want := len(buf.Bytes()), tt.width*tt.height*4; got != want {
				t.Errorf("len(data)=%d, want %d", got, want)
			}
			for i, v := range buf.Bytes() {
				if v != 0 {
					t.Fatalf("byte %d not zero: %d", i, v)
				}
			}
		})
	}
}

func TestFromBytes(t *testing.T) {
	data := make([]byte, 2*3*4)
	buf, err := FromBytes(2, 3, data)
	if err != nil {
		t.Fatal(err)
	}
	data[4] = 42 // pixel (1,0) blue.
	p, err := buf.At(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.B != 42 {
		t.Errorf("FromBytes must adopt the slice, got blue=%d", p.B)
	}

	_, err = FromBytes(2, 3, data[:len(data)-1])
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short data error = %v, want ErrSizeMismatch", err)
	}
	_, err = FromBytes(-2, 3, data)
	if !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("negative width error = %v, want ErrInvalidDimension", err)
	}
}

func TestBufferAtSet(t *testing.T) {
	buf, err := New(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := Pixel{B: 10, G: 200, R: 50}
	if err := buf.Set(2, 1, want); err != nil {
		t.Fatal(err)
	}
	got, err := buf.At(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("At=%+v, want %+v", got, want)
	}
	a, _ := buf.Alpha(2, 1)
	if a != 255 {
		t.Errorf("Set must write opaque alpha, got %d", a)
	}
	off := (1*3 + 2) * 4
	if b := buf.Bytes()[off : off+4]; b[0] != 10 || b[1] != 200 || b[2] != 50 {
		t.Errorf("BGRA byte order broken: %v", b)
	}

	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {3, 2}} {
		if _, err := buf.At(pt[0], pt[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("At(%d,%d) error = %v, want ErrOutOfBounds", pt[0], pt[1], err)
		}
		if err := buf.Set(pt[0], pt[1], want); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%d,%d) error = %v, want ErrOutOfBounds", pt[0], pt[1], err)
		}
	}
}

func TestBufferImage(t *testing.T) {
	buf, _ := New(4, 2)
	for i := range buf.Bytes() {
		buf.Bytes()[i] = byte(i)
	}
	d := buf.Dims()
	if err := d.Validate(); err != nil {
		t.Fatal(err)
	}
	if d.Stride != 16 || d.Shape != ShapeBGRA8888 || d.Size() != 32 {
		t.Errorf("unexpected dims %+v", d)
	}

	row, err := ImageRow(make([]byte, 16), buf, 1)
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != 16 || len(row) != 16 {
		t.Errorf("row 1 starts with %d (len %d), want 16 (len 16)", row[0], len(row))
	}

	p := make([]byte, 8)
	n, err := buf.ReadAt(p, 28)
	if n != 4 || err != io.EOF {
		t.Errorf("ReadAt past end = (%d, %v), want (4, EOF)", n, err)
	}
	if _, err := buf.ReadAt(p, 32); err != io.EOF {
		t.Errorf("ReadAt at end error = %v, want EOF", err)
	}

	clone := buf.Clone()
	clone.Bytes()[0] = 99
	if buf.Bytes()[0] == 99 {
		t.Error("Clone shares memory with original")
	}
}
