package cli

import (
	"errors"
	"testing"

	"github.com/soypat/pixfx"
	"github.com/soypat/pixfx/filters"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Red Only", "red only"},
		{"red-only", "red only"},
		{"RED_ONLY", "red only"},
		{"  Max   Value  Only ", "max value only"},
		{"max-value_grayscale", "max value grayscale"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeName(tt.in); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	if got := slug("Max Value Grayscale"); got != "max-value-grayscale" {
		t.Errorf("slug = %q", got)
	}
}

func TestResolveTransform(t *testing.T) {
	c := filters.Builtin()
	tests := []struct {
		query    string
		wantName string
		wantErr  error
	}{
		{"Red Only", "Red Only", nil},
		{"red-only", "Red Only", nil},
		{"HORIZONTAL_GRADIENT", "Horizontal Gradient", nil},
		{"middle value intensified", "Middle Value Intensified", nil},
		{"purple only", "", pixfx.ErrUnknownTransform},
		{"", "", pixfx.ErrUnknownTransform},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			name, fn, err := resolveTransform(c, tt.query)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if fn == nil {
				t.Error("nil transform")
			}
		})
	}
}
