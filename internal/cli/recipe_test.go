package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/pixfx/internal/imageio"
)

func writeRecipe(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRecipe(t *testing.T) {
	path := writeRecipe(t, `
input   = "cat.png"
output  = "out/cat-gray.png"
quality = 75
workers = 3
gpu     = true
steps   = ["Max Value Only", "max-value-grayscale"]
`)
	r, err := LoadRecipe(path)
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Dir(path)
	if r.Input != filepath.Join(dir, "cat.png") {
		t.Errorf("Input = %q", r.Input)
	}
	if r.Output != filepath.Join(dir, "out", "cat-gray.png") {
		t.Errorf("Output = %q", r.Output)
	}
	if r.Quality != 75 || r.Workers != 3 || !r.GPU {
		t.Errorf("got quality=%d workers=%d gpu=%v", r.Quality, r.Workers, r.GPU)
	}
	if len(r.Steps) != 2 || r.Steps[1] != "max-value-grayscale" {
		t.Errorf("Steps = %v", r.Steps)
	}

	opts := r.applyOpts()
	if opts.input != r.Input || len(opts.transforms) != 2 || !opts.gpu {
		t.Errorf("applyOpts = %+v", opts)
	}
}

func TestLoadRecipeDefaults(t *testing.T) {
	path := writeRecipe(t, `
input = "/abs/photo.jpeg"
steps = ["Red Only"]
`)
	r, err := LoadRecipe(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Input != "/abs/photo.jpeg" {
		t.Errorf("absolute input rewritten: %q", r.Input)
	}
	if r.Output != "/abs/photo-filtered.jpg" {
		t.Errorf("Output = %q", r.Output)
	}
	if r.Quality != imageio.DefaultQuality {
		t.Errorf("Quality = %d", r.Quality)
	}
	if r.Workers < 1 {
		t.Errorf("Workers = %d", r.Workers)
	}
}

func TestLoadRecipeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "input = \"a.png\"\nsteps = [\"Red Only\"]\ncolour = 1\n", "colour"},
		{"no input", "steps = [\"Red Only\"]\n", "input"},
		{"no steps", "input = \"a.png\"\n", "no transforms"},
		{"bad toml", "input = \n", "recipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRecipe(writeRecipe(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	_, err := LoadRecipe(writeRecipe(t, "steps = [\"Red Only\"]\n"))
	if !errors.Is(err, errRecipeNoInput) {
		t.Errorf("err = %v, want errRecipeNoInput", err)
	}
}
