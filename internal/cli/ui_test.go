package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/pixfx"
	"github.com/soypat/pixfx/filters"
)

func TestRenderGrid(t *testing.T) {
	names := filters.Builtin().List()
	out := renderGrid(names, gridColumns, 3)
	for _, name := range names {
		if !strings.Contains(out, name) {
			t.Errorf("grid missing %q", name)
		}
	}
	// 16 names at six per row is three rows of bordered cells, three lines each.
	if lines := strings.Count(out, "\n") + 1; lines != 9 {
		t.Errorf("grid has %d lines, want 9:\n%s", lines, out)
	}

	if renderGrid(nil, gridColumns, 0) != "" {
		t.Error("empty grid should render nothing")
	}
	single := renderGrid([]string{"a", "b"}, 0, -1)
	if lines := strings.Count(single, "\n") + 1; lines != 6 {
		t.Errorf("perRow < 1 should place one cell per row, got %d lines", lines)
	}
}

func TestListCommand(t *testing.T) {
	var stderr bytes.Buffer
	c := New(&stderr, LogInfo)
	t.Cleanup(func() { pixfx.SetLogger(nil) })
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"list", "--plain"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := filters.Builtin().List()
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	// Flag values stick to a command, so use a fresh tree.
	root = c.RootCommand()
	out.Reset()
	root.SetOut(&out)
	root.SetArgs([]string{"list"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "16 transforms") {
		t.Errorf("grid output missing title: %q", out.String())
	}
}
