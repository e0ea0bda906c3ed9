package cli

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/soypat/pixfx"
)

// normalizeName folds case and treats dashes, underscores and runs of spaces
// alike, so "red-only", "RED_ONLY" and "Red  Only" all match "Red Only".
// A new Caser is created per call since Casers are not safe for concurrent use.
func normalizeName(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, s)
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

// slug returns the dashed lower case form of a catalog name, e.g. "max-value-only".
func slug(name string) string {
	return strings.ReplaceAll(normalizeName(name), " ", "-")
}

// resolveTransform finds a catalog entry by exact or normalized name.
func resolveTransform(c *pixfx.Catalog, query string) (string, pixfx.Transform, error) {
	if fn, err := c.Lookup(query); err == nil {
		return query, fn, nil
	}
	want := normalizeName(query)
	for _, name := range c.List() {
		if normalizeName(name) == want {
			fn, err := c.Lookup(name)
			return name, fn, err
		}
	}
	return "", nil, fmt.Errorf("%q: %w", query, pixfx.ErrUnknownTransform)
}
