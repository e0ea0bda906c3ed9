package pixfx

import (
	"fmt"
	"sync"
)

// Transform maps the channels of the pixel at (x, y) of a width x height image
// to new channel values. A Transform must be pure: the result may depend only
// on its arguments, never on other pixels or on previous calls.
type Transform func(b, g, r uint8, x, y, width, height int) (nb, ng, nr uint8)

// Catalog is a registry of named transforms which remembers registration order.
// It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	names []string
	fns   map[string]Transform
}

func NewCatalog() *Catalog {
	return &Catalog{fns: make(map[string]Transform)}
}

// Register adds fn under name. Names are case sensitive and must be unique.
func (c *Catalog) Register(name string, fn Transform) error {
	if name == "" {
		return ErrInvalidName
	} else if fn == nil {
		return fmt.Errorf("register %q: %w", name, ErrNilTransform)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fns == nil {
		c.fns = make(map[string]Transform)
	}
	if _, ok := c.fns[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateName)
	}
	c.fns[name] = fn
	c.names = append(c.names, name)
	return nil
}

// Lookup returns the transform registered under name.
func (c *Catalog) Lookup(name string) (Transform, error) {
	c.mu.RLock()
	fn, ok := c.fns[name]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownTransform)
	}
	return fn, nil
}

// List returns the registered names in registration order.
// The returned slice is owned by the caller.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.names...)
}

// Len returns the number of registered transforms.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}
