package filters

import (
	"fmt"

	"github.com/soypat/pixfx"
)

// Kind enumerates the built-in channel transforms in catalog order.
type Kind int

const (
	MaxValueGrayscale Kind = iota
	AverageValueGrayscale
	MinValueGrayscale
	MaxValueOnly
	MinValueOnly
	MaxValueIntensified
	MaxValueDetensified
	MinValueIntensified
	MinValueDetensified
	MiddleValueIntensified
	MiddleValueDetensified
	ColorGradient
	HorizontalGradient
	RedOnly
	GreenOnly
	BlueOnly
	numKinds
)

var kindNames = [numKinds]string{
	MaxValueGrayscale:      "Max Value Grayscale",
	AverageValueGrayscale:  "Average Value Grayscale",
	MinValueGrayscale:      "Min Value Grayscale",
	MaxValueOnly:           "Max Value Only",
	MinValueOnly:           "Min Value Only",
	MaxValueIntensified:    "Max Value Intensified",
	MaxValueDetensified:    "Max Value Detensified",
	MinValueIntensified:    "Min Value Intensified",
	MinValueDetensified:    "Min Value Detensified",
	MiddleValueIntensified: "Middle Value Intensified",
	MiddleValueDetensified: "Middle Value Detensified",
	ColorGradient:          "Color Gradient",
	HorizontalGradient:     "Horizontal Gradient",
	RedOnly:                "Red Only",
	GreenOnly:              "Green Only",
	BlueOnly:               "Blue Only",
}

var kindTransforms = [numKinds]pixfx.Transform{
	MaxValueGrayscale:      maxGray,
	AverageValueGrayscale:  averageGray,
	MinValueGrayscale:      minGray,
	MaxValueOnly:           only(maxChannel),
	MinValueOnly:           only(minChannel),
	MaxValueIntensified:    force(maxChannel, 255),
	MaxValueDetensified:    force(maxChannel, 0),
	MinValueIntensified:    force(minChannel, 255),
	MinValueDetensified:    force(minChannel, 0),
	MiddleValueIntensified: force(middleChannel, 255),
	MiddleValueDetensified: force(middleChannel, 0),
	ColorGradient:          colorGradient,
	HorizontalGradient:     horizontalGradient,
	RedOnly:                redOnly,
	GreenOnly:              greenOnly,
	BlueOnly:               blueOnly,
}

// String returns the catalog name of the kind.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Transform returns the per-pixel function of the kind or nil for an invalid kind.
func (k Kind) Transform() pixfx.Transform {
	if !k.valid() {
		return nil
	}
	return kindTransforms[k]
}

func (k Kind) valid() bool { return k >= 0 && k < numKinds }

// Kinds returns every built-in kind in catalog order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind returns the kind registered under the exact catalog name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return -1, fmt.Errorf("%q: %w", name, pixfx.ErrUnknownTransform)
}

// RegisterBuiltins adds every built-in transform to c in catalog order.
func RegisterBuiltins(c *pixfx.Catalog) error {
	for _, k := range Kinds() {
		if err := c.Register(k.String(), k.Transform()); err != nil {
			return err
		}
	}
	return nil
}

// Builtin returns a new catalog populated with the built-in transforms.
func Builtin() *pixfx.Catalog {
	c := pixfx.NewCatalog()
	if err := RegisterBuiltins(c); err != nil {
		panic(err) // names are unique and non-empty.
	}
	return c
}
