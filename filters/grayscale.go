package filters

import "github.com/soypat/pixfx"

// GrayscaleMode determines which channel statistic becomes the gray level.
type GrayscaleMode int

const (
	// GrayscaleMax uses the brightest channel: max(R,G,B).
	GrayscaleMax GrayscaleMode = iota
	// GrayscaleAverage uses the rounded mean: round((R+G+B)/3).
	GrayscaleAverage
	// GrayscaleMin uses the darkest channel: min(R,G,B).
	GrayscaleMin
)

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleMax:
		return "Max"
	case GrayscaleAverage:
		return "Average"
	case GrayscaleMin:
		return "Min"
	default:
		return "Unknown"
	}
}

// Kind returns the catalog entry computing the same gray level.
func (m GrayscaleMode) Kind() Kind {
	switch m {
	case GrayscaleAverage:
		return AverageValueGrayscale
	case GrayscaleMin:
		return MinValueGrayscale
	default:
		return MaxValueGrayscale
	}
}

// NewGrayscale creates a grayscale filter over BGRA images whose mode
// can be switched through its controls.
func NewGrayscale(mode GrayscaleMode) *PointFilter {
	f := newKindFilter(mode.Kind())
	f.Ctrls = []pixfx.Control{
		&pixfx.ControlEnum[GrayscaleMode]{
			Name:        "Conversion Mode",
			Description: "Channel statistic used as the gray level",
			Value:       mode,
			ValidValues: []GrayscaleMode{GrayscaleMax, GrayscaleAverage, GrayscaleMin},
			OnChange: func(m GrayscaleMode) error {
				f.Fn = kindRowFunc(m.Kind())
				return nil
			},
		},
	}
	return f
}

func maxGray(b, g, r uint8, _, _, _, _ int) (uint8, uint8, uint8) {
	m := max(r, b, g)
	return m, m, m
}

func minGray(b, g, r uint8, _, _, _, _ int) (uint8, uint8, uint8) {
	m := min(r, b, g)
	return m, m, m
}

// averageGray rounds the channel mean half away from zero.
// A sum of three integers is never an exact half so this equals plain rounding.
func averageGray(b, g, r uint8, _, _, _, _ int) (uint8, uint8, uint8) {
	s := int(b) + int(g) + int(r)
	m := uint8((2*s + 3) / 6)
	return m, m, m
}
