package filters

import "github.com/soypat/pixfx"

// maxWorkers bounds the worker control of channel filters.
const maxWorkers = 256

// NewChannelFilter creates a BGRA point filter running a built-in transform.
// The transform and the worker count can be changed through its controls.
func NewChannelFilter(kind Kind) *PointFilter {
	f := newKindFilter(kind)
	f.Ctrls = []pixfx.Control{
		&pixfx.ControlEnum[Kind]{
			Name:        "Transform",
			Description: "Per-pixel channel transform to apply",
			Value:       kind,
			ValidValues: Kinds(),
			OnChange: func(k Kind) error {
				f.Fn = kindRowFunc(k)
				return nil
			},
		},
		&pixfx.ControlOrdered[int]{
			Name:        "Workers",
			Description: "Rows processed concurrently",
			Value:       1,
			Min:         1,
			Max:         maxWorkers,
			Step:        1,
			OnChange: func(n int) error {
				f.Workers = n
				return nil
			},
		},
	}
	return f
}

func newKindFilter(kind Kind) *PointFilter {
	return &PointFilter{
		In:  pixfx.ShapeBGRA8888,
		Out: pixfx.ShapeBGRA8888,
		Fn:  kindRowFunc(kind),
	}
}

// kindRowFunc adapts a built-in transform to a [RowFunc]. Invalid kinds yield nil.
func kindRowFunc(kind Kind) RowFunc {
	t := kind.Transform()
	if t == nil {
		return nil
	}
	return func(dst, src []byte, x0, y, width, height int) {
		pixfx.TransformRow(dst, src, x0, y, width, height, t)
	}
}
