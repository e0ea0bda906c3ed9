package pixfx

import "errors"

// Errors reported by buffer, catalog and engine operations.
// All are local to the call that returns them; callers match with [errors.Is].
var (
	ErrInvalidDimension  = errors.New("pixfx: invalid dimension")
	ErrSizeMismatch      = errors.New("pixfx: data size mismatch")
	ErrOutOfBounds       = errors.New("pixfx: out of bounds")
	ErrUnknownTransform  = errors.New("pixfx: unknown transform")
	ErrDuplicateName     = errors.New("pixfx: duplicate transform name")
	ErrDimensionMismatch = errors.New("pixfx: dimension mismatch")
	ErrNilTransform      = errors.New("pixfx: nil transform")
	ErrNilBuffer         = errors.New("pixfx: nil buffer")
	ErrInvalidName       = errors.New("pixfx: invalid transform name")
)

var (
	errInPlaceROI  = errors.New("pixfx: in-place operation does not support ROI")
	errNotBuffered = errors.New("pixfx: src is not an in-memory buffered image")
)
