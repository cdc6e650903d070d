package core

import "errors"

// Validation errors shared by the spline primitive and the transforms.
var (
	ErrNotMonotonic  = errors.New("core: sequence must be strictly increasing")
	ErrAxis          = errors.New("core: axis out of bounds")
	ErrShapeMismatch = errors.New("core: shape mismatch")
	ErrOutOfRange    = errors.New("core: point outside interpolation support")
)
