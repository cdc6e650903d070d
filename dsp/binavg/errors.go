package binavg

import (
	"errors"

	"github.com/cwbudde/algo-binavg/dsp/core"
	"github.com/cwbudde/algo-binavg/dsp/spline"
)

// Errors returned by [Average] and [Reaverage]. All of them are detected
// before any spline is fitted.
var (
	ErrNotMonotonic  = core.ErrNotMonotonic
	ErrAxis          = core.ErrAxis
	ErrShapeMismatch = core.ErrShapeMismatch
	ErrOutOfRange    = core.ErrOutOfRange
	ErrFitting       = spline.ErrFitting
	ErrInvalidOption = errors.New("binavg: option not applicable")
)
