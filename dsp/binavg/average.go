package binavg

import (
	"fmt"

	"github.com/cwbudde/algo-binavg/dsp/core"
	"github.com/cwbudde/algo-binavg/dsp/spline"
	"gonum.org/v1/gonum/mat"
)

// Average averages y, sampled at the strictly increasing points x along the
// configured axis, into the bins delimited by edges. It returns the bin
// averages, shaped like y with the axis length replaced by len(edges)-1,
// and the per-bin weight integrals.
//
// edges must lie within [x[0], x[len(x)-1]].
func Average(x []float64, y *core.Array, edges []float64, opts ...Option) (*core.Array, []float64, error) {
	cfg := applyOptions(opts)
	if cfg.outWeight != nil {
		return nil, nil, fmt.Errorf("%w: output weight is only used by Reaverage", ErrInvalidOption)
	}

	if err := core.ValidateIncreasing("x", x, 1); err != nil {
		return nil, nil, err
	}
	if err := core.ValidateIncreasing("edges", edges, 2); err != nil {
		return nil, nil, err
	}

	if y == nil {
		return nil, nil, fmt.Errorf("%w: nil y", ErrShapeMismatch)
	}
	axis, err := y.NormalizeAxis(cfg.axis)
	if err != nil {
		return nil, nil, err
	}

	n := len(x)
	if got := y.Shape()[axis]; got != n {
		return nil, nil, fmt.Errorf("%w: y has %d values along axis %d, x has %d", ErrShapeMismatch, got, axis, n)
	}

	w := cfg.weight
	if w == nil {
		w = core.Ones(n)
	}
	if err := core.ValidateLen("weight", w, n); err != nil {
		return nil, nil, err
	}

	wp := cfg.numWeight
	if wp == nil {
		wp = w
	}
	if err := core.ValidateLen("numerator weight", wp, n); err != nil {
		return nil, nil, err
	}

	if err := checkDegree(cfg.degree, n); err != nil {
		return nil, nil, err
	}
	if err := core.ValidateWithin("edges", edges, x); err != nil {
		return nil, nil, err
	}

	integrate := func(m mat.Matrix) (*mat.Dense, error) {
		return spline.IntegrateDiff(cfg.fitter, x, m, cfg.degree, edges)
	}

	wInt, err := integrate(axisVector(w))
	if err != nil {
		return nil, nil, err
	}
	weight := mat.Col(nil, 0, wInt)

	lanes := y.Lanes(axis)
	weightLanes(lanes, wp)

	num, err := runLanes(cfg.workers, lanes, integrate)
	if err != nil {
		return nil, nil, err
	}
	divideRows(num, weight)

	avg, err := core.FromLanes(num, y.Shape(), axis)
	if err != nil {
		return nil, nil, err
	}

	return avg, weight, nil
}
