package binavg

import (
	"fmt"

	"github.com/cwbudde/algo-binavg/dsp/core"
	"github.com/cwbudde/algo-binavg/dsp/spline"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Reaverage re-bins y, averaged over the bins delimited by edgesIn along the
// configured axis, onto the bins delimited by edgesOut. It returns the new
// averages, shaped like y with the axis length replaced by len(edgesOut)-1,
// and the output weights.
//
// The input weight defaults to the bin widths of edgesIn. The output weight
// defaults to the input weight redistributed onto edgesOut. edgesOut must
// lie within [edgesIn[0], edgesIn[len(edgesIn)-1]].
func Reaverage(edgesIn []float64, y *core.Array, edgesOut []float64, opts ...Option) (*core.Array, []float64, error) {
	cfg := applyOptions(opts)
	if cfg.numWeight != nil {
		return nil, nil, fmt.Errorf("%w: numerator weight is only used by Average", ErrInvalidOption)
	}

	if err := core.ValidateIncreasing("edgesIn", edgesIn, 2); err != nil {
		return nil, nil, err
	}
	if err := core.ValidateIncreasing("edgesOut", edgesOut, 2); err != nil {
		return nil, nil, err
	}

	if y == nil {
		return nil, nil, fmt.Errorf("%w: nil y", ErrShapeMismatch)
	}
	axis, err := y.NormalizeAxis(cfg.axis)
	if err != nil {
		return nil, nil, err
	}

	bins := len(edgesIn) - 1
	if got := y.Shape()[axis]; got != bins {
		return nil, nil, fmt.Errorf("%w: y has %d values along axis %d, edgesIn has %d bins", ErrShapeMismatch, got, axis, bins)
	}

	w0 := cfg.weight
	if w0 == nil {
		w0 = core.Diff(edgesIn)
	}
	if err := core.ValidateLen("weight", w0, bins); err != nil {
		return nil, nil, err
	}
	if cfg.outWeight != nil {
		if err := core.ValidateLen("output weight", cfg.outWeight, len(edgesOut)-1); err != nil {
			return nil, nil, err
		}
	}

	if err := checkDegree(cfg.degree, len(edgesIn)); err != nil {
		return nil, nil, err
	}
	if err := core.ValidateWithin("edgesOut", edgesOut, edgesIn); err != nil {
		return nil, nil, err
	}

	redistribute := func(m mat.Matrix) (*mat.Dense, error) {
		return reintegrate(cfg.fitter, edgesIn, m, edgesOut, cfg.degree)
	}

	w1 := append([]float64(nil), cfg.outWeight...)
	if cfg.outWeight == nil {
		wm, err := redistribute(axisVector(w0))
		if err != nil {
			return nil, nil, err
		}
		w1 = mat.Col(nil, 0, wm)
	}

	lanes := y.Lanes(axis)
	weightLanes(lanes, w0)

	num, err := runLanes(cfg.workers, lanes, redistribute)
	if err != nil {
		return nil, nil, err
	}
	divideRows(num, w1)

	avg, err := core.FromLanes(num, y.Shape(), axis)
	if err != nil {
		return nil, nil, err
	}

	return avg, w1, nil
}

// reintegrate moves per-bin contents v (one row per source bin) onto the
// destination edges through the interpolated cumulative profile.
func reintegrate(f spline.Fitter, src []float64, v mat.Matrix, dst []float64, degree int) (*mat.Dense, error) {
	rows, cols := v.Dims()
	cum := mat.NewDense(rows+1, cols, nil)

	col := make([]float64, rows)
	acc := make([]float64, rows)
	for j := range cols {
		floats.CumSum(acc, mat.Col(col, j, v))
		for i, s := range acc {
			cum.Set(i+1, j, s)
		}
	}

	return spline.InterpolateDiff(f, src, cum, degree, dst)
}
