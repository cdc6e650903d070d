package spline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-binavg/dsp/core"
	"gonum.org/v1/gonum/mat"
)

// ErrFitting is returned when no interpolant of the requested degree can be
// fitted through the given points.
var ErrFitting = errors.New("spline: fitting failed")

// Interpolant is a fitted piecewise polynomial over one or more lanes.
type Interpolant interface {
	// Evaluate returns a len(q)×lanes matrix of interpolant values. Query
	// points must lie inside the fitted knot range.
	Evaluate(q []float64) (*mat.Dense, error)

	// Antiderivative returns the interpolant whose derivative is the
	// receiver, fixed at zero on the first knot.
	Antiderivative() Interpolant
}

// Fitter fits interpolants. y has one row per knot and one column per lane.
type Fitter interface {
	Fit(x []float64, y mat.Matrix, degree int) (Interpolant, error)
}

// IntegrateDiff returns the definite integrals of the interpolant through
// (x, y) between consecutive query points, one row per interval.
func IntegrateDiff(f Fitter, x []float64, y mat.Matrix, degree int, q []float64) (*mat.Dense, error) {
	return evalDiff(f, x, y, degree, q, true)
}

// InterpolateDiff returns the differences of the interpolant through (x, y)
// between consecutive query points, one row per interval.
func InterpolateDiff(f Fitter, x []float64, y mat.Matrix, degree int, q []float64) (*mat.Dense, error) {
	return evalDiff(f, x, y, degree, q, false)
}

func evalDiff(f Fitter, x []float64, y mat.Matrix, degree int, q []float64, integrate bool) (*mat.Dense, error) {
	if err := core.ValidateIncreasing("q", q, 2); err != nil {
		return nil, err
	}
	if err := core.ValidateWithin("q", q, x); err != nil {
		return nil, err
	}

	ip, err := f.Fit(x, y, degree)
	if err != nil {
		return nil, err
	}
	if integrate {
		ip = ip.Antiderivative()
	}

	v, err := ip.Evaluate(q)
	if err != nil {
		return nil, err
	}

	return DiffRows(v), nil
}

// DiffRows returns the successive row differences of m.
func DiffRows(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r-1, c, nil)
	for i := range r - 1 {
		for j := range c {
			out.Set(i, j, m.At(i+1, j)-m.At(i, j))
		}
	}

	return out
}

// checkInput validates the common fit preconditions.
func checkInput(x []float64, y mat.Matrix, degree int) error {
	if err := core.ValidateIncreasing("x", x, 1); err != nil {
		return err
	}
	if r, _ := y.Dims(); r != len(x) {
		return fmt.Errorf("%w: %d knots, %d value rows", core.ErrShapeMismatch, len(x), r)
	}
	if degree < 0 {
		return fmt.Errorf("%w: negative degree %d", ErrFitting, degree)
	}
	if len(x) < degree+1 {
		return fmt.Errorf("%w: degree %d needs at least %d points, got %d", ErrFitting, degree, degree+1, len(x))
	}

	return nil
}
