package spline

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-binavg/dsp/core"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

// Gonum adapts gonum/interp predictors, fitted lane by lane. The
// antiderivative is integrated piecewise between knots with Gauss-Legendre
// quadrature of sufficient order to be exact for the polynomial pieces.
type Gonum struct {
	// New returns an unfitted predictor.
	New func() interp.FittablePredictor
	// Degree is the degree of the predictor's polynomial pieces. Fit rejects
	// any other requested degree.
	Degree int
}

// GonumLinear interpolates linearly between samples.
func GonumLinear() Gonum {
	return Gonum{New: func() interp.FittablePredictor { return &interp.PiecewiseLinear{} }, Degree: 1}
}

// GonumAkima uses Akima's local cubic spline.
func GonumAkima() Gonum {
	return Gonum{New: func() interp.FittablePredictor { return &interp.AkimaSpline{} }, Degree: 3}
}

// GonumFritschButland uses the monotone Fritsch-Butland cubic.
func GonumFritschButland() Gonum {
	return Gonum{New: func() interp.FittablePredictor { return &interp.FritschButland{} }, Degree: 3}
}

// GonumNaturalCubic uses the natural cubic spline.
func GonumNaturalCubic() Gonum {
	return Gonum{New: func() interp.FittablePredictor { return &interp.NaturalCubic{} }, Degree: 3}
}

// DefaultDegree returns the degree of the predictor pieces.
func (g Gonum) DefaultDegree() int { return g.Degree }

// Fit implements [Fitter].
func (g Gonum) Fit(x []float64, y mat.Matrix, degree int) (Interpolant, error) {
	if err := checkInput(x, y, degree); err != nil {
		return nil, err
	}
	if degree != g.Degree {
		return nil, fmt.Errorf("%w: back-end has degree %d, requested %d", ErrFitting, g.Degree, degree)
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrFitting, len(x))
	}

	_, lanes := y.Dims()
	fns := make([]func(float64) float64, lanes)
	for j := range lanes {
		p := g.New()
		if err := p.Fit(x, mat.Col(nil, j, y)); err != nil {
			return nil, fmt.Errorf("%w: lane %d: %v", ErrFitting, j, err)
		}
		fns[j] = p.Predict
	}

	return &laneFuncs{x: x, fns: fns, deg: degree}, nil
}

// laneFuncs is a piecewise polynomial of degree deg on the knots x,
// represented by one scalar function per lane.
type laneFuncs struct {
	x   []float64
	fns []func(float64) float64
	deg int
}

func (l *laneFuncs) Evaluate(q []float64) (*mat.Dense, error) {
	lo, hi := l.x[0], l.x[len(l.x)-1]
	out := mat.NewDense(len(q), len(l.fns), nil)

	for r, v := range q {
		if v < lo || v > hi || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: %g not in [%g, %g]", core.ErrOutOfRange, v, lo, hi)
		}
		row := out.RawRowView(r)
		for j, f := range l.fns {
			row[j] = f(v)
		}
	}

	return out, nil
}

func (l *laneFuncs) Antiderivative() Interpolant {
	// n-point Gauss-Legendre is exact up to degree 2n-1.
	n := (l.deg + 2) / 2
	x := l.x

	fns := make([]func(float64) float64, len(l.fns))
	for j, f := range l.fns {
		cum := make([]float64, len(x))
		for i := 1; i < len(x); i++ {
			cum[i] = cum[i-1] + quad.Fixed(f, x[i-1], x[i], n, quad.Legendre{}, 0)
		}

		fns[j] = func(v float64) float64 {
			i := segment(x, v)
			if v == x[i] {
				return cum[i]
			}
			return cum[i] + quad.Fixed(f, x[i], v, n, quad.Legendre{}, 0)
		}
	}

	return &laneFuncs{x: x, fns: fns, deg: l.deg + 1}
}

// segment returns i in [0, len(x)-2] with x[i] <= v < x[i+1], clamped.
func segment(x []float64, v float64) int {
	i := sort.Search(len(x)-1, func(i int) bool { return x[i+1] > v })
	if i > len(x)-2 {
		i = len(x) - 2
	}

	return i
}
