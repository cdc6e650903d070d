package spline

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-binavg/dsp/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BSpline fits exact B-spline interpolants.
//
// Knot placement by degree:
//
//	k = 0      step function, left rule; the last sample only closes the range
//	k = 1      piecewise linear through every sample
//	k = 2      Greville midpoints without the first and last
//	odd k      not-a-knot: x[m+1 : N-m-1] with m = (k-1)/2
//	even k > 2 midpoints without k/2 at each end
//
// Boundary knots are repeated k+1 times so the spline is clamped.
type BSpline struct{}

// Fit implements [Fitter].
func (BSpline) Fit(x []float64, y mat.Matrix, degree int) (Interpolant, error) {
	if err := checkInput(x, y, degree); err != nil {
		return nil, err
	}

	n := len(x)
	if degree == 0 {
		t := append(append(make([]float64, 0, n+1), x...), x[n-1])
		return &bspline{t: t, c: mat.DenseCopyOf(y), k: 0}, nil
	}

	t := interpKnots(x, degree)

	spans := make([]int, n)
	kl, ku := 0, 0
	for j, xj := range x {
		l := span(t, degree, n, xj)
		spans[j] = l
		kl = max(kl, j-(l-degree))
		ku = max(ku, l-j)
	}

	a := mat.NewBandDense(n, n, kl, ku, nil)
	b := make([]float64, degree+1)
	for j, xj := range x {
		l := spans[j]
		basis(t, degree, l, xj, b)
		for i, v := range b {
			a.SetBand(j, l-degree+i, v)
		}
	}

	c, err := solveBand(a, y)
	if err != nil {
		return nil, err
	}

	return &bspline{t: t, c: c, k: degree}, nil
}

// solveBand solves a·c = y by Gaussian elimination without pivoting. The
// collocation matrix is totally positive, so no row exchanges are needed and
// the band structure has no fill-in. a is overwritten.
func solveBand(a *mat.BandDense, y mat.Matrix) (*mat.Dense, error) {
	n, _ := a.Dims()
	kl, ku := a.Bandwidth()
	c := mat.DenseCopyOf(y)

	for p := range n {
		piv := a.At(p, p)
		if piv == 0 || math.IsNaN(piv) {
			return nil, fmt.Errorf("%w: zero pivot in collocation matrix at row %d", ErrFitting, p)
		}
		last := min(n-1, p+ku)
		for i := p + 1; i <= min(n-1, p+kl); i++ {
			f := a.At(i, p) / piv
			if f == 0 {
				continue
			}
			for j := p + 1; j <= last; j++ {
				a.SetBand(i, j, a.At(i, j)-f*a.At(p, j))
			}
			floats.AddScaled(c.RawRowView(i), -f, c.RawRowView(p))
		}
	}

	for p := n - 1; p >= 0; p-- {
		row := c.RawRowView(p)
		for j := p + 1; j <= min(n-1, p+ku); j++ {
			floats.AddScaled(row, -a.At(p, j), c.RawRowView(j))
		}
		floats.Scale(1/a.At(p, p), row)
	}

	return c, nil
}

// bspline is a clamped B-spline with one coefficient column per lane.
type bspline struct {
	t []float64  // knots, len(t) = n+k+1
	c *mat.Dense // n×lanes coefficients
	k int
}

// interpKnots returns the interpolation knot vector for degree k >= 1.
func interpKnots(x []float64, k int) []float64 {
	n := len(x)

	var interior []float64
	switch {
	case k == 1:
		interior = x[1 : n-1]
	case k%2 == 1:
		m := (k - 1) / 2
		interior = x[m+1 : n-m-1]
	default:
		mid := make([]float64, n-1)
		for i := range mid {
			mid[i] = 0.5 * (x[i] + x[i+1])
		}
		m := k / 2
		interior = mid[m : len(mid)-m]
	}

	t := make([]float64, 0, n+k+1)
	for range k + 1 {
		t = append(t, x[0])
	}
	t = append(t, interior...)
	for range k + 1 {
		t = append(t, x[n-1])
	}

	return t
}

// span returns l in [k, n-1] with t[l] <= v < t[l+1], clamped to the outer
// polynomial pieces and never on a zero-length interval.
func span(t []float64, k, n int, v float64) int {
	l := k + sort.Search(n-k-1, func(i int) bool { return t[k+1+i] > v })
	for l > k && t[l] == t[l+1] {
		l--
	}

	return l
}

// basis fills b[0..k] with the non-zero B-splines B_{l-k+i,k}(v).
func basis(t []float64, k, l int, v float64, b []float64) {
	b[0] = 1
	if k == 0 {
		return
	}

	left := make([]float64, k+1)
	right := make([]float64, k+1)
	for j := 1; j <= k; j++ {
		left[j] = v - t[l+1-j]
		right[j] = t[l+j] - v

		saved := 0.0
		for r := range j {
			tmp := b[r] / (right[r+1] + left[j-r])
			b[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		b[j] = saved
	}
}

// Evaluate implements [Interpolant].
func (s *bspline) Evaluate(q []float64) (*mat.Dense, error) {
	n, lanes := s.c.Dims()
	lo, hi := s.t[s.k], s.t[n]
	out := mat.NewDense(len(q), lanes, nil)
	b := make([]float64, s.k+1)

	for r, v := range q {
		if v < lo || v > hi || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: %g not in [%g, %g]", core.ErrOutOfRange, v, lo, hi)
		}

		l := span(s.t, s.k, n, v)
		basis(s.t, s.k, l, v, b)

		row := out.RawRowView(r)
		for i, w := range b {
			if w == 0 {
				continue
			}
			floats.AddScaled(row, w, s.c.RawRowView(l-s.k+i))
		}
	}

	return out, nil
}

// Antiderivative implements [Interpolant].
func (s *bspline) Antiderivative() Interpolant {
	n, lanes := s.c.Dims()
	k := s.k

	t := make([]float64, 0, len(s.t)+2)
	t = append(t, s.t[0])
	t = append(t, s.t...)
	t = append(t, s.t[len(s.t)-1])

	c := mat.NewDense(n+1, lanes, nil)
	for i := range n {
		scale := (s.t[i+k+1] - s.t[i]) / float64(k+1)
		floats.AddScaledTo(c.RawRowView(i+1), c.RawRowView(i), scale, s.c.RawRowView(i))
	}

	return &bspline{t: t, c: c, k: k + 1}
}
