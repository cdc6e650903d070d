// Package spline provides the interpolation primitive behind the binning
// transforms: fit an exact interpolant through ordered samples, take its
// antiderivative, evaluate at query points and difference.
//
// Back-ends implement [Fitter]:
//
//   - [BSpline]: degree-k B-spline interpolation with not-a-knot style knots
//     (the default)
//   - [Gonum]:   gonum/interp predictors (linear, Akima, Fritsch-Butland,
//     natural cubic) with an exact per-segment Gauss-Legendre antiderivative
//
// Values are passed as matrices with one row per knot and one column per
// independent lane, so a single fit serves every lane.
package spline
