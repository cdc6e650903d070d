// Package binavg averages sampled functions into bins and re-bins averaged
// data onto new edges while conserving the integral.
//
// [Average] turns samples (x, y) into bin averages over edges X:
//
//	Y_i = ∫_{X_i}^{X_{i+1}} y(x) w'(x) dx / W_i
//	W_i = ∫_{X_i}^{X_{i+1}} w(x) dx
//
// where y·w' and w are replaced by their spline interpolants.
//
// [Reaverage] moves averaged data (X0, Y0, W0) onto new edges X1 without the
// original samples. It interpolates the cumulative mass
//
//	Z(X0_i) = Σ_{j<i} Y0_j W0_j
//
// and differences it on X1, so the total mass is preserved whenever X1
// spans X0:
//
//	Y1_i = (Z(X1_{i+1}) - Z(X1_i)) / W1_i
//
// W1 is redistributed from W0 the same way unless given.
//
// # Arrays and axes
//
// Values are [core.Array] values of any rank. The averaging axis defaults to
// the last axis; every other index combination is an independent lane.
// Weights are axis-only and shared by every lane, and the returned weight is
// a plain slice with one entry per output bin.
//
// # Zero weights
//
// A bin whose weight integral is exactly zero produces a non-finite average
// (±Inf or NaN). This is not an error: an empty bin can be legitimate, and
// callers check with math.IsNaN / math.IsInf. Only degrees 0 and 1 keep a
// run of zero weights at exactly zero between its samples; higher degrees
// ring across the run and leave a small non-zero weight.
package binavg
