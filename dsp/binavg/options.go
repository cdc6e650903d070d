package binavg

import "github.com/cwbudde/algo-binavg/dsp/spline"

// DefaultAxis is the averaging axis when none is given: the last one.
const DefaultAxis = -1

type config struct {
	weight    []float64
	numWeight []float64
	outWeight []float64
	degree    int
	axis      int
	fitter    spline.Fitter
	workers   int
}

func defaultConfig() config {
	return config{
		degree:  spline.DefaultDegree,
		axis:    DefaultAxis,
		fitter:  spline.BSpline{},
		workers: 1,
	}
}

// Option configures [Average] and [Reaverage].
type Option func(*config)

// WithWeight sets the input weight, one value per position along the axis.
//
// For [Average] it is the sampled weight w(x), default 1 everywhere. For
// [Reaverage] it is the per-bin input weight W0, default the bin widths.
func WithWeight(w []float64) Option {
	return func(cfg *config) {
		cfg.weight = w
	}
}

// WithNumeratorWeight sets w'(x), the weight applied to y in the numerator
// of [Average]. It defaults to the weight from [WithWeight]. [Reaverage]
// rejects it with [ErrInvalidOption].
func WithNumeratorWeight(wp []float64) Option {
	return func(cfg *config) {
		cfg.numWeight = wp
	}
}

// WithOutputWeight fixes W1, the per-bin output weight of [Reaverage],
// instead of redistributing the input weight onto the output edges.
// [Average] rejects it with [ErrInvalidOption].
func WithOutputWeight(w []float64) Option {
	return func(cfg *config) {
		cfg.outWeight = w
	}
}

// WithDegree sets the spline degree. Defaults to 3.
func WithDegree(k int) Option {
	return func(cfg *config) {
		cfg.degree = k
	}
}

// WithAxis sets the averaging axis in [-ndim, ndim). Defaults to -1.
func WithAxis(axis int) Option {
	return func(cfg *config) {
		cfg.axis = axis
	}
}

// WithFitter replaces the interpolation back-end. Defaults to
// [spline.BSpline]. A nil fitter is ignored.
func WithFitter(f spline.Fitter) Option {
	return func(cfg *config) {
		if f != nil {
			cfg.fitter = f
		}
	}
}

// WithWorkers splits the lanes across up to n goroutines. Results are
// identical to the serial path. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
