package bands

import "github.com/cwbudde/algo-binavg/dsp/window"

const defaultDegree = 1

type config struct {
	window  window.Type
	degree  int
	workers int
}

func defaultConfig() config {
	return config{window: window.TypeRectangular, degree: defaultDegree, workers: 1}
}

// Option configures spectrum and band analysis.
type Option func(*config)

// WithWindow selects the analysis window applied before the FFT.
// Defaults to [window.TypeRectangular].
func WithWindow(t window.Type) Option {
	return func(cfg *config) {
		cfg.window = t
	}
}

// WithDegree sets the spline degree used to integrate the density.
// Defaults to 1, the per-band trapezoidal rule, which keeps band densities
// of a non-negative spectrum non-negative. Higher degrees can ring below
// zero around sharp peaks. Negative values are ignored.
func WithDegree(k int) Option {
	return func(cfg *config) {
		if k >= 0 {
			cfg.degree = k
		}
	}
}

// WithWorkers is passed through to [binavg.WithWorkers].
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
