package bands

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-binavg/dsp/binavg"
	"github.com/cwbudde/algo-binavg/dsp/core"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/integrate"
)

// Result holds band-averaged spectral data.
type Result struct {
	Edges   []float64 // band edges in Hz, len(Density)+1 values
	Density []float64 // mean power spectral density per band
	Width   []float64 // integrated weight per band, the bandwidth in Hz
	Power   []float64 // band power, Density × Width
}

// PowerDB returns 10*log10 of each band power. Returns -Inf for zero power.
func (r *Result) PowerDB() []float64 {
	out := make([]float64, len(r.Power))
	for i, p := range r.Power {
		if p <= 0 {
			out[i] = math.Inf(-1)
			continue
		}
		out[i] = 10 * math.Log10(p)
	}
	return out
}

// Total returns the summed band power.
func (r *Result) Total() float64 {
	return vecmath.Sum(r.Power)
}

// Analyze computes the power spectrum of signal and averages it into the
// bands delimited by edges. edges must lie within [0, sampleRate/2].
func Analyze(signal []float64, sampleRate float64, edges []float64, opts ...Option) (*Result, error) {
	if len(edges) < 2 {
		return nil, ErrNoBands
	}

	freqs, psd, err := PowerSpectrum(signal, sampleRate, opts...)
	if err != nil {
		return nil, err
	}

	return AnalyzeSpectrum(freqs, psd, edges, opts...)
}

// AnalyzeSpectrum averages an existing density sampled at freqs into the
// bands delimited by edges. Degree 1 integrates each band on its own with
// the trapezoidal rule, so a non-negative density gives non-negative bands.
// Other degrees go through [binavg.Average].
func AnalyzeSpectrum(freqs, psd, edges []float64, opts ...Option) (*Result, error) {
	if len(edges) < 2 {
		return nil, ErrNoBands
	}
	cfg := applyOptions(opts)

	if cfg.degree == 1 {
		density, err := trapezoidBands(freqs, psd, edges)
		if err != nil {
			return nil, fmt.Errorf("bands: %w", err)
		}
		return newResult(edges, density, core.Diff(edges)), nil
	}

	density, width, err := binavg.Average(freqs, core.Vector(psd), edges,
		binavg.WithDegree(cfg.degree), binavg.WithWorkers(cfg.workers))
	if err != nil {
		return nil, fmt.Errorf("bands: %w", err)
	}

	return newResult(edges, density.Data(), width), nil
}

// trapezoidBands returns the mean of the piecewise linear interpolant of
// (freqs, psd) over every band. Band ends between samples are interpolated.
func trapezoidBands(freqs, psd, edges []float64) ([]float64, error) {
	if err := core.ValidateIncreasing("freqs", freqs, 2); err != nil {
		return nil, err
	}
	if err := core.ValidateLen("psd", psd, len(freqs)); err != nil {
		return nil, err
	}
	if err := core.ValidateIncreasing("edges", edges, 2); err != nil {
		return nil, err
	}
	if err := core.ValidateWithin("edges", edges, freqs); err != nil {
		return nil, err
	}

	density := make([]float64, len(edges)-1)
	var xs, fs []float64
	for b := range density {
		lo, hi := edges[b], edges[b+1]
		i0 := sort.Search(len(freqs), func(i int) bool { return freqs[i] > lo })
		i1 := sort.SearchFloat64s(freqs, hi)

		xs = append(append(append(xs[:0], lo), freqs[i0:i1]...), hi)
		fs = append(append(append(fs[:0], linearAt(freqs, psd, lo)), psd[i0:i1]...), linearAt(freqs, psd, hi))

		density[b] = integrate.Trapezoidal(xs, fs) / (hi - lo)
	}

	return density, nil
}

// linearAt interpolates f linearly at v in [x[0], x[len(x)-1]].
func linearAt(x, f []float64, v float64) float64 {
	j := sort.SearchFloat64s(x, v)
	if x[j] == v {
		return f[j]
	}

	t := (v - x[j-1]) / (x[j] - x[j-1])
	return (1-t)*f[j-1] + t*f[j]
}

// Rebin moves band data onto new edges without the original spectrum. Total
// power is conserved when edges span the same range as r.Edges.
func Rebin(r *Result, edges []float64, opts ...Option) (*Result, error) {
	if len(edges) < 2 {
		return nil, ErrNoBands
	}
	cfg := applyOptions(opts)

	density, width, err := binavg.Reaverage(r.Edges, core.Vector(r.Density), edges,
		binavg.WithWeight(r.Width), binavg.WithDegree(cfg.degree), binavg.WithWorkers(cfg.workers))
	if err != nil {
		return nil, fmt.Errorf("bands: %w", err)
	}

	return newResult(edges, density.Data(), width), nil
}

func newResult(edges, density, width []float64) *Result {
	power := make([]float64, len(density))
	vecmath.MulBlock(power, density, width)

	return &Result{
		Edges:   append([]float64(nil), edges...),
		Density: density,
		Width:   width,
		Power:   power,
	}
}
