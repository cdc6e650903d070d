package bands

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-binavg/dsp/binavg"
	"github.com/cwbudde/algo-binavg/dsp/core"
	"github.com/cwbudde/algo-binavg/dsp/window"
	"github.com/cwbudde/algo-binavg/internal/testutil"
	"github.com/cwbudde/algo-vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(freq, sampleRate, amp float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func meanSquare(x []float64) float64 {
	return vecmath.DotProduct(x, x) / float64(len(x))
}

func TestOctaveCenters(t *testing.T) {
	b := Octave(1, 20, 20000)
	require.Len(t, b, 10)
	assert.InDelta(t, 1000/math.Pow(10, 1.5), b[0].Center, 1e-9)
	assert.InDelta(t, 1000, b[5].Center, 1e-9)

	for i := 1; i < len(b); i++ {
		assert.Greater(t, b[i].Center, b[i-1].Center)
	}
}

func TestOctaveThirdBandCount(t *testing.T) {
	assert.Len(t, Octave(3, 20, 20000), 30)
	assert.Empty(t, Octave(3, 100, 50))
	assert.Len(t, Octave(0, 20, 20000), 10, "fraction <= 0 falls back to octaves")
}

func TestEdgesContiguous(t *testing.T) {
	b := Octave(3, 50, 5000)
	e := Edges(b)
	require.Len(t, e, len(b)+1)

	for i, band := range b {
		assert.InDelta(t, band.Low, e[i], 1e-9)
		assert.InDelta(t, 1, band.High/e[i+1], 1e-12)
		assert.True(t, band.Low < band.Center && band.Center < band.High)
	}
	assert.Nil(t, Edges(nil))
}

func TestPowerSpectrumParseval(t *testing.T) {
	x := testutil.DeterministicUniform(5, -1, 1, 1024)
	freqs, psd, err := PowerSpectrum(x, 8000)
	require.NoError(t, err)
	require.Len(t, psd, 513)
	assert.Equal(t, 0.0, freqs[0])
	assert.InDelta(t, 4000, freqs[512], 1e-9)

	df := freqs[1] - freqs[0]
	total := 0.0
	for _, p := range psd {
		total += p * df
	}
	assert.InDelta(t, meanSquare(x), total, 1e-9)
}

func TestPowerSpectrumErrors(t *testing.T) {
	_, _, err := PowerSpectrum(nil, 48000)
	assert.ErrorIs(t, err, ErrEmptySignal)

	_, _, err = PowerSpectrum([]float64{1, 2}, 0)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)

	_, _, err = PowerSpectrum([]float64{1, 2}, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidSampleRate)
}

func TestAnalyzePeakBand(t *testing.T) {
	const fs = 48000
	x := sine(1000, fs, 1, 8192)
	bands := Octave(3, 20, 20000)

	res, err := Analyze(x, fs, Edges(bands), WithWindow(window.TypeHann))
	require.NoError(t, err)
	require.Len(t, res.Density, len(bands))

	peak := 0
	for i, d := range res.Density {
		if d > res.Density[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 1000, bands[peak].Center, 1e-9)
	for i, d := range res.Density {
		assert.Greater(t, d, 0.0, "band %d at %g Hz", i, bands[i].Center)
	}
	testutil.RequireFinite(t, res.PowerDB())
}

func TestAnalyzeSpectrumTrapezoidMatchesLinearSpline(t *testing.T) {
	freqs := []float64{0, 50, 100, 150, 200, 250, 300, 350, 400}
	psd := make([]float64, len(freqs))
	for i, f := range freqs {
		psd[i] = 1 + math.Exp(-f/120)
	}
	edges := []float64{0, 35, 120, 125, 300, 400}

	got, err := AnalyzeSpectrum(freqs, psd, edges)
	require.NoError(t, err)

	want, width, err := binavg.Average(freqs, core.Vector(psd), edges, binavg.WithDegree(1))
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, want.Data(), got.Density, 1e-12)
	testutil.RequireSliceNearlyEqual(t, width, got.Width, 1e-12)
}

func TestAnalyzeSpectrumNarrowBandsStayPositive(t *testing.T) {
	freqs := make([]float64, 4097)
	psd := make([]float64, len(freqs))
	for i := range freqs {
		freqs[i] = float64(i) * 24000 / 4096
		psd[i] = 1e-12
	}
	psd[171] = 1e3

	res, err := AnalyzeSpectrum(freqs, psd, Edges(Octave(12, 20, 20000)))
	require.NoError(t, err)
	for i, d := range res.Density {
		assert.Greater(t, d, 0.0, "band %d", i)
	}
	testutil.RequireFinite(t, res.PowerDB())
}

func TestAnalyzeFullRangeConservesPower(t *testing.T) {
	const fs = 48000
	x := sine(1000, fs, 0.5, 8192)
	freqs, psd, err := PowerSpectrum(x, fs)
	require.NoError(t, err)

	res, err := AnalyzeSpectrum(freqs, psd, []float64{0, 500, 900, 1100, 4000, 24000})
	require.NoError(t, err)
	assert.InDelta(t, 1, res.Total()/meanSquare(x), 1e-3)
	testutil.RequireSliceNearlyEqual(t, []float64{500, 400, 200, 2900, 20000}, res.Width, 1e-9)
}

func TestRebinConservesPower(t *testing.T) {
	const fs = 48000
	x := testutil.DeterministicUniform(9, -1, 1, 4096)

	third, err := Analyze(x, fs, Edges(Octave(3, 50, 10000)), WithWindow(window.TypeHann))
	require.NoError(t, err)

	lo, hi := third.Edges[0], third.Edges[len(third.Edges)-1]
	coarse := []float64{lo, 200, 1000, 3000, hi}
	got, err := Rebin(third, coarse)
	require.NoError(t, err)

	assert.InDelta(t, 1, got.Total()/third.Total(), 1e-9)
	testutil.RequireSliceNearlyEqual(t, []float64{200 - lo, 800, 2000, hi - 3000}, got.Width, 1e-6)
}

func TestAnalyzeErrors(t *testing.T) {
	x := sine(100, 8000, 1, 256)

	_, err := Analyze(x, 8000, []float64{100})
	assert.ErrorIs(t, err, ErrNoBands)

	_, err = Analyze(x, 8000, []float64{100, 5000})
	assert.ErrorIs(t, err, binavg.ErrOutOfRange)

	_, err = Analyze(x, 8000, []float64{300, 200})
	assert.ErrorIs(t, err, binavg.ErrNotMonotonic)

	_, err = Rebin(&Result{Edges: []float64{0, 1}, Density: []float64{1}, Width: []float64{1}}, nil)
	assert.ErrorIs(t, err, ErrNoBands)
}

func TestPowerDB(t *testing.T) {
	r := &Result{Power: []float64{0, 1, 10}}
	got := r.PowerDB()
	assert.True(t, math.IsInf(got[0], -1))
	assert.Equal(t, 0.0, got[1])
	assert.InDelta(t, 10, got[2], 1e-12)
}
