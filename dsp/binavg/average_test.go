package binavg

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-binavg/dsp/core"
	"github.com/cwbudde/algo-binavg/dsp/spline"
	"github.com/cwbudde/algo-binavg/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

const tolerance = 1e-9

func TestAverageLinear(t *testing.T) {
	x := floats.Span(make([]float64, 10), 0, 9)

	y, w, err := Average(x, core.Vector(x), []float64{0, 3, 6, 9})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, y.Shape())
	testutil.RequireSliceNearlyEqual(t, []float64{1.5, 4.5, 7.5}, y.Data(), tolerance)
	testutil.RequireSliceNearlyEqual(t, []float64{3, 3, 3}, w, tolerance)
}

func TestAverageWeighted(t *testing.T) {
	x := floats.Span(make([]float64, 10), 0, 9)
	w := testutil.Map(x, func(v float64) float64 { return v * v })

	y, wout, err := Average(x, core.Vector(x), []float64{0, 3, 6, 9},
		WithWeight(w), WithNumeratorWeight(x))
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, []float64{1, 1, 1}, y.Data(), tolerance)
	testutil.RequireSliceNearlyEqual(t, []float64{9, 63, 171}, wout, 1e-8)
}

func TestAverageNumeratorWeightDefaultsToWeight(t *testing.T) {
	x := floats.Span(make([]float64, 21), 0, 10)
	y := testutil.Map(x, math.Sin)
	w := testutil.Map(x, func(v float64) float64 { return 1 + v })
	edges := []float64{0, 2.5, 4, 10}

	a, wa, err := Average(x, core.Vector(y), edges, WithWeight(w))
	require.NoError(t, err)
	b, wb, err := Average(x, core.Vector(y), edges, WithWeight(w), WithNumeratorWeight(w))
	require.NoError(t, err)

	assert.Equal(t, a.Data(), b.Data())
	assert.Equal(t, wa, wb)
}

func TestAverageConstantIsExactForEveryDegree(t *testing.T) {
	x := []float64{0, 0.3, 1, 1.4, 2.2, 3, 3.9, 4.5, 5}
	y := testutil.Map(x, func(float64) float64 { return 2.5 })
	edges := []float64{0.1, 1.2, 2, 4.8}

	for k := 0; k <= 5; k++ {
		got, w, err := Average(x, core.Vector(y), edges, WithDegree(k))
		require.NoError(t, err, "degree %d", k)
		testutil.RequireSliceNearlyEqual(t, []float64{2.5, 2.5, 2.5}, got.Data(), tolerance)
		testutil.RequireSliceNearlyEqual(t, core.Diff(edges), w, tolerance)
	}
}

func TestAverageZeroWeightBin(t *testing.T) {
	x := floats.Span(make([]float64, 10), 0, 9)
	w := []float64{1, 1, 1, 0, 0, 0, 0, 1, 1, 1}

	y, wout, err := Average(x, core.Vector(x), []float64{0, 3, 6, 9}, WithWeight(w), WithDegree(1))
	require.NoError(t, err)

	assert.Equal(t, 0.0, wout[1])
	assert.True(t, math.IsNaN(y.Data()[1]), "got %v", y.Data()[1])
	assert.True(t, core.IsFinite(y.Data()[0]))
	assert.True(t, core.IsFinite(y.Data()[2]))

	// Higher degrees ring across the zero run, so the bin weight is small
	// but not exactly zero and the average stays finite.
	y, wout, err = Average(x, core.Vector(x), []float64{0, 3, 6, 9}, WithWeight(w))
	require.NoError(t, err)
	assert.NotEqual(t, 0.0, wout[1])
	assert.Less(t, math.Abs(wout[1]), 0.1*wout[0])
	assert.InDelta(t, 4.5, y.Data()[1], 1e-6)
}

func TestAverageLargeInput(t *testing.T) {
	const n = 100000
	x := floats.Span(make([]float64, n), 0, n-1)

	for _, k := range []int{1, 3} {
		y, w, err := Average(x, core.Vector(x), []float64{0, 1000, n - 1}, WithDegree(k))
		require.NoError(t, err)
		assert.InEpsilonSlice(t, []float64{500, (1000 + n - 1) / 2.0}, y.Data(), 1e-9, "degree %d", k)
		assert.InEpsilonSlice(t, []float64{1000, n - 1 - 1000}, w, 1e-9, "degree %d", k)
	}
}

func TestAverageAxisMatchesManualLoop(t *testing.T) {
	const d0, d2 = 2, 3
	x := []float64{0, 0.5, 1.5, 2, 3, 4.5, 5, 6}
	n := len(x)
	edges := []float64{0, 1, 2.5, 6}
	w := testutil.DeterministicUniform(1, 0.5, 2, n)

	data := testutil.DeterministicUniform(2, -1, 1, d0*n*d2)
	y, err := core.NewArray(data, d0, n, d2)
	require.NoError(t, err)

	for _, axis := range []int{1, -2} {
		got, wout, err := Average(x, y, edges, WithAxis(axis), WithWeight(w))
		require.NoError(t, err)
		require.Equal(t, []int{d0, len(edges) - 1, d2}, got.Shape())

		for o := range d0 {
			for i := range d2 {
				lane := make([]float64, n)
				for j := range n {
					lane[j] = y.At(o, j, i)
				}
				want, wantW, err := Average(x, core.Vector(lane), edges, WithWeight(w))
				require.NoError(t, err)
				testutil.RequireSliceNearlyEqual(t, wantW, wout, tolerance)
				for b := range len(edges) - 1 {
					assert.InDelta(t, want.At(b), got.At(o, b, i), tolerance)
				}
			}
		}
	}
}

func TestAverageDefaultAxisIsLast(t *testing.T) {
	x := floats.Span(make([]float64, 5), 0, 4)
	data := append(append([]float64(nil), x...), testutil.Map(x, func(v float64) float64 { return 2 * v })...)
	y, err := core.NewArray(data, 2, 5)
	require.NoError(t, err)

	got, _, err := Average(x, y, []float64{0, 2, 4}, WithDegree(1))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, got.Shape())
	testutil.RequireSliceNearlyEqual(t, []float64{1, 3, 2, 6}, got.Data(), tolerance)
}

func TestAverageWorkersMatchSerial(t *testing.T) {
	x := floats.Span(make([]float64, 17), 0, 4)
	data := testutil.DeterministicUniform(3, 0, 10, 7*len(x))
	y, err := core.NewArray(data, 7, len(x))
	require.NoError(t, err)
	edges := []float64{0, 0.9, 2, 3.1, 4}

	serial, ws, err := Average(x, y, edges)
	require.NoError(t, err)
	parallel, wp, err := Average(x, y, edges, WithWorkers(3))
	require.NoError(t, err)

	assert.Equal(t, ws, wp)
	testutil.RequireSliceNearlyEqual(t, serial.Data(), parallel.Data(), 1e-12)
}

func TestAverageGonumBackend(t *testing.T) {
	x := floats.Span(make([]float64, 10), 0, 9)

	for _, f := range []spline.Gonum{spline.GonumNaturalCubic(), spline.GonumAkima(), spline.GonumLinear()} {
		y, w, err := Average(x, core.Vector(x), []float64{0, 3, 6, 9}, WithFitter(f), WithDegree(f.Degree))
		require.NoError(t, err)
		testutil.RequireSliceNearlyEqual(t, []float64{1.5, 4.5, 7.5}, y.Data(), tolerance)
		testutil.RequireSliceNearlyEqual(t, []float64{3, 3, 3}, w, tolerance)
	}
}

func TestAverageErrors(t *testing.T) {
	x := floats.Span(make([]float64, 10), 0, 9)
	y := core.Vector(x)
	edges := []float64{0, 3, 6, 9}

	tests := []struct {
		name  string
		x     []float64
		y     *core.Array
		edges []float64
		opts  []Option
		err   error
	}{
		{name: "x not increasing", x: []float64{0, 1, 1, 3, 4, 5, 6, 7, 8, 9}, y: y, edges: edges, err: ErrNotMonotonic},
		{name: "edges not increasing", x: x, y: y, edges: []float64{0, 6, 3, 9}, err: ErrNotMonotonic},
		{name: "single edge", x: x, y: y, edges: []float64{1}, err: ErrShapeMismatch},
		{name: "axis", x: x, y: y, edges: edges, opts: []Option{WithAxis(1)}, err: ErrAxis},
		{name: "negative axis", x: x, y: y, edges: edges, opts: []Option{WithAxis(-2)}, err: ErrAxis},
		{name: "nil values", x: x, y: nil, edges: edges, err: ErrShapeMismatch},
		{name: "y length", x: x, y: core.Vector(x[:9]), edges: edges, err: ErrShapeMismatch},
		{name: "weight length", x: x, y: y, edges: edges, opts: []Option{WithWeight(x[:5])}, err: ErrShapeMismatch},
		{name: "numerator weight length", x: x, y: y, edges: edges, opts: []Option{WithNumeratorWeight(x[:5])}, err: ErrShapeMismatch},
		{name: "degree too high", x: x[:3], y: core.Vector(x[:3]), edges: []float64{0, 2}, err: ErrFitting},
		{name: "negative degree", x: x, y: y, edges: edges, opts: []Option{WithDegree(-1)}, err: ErrFitting},
		{name: "edges beyond samples", x: x, y: y, edges: []float64{0, 3, 9.5}, err: ErrOutOfRange},
		{name: "output weight", x: x, y: y, edges: edges, opts: []Option{WithOutputWeight([]float64{1, 1, 1})}, err: ErrInvalidOption},
		{name: "back-end degree", x: x, y: y, edges: edges, opts: []Option{WithFitter(spline.GonumLinear())}, err: ErrFitting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Average(tt.x, tt.y, tt.edges, tt.opts...)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
