package binavg

import (
	"fmt"

	"github.com/cwbudde/algo-binavg/dsp/spline"
	"github.com/cwbudde/algo-vecmath"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// laneFunc transforms a block of lanes (one column each).
type laneFunc func(mat.Matrix) (*mat.Dense, error)

// runLanes applies fn to m, splitting the columns into contiguous chunks
// when more than one worker is configured.
func runLanes(workers int, m *mat.Dense, fn laneFunc) (*mat.Dense, error) {
	rows, cols := m.Dims()
	if workers <= 1 || cols < 2 {
		return fn(m)
	}
	workers = min(workers, cols)

	chunk := (cols + workers - 1) / workers
	parts := make([]*mat.Dense, (cols+chunk-1)/chunk)

	var g errgroup.Group
	g.SetLimit(workers)
	for p := range parts {
		lo := p * chunk
		hi := min(lo+chunk, cols)
		g.Go(func() error {
			res, err := fn(m.Slice(0, rows, lo, hi))
			if err != nil {
				return fmt.Errorf("lanes %d-%d: %w", lo, hi-1, err)
			}
			parts[p] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outRows, _ := parts[0].Dims()
	out := mat.NewDense(outRows, cols, nil)
	for p, part := range parts {
		lo := p * chunk
		_, c := part.Dims()
		out.Slice(0, outRows, lo, lo+c).(*mat.Dense).Copy(part)
	}

	return out, nil
}

// weightLanes multiplies row j of the lane matrix by w[j], the broadcast of
// an axis-only weight onto every lane.
func weightLanes(m *mat.Dense, w []float64) {
	raw := m.RawMatrix()
	if raw.Cols == 1 && raw.Stride == 1 {
		vecmath.MulBlockInPlace(raw.Data[:raw.Rows], w)
		return
	}

	for j, v := range w {
		vecmath.ScaleBlockInPlace(m.RawRowView(j), v)
	}
}

// divideRows divides row i of m by w[i]. A zero weight yields ±Inf or NaN.
func divideRows(m *mat.Dense, w []float64) {
	for i, d := range w {
		vecmath.ScaleBlockInPlace(m.RawRowView(i), 1/d)
	}
}

// axisVector wraps an axis-only vector as a single-lane matrix.
func axisVector(v []float64) *mat.Dense {
	return mat.NewDense(len(v), 1, append([]float64(nil), v...))
}

func checkDegree(degree, points int) error {
	if degree < 0 || points < degree+1 {
		return fmt.Errorf("%w: degree %d with %d points", spline.ErrFitting, degree, points)
	}
	return nil
}
