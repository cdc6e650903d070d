package core

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Array is an immutable-by-convention N-dimensional array of float64 in
// row-major order. The transforms treat one axis as the sampled axis and
// every other index combination as an independent lane.
type Array struct {
	shape []int
	data  []float64
}

// NewArray wraps data with the given shape. Every dimension must be positive
// and the product of the shape must equal len(data). The data slice is not
// copied.
func NewArray(data []float64, shape ...int) (*Array, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("%w: array needs at least one dimension", ErrShapeMismatch)
	}

	size := 1
	for i, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("%w: dimension %d has size %d", ErrShapeMismatch, i, d)
		}
		size *= d
	}

	if size != len(data) {
		return nil, fmt.Errorf("%w: shape %v needs %d values, got %d", ErrShapeMismatch, shape, size, len(data))
	}

	return &Array{shape: append([]int(nil), shape...), data: data}, nil
}

// Vector wraps a 1-D slice. The slice is not copied.
func Vector(data []float64) *Array {
	return &Array{shape: []int{len(data)}, data: data}
}

// Shape returns a copy of the array dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.data) }

// Data returns the underlying row-major storage. Callers must not modify it.
func (a *Array) Data() []float64 { return a.data }

// At returns the element at the given multi-index. It panics on a rank or
// bounds mismatch, like slice indexing.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("core: index rank %d, array rank %d", len(idx), len(a.shape)))
	}

	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			panic(fmt.Sprintf("core: index %d out of range [0,%d) on axis %d", v, a.shape[i], i))
		}
		off = off*a.shape[i] + v
	}

	return a.data[off]
}

// NormalizeAxis maps axis from [-ndim, ndim) to [0, ndim).
func (a *Array) NormalizeAxis(axis int) (int, error) {
	return NormalizeAxis(axis, len(a.shape))
}

// NormalizeAxis maps axis from [-ndim, ndim) to [0, ndim).
func NormalizeAxis(axis, ndim int) (int, error) {
	if axis < -ndim || axis >= ndim {
		return 0, fmt.Errorf("%w: axis %d for %d-dimensional array", ErrAxis, axis, ndim)
	}
	if axis < 0 {
		axis += ndim
	}

	return axis, nil
}

// split returns the products of the dimensions before and after axis.
func split(shape []int, axis int) (outer, inner int) {
	outer, inner = 1, 1
	for i, d := range shape {
		switch {
		case i < axis:
			outer *= d
		case i > axis:
			inner *= d
		}
	}

	return outer, inner
}

// Lanes gathers the array into a matrix with one row per position along
// axis and one column per lane. Column o*inner+i holds the lane at outer
// index o and inner index i. axis must already be normalised.
func (a *Array) Lanes(axis int) *mat.Dense {
	n := a.shape[axis]
	outer, inner := split(a.shape, axis)
	m := mat.NewDense(n, outer*inner, nil)

	for o := range outer {
		base := o * n * inner
		for j := range n {
			row := m.RawRowView(j)
			copy(row[o*inner:(o+1)*inner], a.data[base+j*inner:base+(j+1)*inner])
		}
	}

	return m
}

// FromLanes is the inverse of [Array.Lanes]: it builds a new array shaped
// like shape except that the axis length becomes the row count of m.
func FromLanes(m mat.Matrix, shape []int, axis int) (*Array, error) {
	rows, cols := m.Dims()
	out := append([]int(nil), shape...)
	out[axis] = rows

	outer, inner := split(out, axis)
	if cols != outer*inner {
		return nil, fmt.Errorf("%w: %d lanes for shape %v", ErrShapeMismatch, cols, out)
	}

	data := make([]float64, outer*rows*inner)
	for o := range outer {
		base := o * rows * inner
		for j := range rows {
			dst := data[base+j*inner : base+(j+1)*inner]
			for i := range dst {
				dst[i] = m.At(j, o*inner+i)
			}
		}
	}

	return &Array{shape: out, data: data}, nil
}
