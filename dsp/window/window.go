// Package window generates cosine-sum analysis windows for spectral
// estimation.
package window

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// ErrUnknownType is returned by [Lookup] for an unregistered name.
var ErrUnknownType = errors.New("window: unknown type")

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeFlatTop
)

// Cosine-sum coefficients a_k of w(x) = sum a_k cos(2πkx), x in [0, 1].
var coeffs = map[Type][]float64{
	TypeRectangular:         {1},
	TypeHann:                {0.5, -0.5},
	TypeHamming:             {0.54, -0.46},
	TypeBlackman:            {0.42, -0.5, 0.08},
	TypeBlackmanHarris4Term: {0.35875, -0.48829, 0.14128, -0.01168},
	TypeFlatTop:             {0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368},
}

var names = map[string]Type{
	"rectangular":        TypeRectangular,
	"hann":               TypeHann,
	"hamming":            TypeHamming,
	"blackman":           TypeBlackman,
	"blackman-harris-4t": TypeBlackmanHarris4Term,
	"flat-top":           TypeFlatTop,
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length. Unknown types
// yield the rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}
	if length == 1 {
		return []float64{1}
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	a, ok := coeffs[t]
	if !ok {
		a = coeffs[TypeRectangular]
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = cosineSum(samplePosition(i, length, cfg.periodic), a)
	}

	return out
}

// Apply multiplies buf in-place by the selected window and returns the
// window's power gain, the sum of the squared coefficients.
func Apply(t Type, buf []float64, opts ...Option) float64 {
	if len(buf) == 0 {
		return 0
	}

	w := Generate(t, len(buf), opts...)
	vecmath.MulBlockInPlace(buf, w)

	return vecmath.DotProduct(w, w)
}

// Lookup returns the window registered under name (case-insensitive).
func Lookup(name string) (Type, error) {
	t, ok := names[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Names lists the registered window names in sorted order.
func Names() []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// String returns the registered name of t.
func (t Type) String() string {
	for n, v := range names {
		if v == t {
			return n
		}
	}
	return fmt.Sprintf("window.Type(%d)", int(t))
}

func cosineSum(x float64, a []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range a {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
