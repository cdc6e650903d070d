package core

import "fmt"

// ValidateIncreasing checks that v holds at least minLen strictly increasing
// values. name identifies the argument in the returned error.
func ValidateIncreasing(name string, v []float64, minLen int) error {
	if len(v) < minLen {
		return fmt.Errorf("%w: %s needs at least %d values, got %d", ErrShapeMismatch, name, minLen, len(v))
	}

	for i := 1; i < len(v); i++ {
		// Negated comparison so that NaN fails too.
		if !(v[i] > v[i-1]) {
			return fmt.Errorf("%w: %s[%d]=%g, %s[%d]=%g", ErrNotMonotonic, name, i-1, v[i-1], name, i, v[i])
		}
	}

	return nil
}

// ValidateWithin checks that the increasing sequence q lies inside the
// closed interval spanned by the increasing sequence support.
func ValidateWithin(name string, q, support []float64) error {
	if len(q) == 0 || len(support) == 0 {
		return nil
	}

	lo, hi := support[0], support[len(support)-1]
	if q[0] < lo || q[len(q)-1] > hi {
		return fmt.Errorf("%w: %s spans [%g, %g], support is [%g, %g]",
			ErrOutOfRange, name, q[0], q[len(q)-1], lo, hi)
	}

	return nil
}

// ValidateLen checks that an axis-only vector matches the axis length.
func ValidateLen(name string, v []float64, want int) error {
	if len(v) != want {
		return fmt.Errorf("%w: %s has length %d, axis has length %d", ErrShapeMismatch, name, len(v), want)
	}
	return nil
}
