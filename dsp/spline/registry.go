package spline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownBackend is returned by [Lookup] for an unregistered name.
var ErrUnknownBackend = errors.New("spline: unknown back-end")

// DefaultDegree is the degree used when none is requested.
const DefaultDegree = 3

// DefaultDegree returns [DefaultDegree].
func (BSpline) DefaultDegree() int { return DefaultDegree }

var backends = map[string]func() Fitter{
	"bspline":         func() Fitter { return BSpline{} },
	"linear":          func() Fitter { return GonumLinear() },
	"akima":           func() Fitter { return GonumAkima() },
	"fritsch-butland": func() Fitter { return GonumFritschButland() },
	"natural":         func() Fitter { return GonumNaturalCubic() },
}

// Lookup returns the back-end registered under name (case-insensitive).
func Lookup(name string) (Fitter, error) {
	ctor, ok := backends[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return ctor(), nil
}

// Names lists the registered back-ends in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NaturalDegree returns the degree a back-end fits by default: the fixed
// degree of a [Gonum] predictor or [DefaultDegree] otherwise.
func NaturalDegree(f Fitter) int {
	if d, ok := f.(interface{ DefaultDegree() int }); ok {
		return d.DefaultDegree()
	}
	return DefaultDegree
}
