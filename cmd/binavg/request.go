package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-binavg/dsp/binavg"
	"github.com/cwbudde/algo-binavg/dsp/core"
	"github.com/cwbudde/algo-binavg/dsp/spline"
	"gopkg.in/yaml.v3"
)

const defaultBackend = "bspline"

var errNoRequest = errors.New("no request file given (use -f)")

// fitSettings are the request fields shared by average and reaverage.
type fitSettings struct {
	Degree  *int   `yaml:"degree"`
	Axis    *int   `yaml:"axis"`
	Backend string `yaml:"backend"`
	Workers int    `yaml:"workers"`
}

type averageRequest struct {
	X               []float64   `yaml:"x"`
	Y               []float64   `yaml:"y"`
	Shape           []int       `yaml:"shape"`
	Edges           []float64   `yaml:"edges"`
	Weight          []float64   `yaml:"weight"`
	NumeratorWeight []float64   `yaml:"numerator_weight"`
	Fit             fitSettings `yaml:",inline"`
}

type reaverageRequest struct {
	EdgesIn   []float64   `yaml:"edges_in"`
	Values    []float64   `yaml:"values"`
	Shape     []int       `yaml:"shape"`
	EdgesOut  []float64   `yaml:"edges_out"`
	WeightIn  []float64   `yaml:"weight_in"`
	WeightOut []float64   `yaml:"weight_out"`
	Fit       fitSettings `yaml:",inline"`
}

type signalRequest struct {
	Samples []float64 `yaml:"samples"`
}

// readRequest decodes the YAML file at path into v. "-" reads in.
func readRequest(in io.Reader, path string, v any) error {
	if path == "" {
		return errNoRequest
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode request %s: %w", path, err)
	}
	return nil
}

// options resolves the back-end and returns the matching transform options.
// The degree defaults to the back-end's natural degree.
func (s fitSettings) options() ([]binavg.Option, error) {
	name := s.Backend
	if name == "" {
		name = defaultBackend
	}
	f, err := spline.Lookup(name)
	if err != nil {
		return nil, err
	}

	degree := spline.NaturalDegree(f)
	if s.Degree != nil {
		degree = *s.Degree
	}

	opts := []binavg.Option{
		binavg.WithFitter(f),
		binavg.WithDegree(degree),
		binavg.WithWorkers(s.Workers),
	}
	if s.Axis != nil {
		opts = append(opts, binavg.WithAxis(*s.Axis))
	}
	return opts, nil
}

func (s fitSettings) axis() int {
	if s.Axis == nil {
		return binavg.DefaultAxis
	}
	return *s.Axis
}

// newArray shapes values, treating a missing shape as a vector.
func newArray(values []float64, shape []int) (*core.Array, error) {
	if len(shape) == 0 {
		shape = []int{len(values)}
	}
	return core.NewArray(values, shape...)
}
