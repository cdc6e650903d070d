package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-binavg/dsp/core"
	"github.com/cwbudde/algo-binavg/measure/bands"
	"gopkg.in/yaml.v3"
)

// binResponse is the YAML form of a transform result.
type binResponse struct {
	Values []float64 `yaml:"values"`
	Shape  []int     `yaml:"shape"`
	Weight []float64 `yaml:"weight"`
}

type bandRow struct {
	Center  float64 `yaml:"center"`
	Low     float64 `yaml:"low"`
	High    float64 `yaml:"high"`
	Density float64 `yaml:"density"`
	PowerDB float64 `yaml:"power_db"`
}

type bandResponse struct {
	Bands      []bandRow `yaml:"bands"`
	TotalPower float64   `yaml:"total_power"`
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}

func writeBins(w io.Writer, format string, edges []float64, y *core.Array, weight []float64, axis int) error {
	if format == formatYAML {
		return writeYAML(w, binResponse{Values: y.Data(), Shape: y.Shape(), Weight: weight})
	}

	ax, err := y.NormalizeAxis(axis)
	if err != nil {
		return err
	}
	lanes := y.Lanes(ax)
	_, nLanes := lanes.Dims()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"Bin", "Low", "High", "Weight"}
	if nLanes == 1 {
		header = append(header, "Value")
	} else {
		for j := range nLanes {
			header = append(header, fmt.Sprintf("Lane %d", j))
		}
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for b, wt := range weight {
		cols := []string{
			fmt.Sprintf("%d", b),
			fmt.Sprintf("%g", edges[b]),
			fmt.Sprintf("%g", edges[b+1]),
			fmt.Sprintf("%.6g", wt),
		}
		for _, v := range lanes.RawRowView(b) {
			cols = append(cols, fmt.Sprintf("%.6g", v))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cols, "\t")); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}

func writeBands(w io.Writer, format string, bs []bands.Band, res *bands.Result) error {
	db := res.PowerDB()

	if format == formatYAML {
		resp := bandResponse{Bands: make([]bandRow, len(bs)), TotalPower: res.Total()}
		for i, b := range bs {
			resp.Bands[i] = bandRow{Center: b.Center, Low: b.Low, High: b.High, Density: res.Density[i], PowerDB: db[i]}
		}
		return writeYAML(w, resp)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Center [Hz]\tLow [Hz]\tHigh [Hz]\tDensity\tPower [dB]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, b := range bs {
		if _, err := fmt.Fprintf(tw, "%.1f\t%.1f\t%.1f\t%.6g\t%.2f\n",
			b.Center, b.Low, b.High, res.Density[i], db[i]); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}
