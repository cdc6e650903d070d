package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-binavg/dsp/spline"
	"github.com/cwbudde/algo-binavg/dsp/window"
	"github.com/cwbudde/algo-binavg/measure/bands"
	"github.com/spf13/cobra"
)

var errNoBandsInRange = errors.New("no bands between the requested limits and the Nyquist frequency")

func newBandsCmd(root *rootOptions) *cobra.Command {
	var (
		file     string
		rate     float64
		fraction int
		low      float64
		high     float64
		winName  string
		degree   int
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Fractional-octave band levels of a signal",
		Long: `bands reads {samples}, computes the power spectral density and averages
it into 1/fraction-octave bands. Bands above the Nyquist frequency are
dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req signalRequest
			if err := readRequest(cmd.InOrStdin(), file, &req); err != nil {
				return err
			}

			win, err := window.Lookup(winName)
			if err != nil {
				return err
			}

			bs := bandsBelow(bands.Octave(fraction, low, math.Min(high, rate/2)), rate/2)
			if len(bs) == 0 {
				return fmt.Errorf("%w: [%g, %g] Hz at %g Hz", errNoBandsInRange, low, high, rate)
			}

			root.logger.Debug("bands",
				"samples", len(req.Samples), "rate", rate, "fraction", fraction, "bands", len(bs), "window", win)

			res, err := bands.Analyze(req.Samples, rate, bands.Edges(bs),
				bands.WithWindow(win), bands.WithDegree(degree), bands.WithWorkers(workers))
			if err != nil {
				return err
			}

			return writeBands(cmd.OutOrStdout(), root.format, bs, res)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "signal file with a samples list (YAML or JSON, - for stdin)")
	f.Float64Var(&rate, "rate", 0, "sample rate in Hz")
	f.IntVar(&fraction, "fraction", 3, "bands per octave")
	f.Float64Var(&low, "low", 20, "lowest band centre in Hz")
	f.Float64Var(&high, "high", 20000, "highest band centre in Hz")
	f.StringVar(&winName, "window", "hann", "analysis window: "+strings.Join(window.Names(), ", "))
	f.IntVar(&degree, "degree", 1, "spline degree used to integrate the density")
	f.IntVar(&workers, "workers", 1, "parallel lane workers")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

// bandsBelow drops bands whose upper edge lies above limit.
func bandsBelow(bs []bands.Band, limit float64) []bands.Band {
	out := bs[:0:0]
	for _, b := range bs {
		if b.High <= limit {
			out = append(out, b)
		}
	}
	return out
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the interpolation back-ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range spline.Names() {
				f, err := spline.Lookup(name)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\tdegree %d\n", name, spline.NaturalDegree(f)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
