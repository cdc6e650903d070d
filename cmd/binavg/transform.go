package main

import (
	"github.com/cwbudde/algo-binavg/dsp/binavg"
	"github.com/spf13/cobra"
)

func newAverageCmd(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "average",
		Short: "Average samples y(x) into bins delimited by edges",
		Long: `average reads {x, y, shape, edges, weight, numerator_weight, degree,
axis, backend, workers} and prints the bin averages and bin weights.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req averageRequest
			if err := readRequest(cmd.InOrStdin(), file, &req); err != nil {
				return err
			}

			y, err := newArray(req.Y, req.Shape)
			if err != nil {
				return err
			}
			opts, err := req.Fit.options()
			if err != nil {
				return err
			}
			if req.Weight != nil {
				opts = append(opts, binavg.WithWeight(req.Weight))
			}
			if req.NumeratorWeight != nil {
				opts = append(opts, binavg.WithNumeratorWeight(req.NumeratorWeight))
			}

			root.logger.Debug("average",
				"samples", len(req.X), "shape", y.Shape(), "bins", len(req.Edges)-1,
				"backend", req.Fit.Backend)

			avg, weight, err := binavg.Average(req.X, y, req.Edges, opts...)
			if err != nil {
				return err
			}

			return writeBins(cmd.OutOrStdout(), root.format, req.Edges, avg, weight, req.Fit.axis())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request file (YAML or JSON, - for stdin)")
	return cmd
}

func newReaverageCmd(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "reaverage",
		Short: "Re-average binned values onto new bin edges",
		Long: `reaverage reads {edges_in, values, shape, edges_out, weight_in,
weight_out, degree, axis, backend, workers} and prints the values on the
output bins together with the output bin weights.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req reaverageRequest
			if err := readRequest(cmd.InOrStdin(), file, &req); err != nil {
				return err
			}

			y, err := newArray(req.Values, req.Shape)
			if err != nil {
				return err
			}
			opts, err := req.Fit.options()
			if err != nil {
				return err
			}
			if req.WeightIn != nil {
				opts = append(opts, binavg.WithWeight(req.WeightIn))
			}
			if req.WeightOut != nil {
				opts = append(opts, binavg.WithOutputWeight(req.WeightOut))
			}

			root.logger.Debug("reaverage",
				"bins_in", len(req.EdgesIn)-1, "bins_out", len(req.EdgesOut)-1, "shape", y.Shape(),
				"backend", req.Fit.Backend)

			out, weight, err := binavg.Reaverage(req.EdgesIn, y, req.EdgesOut, opts...)
			if err != nil {
				return err
			}

			return writeBins(cmd.OutOrStdout(), root.format, req.EdgesOut, out, weight, req.Fit.axis())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request file (YAML or JSON, - for stdin)")
	return cmd
}
