package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

const (
	formatYAML  = "yaml"
	formatTable = "table"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose bool
	format  string
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: slog.New(slog.DiscardHandler)}

	cmd := &cobra.Command{
		Use:   "binavg",
		Short: "Average sampled data into bins",
		Long: `binavg integrates an exact spline interpolant of sampled data over
bins and divides by the integrated weight. It also re-averages already
binned data onto other bin edges while conserving the weighted total.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			switch opts.format {
			case formatYAML, formatTable:
				return nil
			default:
				return fmt.Errorf("unknown format %q (use %s or %s)", opts.format, formatYAML, formatTable)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&opts.format, "format", formatYAML, "output format: yaml or table")

	cmd.AddCommand(
		newAverageCmd(opts),
		newReaverageCmd(opts),
		newBandsCmd(opts),
		newBackendsCmd(),
	)

	return cmd
}
