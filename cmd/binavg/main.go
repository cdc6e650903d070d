// Command binavg averages sampled data into bins and re-averages binned
// data onto new bin edges.
//
// Usage:
//
//	binavg [--format yaml|table] [--verbose] <command> [flags]
//
// Requests are YAML (or JSON) files; "-" reads standard input.
//
// Examples:
//
//	binavg average -f request.yaml
//	binavg --format table reaverage -f rebin.yaml
//	binavg bands --rate 48000 --fraction 3 -f signal.yaml
//	binavg backends
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
