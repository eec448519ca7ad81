package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"recscope/internal/catalog"
	"recscope/internal/reports"
)

func newCoverageCmd() *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "coverage <catalog-file>",
		Short: "Report question coverage per REC code for a catalog version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoverage(cmd, args[0], format, out)
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or json")
	cmd.Flags().StringVar(&out, "out", "", "Write output to file instead of stdout")
	return cmd
}

func runCoverage(cmd *cobra.Command, catalogPath, format, out string) error {
	version, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return err
	}
	cov, err := reports.BuildCoverage(version)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		return cov.WriteCSV(w)
	case "json":
		return cov.WriteJSON(w)
	default:
		return fmt.Errorf("unsupported format %q (supported: csv, json)", format)
	}
}
