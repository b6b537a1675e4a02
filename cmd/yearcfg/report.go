package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bayneri/yearcfg/internal/report"
)

func runReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	inputs := fs.String("inputs", "", "comma-separated list of load summary.json files")
	outDir := fs.String("out", filepath.Join("out", "report"), "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*inputs) == "" {
		return errors.New("--inputs is required")
	}

	paths := splitCSV(*inputs)
	results, err := report.ReadResults(paths)
	if err != nil {
		return err
	}
	agg, err := report.Aggregate(results, paths)
	if err != nil {
		return err
	}

	if err := report.WriteAggregateJSON(filepath.Join(*outDir, "summary.json"), agg); err != nil {
		return err
	}
	if err := report.WriteAggregateMarkdown(filepath.Join(*outDir, "summary.md"), agg); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote report to %s\n", *outDir)
	if len(agg.Errors) > 0 {
		return exitError{code: 2, err: errors.New("partial report")}
	}
	return nil
}
