package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bayneri/yearcfg/internal/export/monitoringjson"
	"github.com/bayneri/yearcfg/internal/export/sitejson"
)

func runExport(args []string) error {
	if len(args) == 0 {
		return errors.New("export requires a format: site-json, monitoring-json")
	}
	switch args[0] {
	case "site-json":
		return runExportSiteJSON(args[1:])
	case "monitoring-json":
		return runExportMonitoringJSON(args[1:])
	default:
		return fmt.Errorf("unknown export format %q", args[0])
	}
}

func runExportSiteJSON(args []string) error {
	fs, opts := baseFlags("export site-json")
	outDir := fs.String("out", filepath.Join("out", "site-json"), "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	manager, _, _, _, err := initManager(ctx, opts)
	if err != nil {
		return err
	}
	paths, err := sitejson.Write(manager, *outDir, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %d files to %s\n", len(paths), *outDir)
	return nil
}

func runExportMonitoringJSON(args []string) error {
	fs, opts := baseFlags("export monitoring-json")
	outDir := fs.String("out", filepath.Join("out", "monitoring-json"), "output directory")
	project := fs.String("project", "", "GCP project ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*project) == "" {
		return errors.New("--project is required")
	}

	ctx, cancel := commandContext()
	defer cancel()

	_, result, _, labels, err := initManager(ctx, opts)
	if err != nil {
		return err
	}
	path, err := monitoringjson.Write(*project, result, labels, time.Now(), *outDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote Monitoring JSON export to %s\n", path)
	return nil
}
