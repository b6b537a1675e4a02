package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/bayneri/yearcfg/internal/logging"
	"github.com/bayneri/yearcfg/internal/monitoring"
	"github.com/bayneri/yearcfg/internal/parser"
	"github.com/bayneri/yearcfg/internal/report"
	"github.com/bayneri/yearcfg/internal/settings"
	"github.com/bayneri/yearcfg/internal/source"
	"github.com/bayneri/yearcfg/internal/yearconf"
)

type loadOptions struct {
	out            string
	format         string
	timezone       string
	details        bool
	failOnPartial  bool
	metricsProject string
}

func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func openManager(ctx context.Context, s settings.Settings, logger *slog.Logger) (*yearconf.Manager, error) {
	loader, err := parser.LoaderFor(s.Parser.Backend)
	if err != nil {
		return nil, err
	}
	bootstrap := parser.New(loader, logger)
	go bootstrap.Load(ctx)

	src, err := source.New(ctx, s.Source, source.Options{
		Timeout:   s.Timeout,
		UserAgent: "yearcfg/" + version,
	})
	if err != nil {
		return nil, fmt.Errorf("build source: %w", err)
	}
	return yearconf.NewManager(bootstrap, src, yearconf.OptionsFromSettings(s), logger), nil
}

func initManager(ctx context.Context, opts *commandOptions) (*yearconf.Manager, yearconf.LoadReport, settings.Settings, map[string]string, error) {
	s, labels, err := loadSettings(opts)
	if err != nil {
		return nil, yearconf.LoadReport{}, settings.Settings{}, nil, err
	}
	logger := logging.New(opts.logLevel, os.Stderr)
	manager, err := openManager(ctx, s, logger)
	if err != nil {
		return nil, yearconf.LoadReport{}, s, labels, err
	}
	result, err := manager.Initialize(ctx)
	return manager, result, s, labels, err
}

func runLoad(args []string) error {
	fs, opts := baseFlags("load")
	lopts := &loadOptions{}
	fs.StringVar(&lopts.out, "out", filepath.Join("out", "load"), "output directory")
	fs.StringVar(&lopts.format, "format", "md,json", "comma-separated output formats")
	fs.StringVar(&lopts.timezone, "timezone", "UTC", "IANA timezone for reports")
	fs.BoolVar(&lopts.details, "details", false, "include per-document tables in summary.md")
	fs.BoolVar(&lopts.failOnPartial, "fail-on-partial", false, "exit non-zero if any year is partial or missing")
	fs.StringVar(&lopts.metricsProject, "metrics-project", "", "publish load health to Cloud Monitoring in this GCP project")
	if err := fs.Parse(args); err != nil {
		return err
	}
	loc, err := time.LoadLocation(lopts.timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}

	ctx, cancel := commandContext()
	defer cancel()

	manager, result, _, labels, loadErr := initManager(ctx, opts)
	if manager == nil {
		return loadErr
	}

	if err := writeLoadReport(lopts.out, parseFormat(lopts.format), result, report.Options{Details: lopts.details, Timezone: loc}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote load report to %s\n", lopts.out)
	if loadErr != nil {
		return loadErr
	}

	if strings.TrimSpace(lopts.metricsProject) != "" {
		client, err := monitoring.NewGCPClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
		n, err := monitoring.Publish(ctx, client, lopts.metricsProject, result, labels, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Published %d time series to project %s.\n", n, lopts.metricsProject)
	}

	fmt.Fprintf(os.Stdout, "Loaded years: %s (current %s)\n", strings.Join(manager.AvailableYears(), ", "), manager.CurrentYear())
	if result.Degraded() {
		if lopts.failOnPartial {
			return exitError{code: 2, err: errors.New("partial load")}
		}
		fmt.Fprintln(os.Stdout, "Partial load: some documents or years could not be loaded.")
	}
	return nil
}

func writeLoadReport(outDir string, formats []string, result yearconf.LoadReport, opts report.Options) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if includesFormat(formats, "md") {
		if err := report.WriteMarkdownSummary(filepath.Join(outDir, "summary.md"), result, opts); err != nil {
			return err
		}
	}
	if includesFormat(formats, "json") {
		if err := report.WriteSummaryJSON(filepath.Join(outDir, "summary.json"), result); err != nil {
			return err
		}
	}
	if len(result.Errors) > 0 {
		if err := report.WriteErrorsMarkdown(filepath.Join(outDir, "errors.md"), result); err != nil {
			return err
		}
	}
	return nil
}

func runGet(args []string) error {
	fs, opts := baseFlags("get")
	document := fs.String("document", "", "print only this document (robot, course, sensors, rules)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	manager, _, _, _, err := initManager(ctx, opts)
	if err != nil {
		return err
	}
	cfg, err := manager.CurrentConfig()
	if err != nil {
		return err
	}

	var payload interface{} = cfg
	if *document != "" {
		doc, err := documentOf(cfg, *document)
		if err != nil {
			return err
		}
		payload = doc
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

func documentOf(cfg yearconf.YearConfig, name string) (map[string]any, error) {
	switch name {
	case settings.DocumentRobot:
		return cfg.Robot, nil
	case settings.DocumentCourse:
		return cfg.Course, nil
	case settings.DocumentSensors:
		return cfg.Sensors, nil
	case settings.DocumentRules:
		return cfg.Rules, nil
	}
	_, err := settings.DocumentForName(name)
	return nil, err
}

func runYears(args []string) error {
	fs, opts := baseFlags("years")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	manager, _, _, _, err := initManager(ctx, opts)
	if err != nil {
		return err
	}
	current := manager.CurrentYear()
	for _, year := range manager.AvailableYears() {
		marker := " "
		if year == current {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", marker, year)
	}
	return nil
}

func parseFormat(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{"md", "json"}
	}
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return []string{"md", "json"}
	}
	return out
}

func includesFormat(formats []string, value string) bool {
	for _, format := range formats {
		if format == value {
			return true
		}
	}
	return false
}
