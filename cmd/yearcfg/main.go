package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bayneri/yearcfg/internal/explain"
	"github.com/bayneri/yearcfg/internal/settings"
)

const version = "0.1.0"

type commandOptions struct {
	file     string
	baseURL  string
	dir      string
	years    string
	year     string
	parser   string
	labels   string
	logLevel string
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "load":
		err = runLoad(os.Args[2:])
	case "get":
		err = runGet(os.Args[2:])
	case "years":
		err = runYears(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "deploy":
		err = runDeploy(os.Args[2:])
	case "report":
		err = runReport(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "explain":
		err = runExplain(os.Args[2:])
	case "version":
		fmt.Println(version)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "yearcfg - per-year site configuration loader")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  yearcfg load     -f yearcfg.yaml [--out out/load] [--fail-on-partial]")
	fmt.Fprintln(os.Stderr, "  yearcfg get      --base-url https://example.org [--year 2024]")
	fmt.Fprintln(os.Stderr, "  yearcfg years    --dir ./site")
	fmt.Fprintln(os.Stderr, "  yearcfg export   site-json|monitoring-json -f yearcfg.yaml")
	fmt.Fprintln(os.Stderr, "  yearcfg deploy   [-f yearcfg.yaml] [--dry-run]")
	fmt.Fprintln(os.Stderr, "  yearcfg report   --inputs a/summary.json,b/summary.json")
	fmt.Fprintln(os.Stderr, "  yearcfg validate -f yearcfg.yaml")
	fmt.Fprintln(os.Stderr, "  yearcfg explain  "+strings.Join(explain.Topics(), "|"))
}

func baseFlags(cmd string) (*flag.FlagSet, *commandOptions) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := &commandOptions{}
	fs.StringVar(&opts.file, "f", "", "path to settings file (optional)")
	fs.StringVar(&opts.baseURL, "base-url", "", "load documents over HTTP from this site root")
	fs.StringVar(&opts.dir, "dir", "", "load documents from this local directory")
	fs.StringVar(&opts.years, "years", "", "comma-separated years to load (overrides years)")
	fs.StringVar(&opts.year, "year", "", "current year (overrides defaultYear)")
	fs.StringVar(&opts.parser, "parser", "", "parser backend: yaml.v3 or yaml.v2")
	fs.StringVar(&opts.labels, "labels", "", "extra labels in key=value,key=value format")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	return fs, opts
}

func readSettings(opts *commandOptions) (settings.Settings, error) {
	s := settings.Default()
	if strings.TrimSpace(opts.file) != "" {
		loaded, err := settings.Load(opts.file)
		if err != nil {
			return settings.Settings{}, err
		}
		s = loaded
	}

	if opts.baseURL != "" && opts.dir != "" {
		return settings.Settings{}, errors.New("--base-url and --dir are mutually exclusive")
	}
	if opts.baseURL != "" {
		s.Source = settings.Source{Type: settings.SourceHTTP, BaseURL: opts.baseURL}
	}
	if opts.dir != "" {
		s.Source = settings.Source{Type: settings.SourceFile, Dir: opts.dir}
	}
	if years := splitCSV(opts.years); len(years) > 0 {
		s.Years = years
	}
	if opts.year != "" {
		s.DefaultYear = opts.year
	}
	if opts.parser != "" {
		s.Parser.Backend = opts.parser
	}
	return s, nil
}

func loadSettings(opts *commandOptions) (settings.Settings, map[string]string, error) {
	s, err := readSettings(opts)
	if err != nil {
		return settings.Settings{}, nil, err
	}
	extra, err := settings.ParseLabels(opts.labels)
	if err != nil {
		return settings.Settings{}, nil, err
	}
	if err := s.Validate(); err != nil {
		return settings.Settings{}, nil, err
	}
	return s, settings.MergeLabels(s.Metadata.Labels, extra), nil
}

func runValidate(args []string) error {
	fs, opts := baseFlags("validate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(opts.file) == "" {
		return errors.New("-f is required")
	}
	if _, _, err := loadSettings(opts); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Settings are valid.")
	return nil
}

func runExplain(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("explain requires a topic: %s", strings.Join(explain.Topics(), ", "))
	}
	text, err := explain.Topic(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, text)
	return nil
}

func splitCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	if err == nil {
		os.Exit(1)
	}
	type exitCoder interface {
		ExitCode() int
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		os.Exit(coded.ExitCode())
	}
	os.Exit(1)
}
