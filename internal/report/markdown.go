package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

type Options struct {
	Details  bool
	Timezone *time.Location
}

func WriteMarkdownSummary(path string, report yearconf.LoadReport, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(RenderMarkdown(report, opts)), 0644)
}

func RenderMarkdown(report yearconf.LoadReport, opts Options) string {
	if opts.Timezone == nil {
		opts.Timezone = time.UTC
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Configuration load\n\n")
	fmt.Fprintf(&b, "- Status: %s\n", report.Status)
	fmt.Fprintf(&b, "- Started: %s\n", report.StartedAt.In(opts.Timezone).Format(time.RFC3339))
	fmt.Fprintf(&b, "- Duration: %s\n\n", formatDuration(report.DurationMillis))

	fmt.Fprintf(&b, "| Year | Status | Loaded | Failed | Skipped |\n")
	fmt.Fprintf(&b, "| --- | --- | --- | --- | --- |\n")
	for _, year := range report.Years {
		skipped := len(year.Documents) - year.Loaded() - year.Failed()
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d |\n", year.Year, year.Status, year.Loaded(), year.Failed(), skipped)
	}

	if opts.Details {
		for _, year := range report.Years {
			fmt.Fprintf(&b, "\n### %s\n\n", year.Year)
			for _, doc := range year.Documents {
				if doc.Error != "" {
					fmt.Fprintf(&b, "- %s (%s): %s - %s\n", doc.Name, doc.Path, doc.Status, doc.Error)
					continue
				}
				fmt.Fprintf(&b, "- %s (%s): %s\n", doc.Name, doc.Path, doc.Status)
			}
		}
	}

	if len(report.Errors) > 0 {
		fmt.Fprintf(&b, "\n## Warnings\n")
		for _, err := range report.Errors {
			fmt.Fprintf(&b, "- %s\n", err)
		}
	}
	return b.String()
}

func formatDuration(millis int64) string {
	return (time.Duration(millis) * time.Millisecond).String()
}
