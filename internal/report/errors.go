package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

func WriteErrorsMarkdown(path string, report yearconf.LoadReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(RenderErrors(report)), 0644)
}

// RenderErrors groups warnings by year. Report errors that belong to no year,
// such as an unavailable parser, are listed first.
func RenderErrors(report yearconf.LoadReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Load warnings\n")

	var general []string
	for _, msg := range report.Errors {
		if !belongsToYear(report.Years, msg) {
			general = append(general, msg)
		}
	}
	if len(general) > 0 {
		fmt.Fprintf(&b, "\n## General\n\n")
		for _, msg := range general {
			fmt.Fprintf(&b, "- %s\n", msg)
		}
	}

	for _, year := range report.Years {
		if len(year.Warnings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s (%s)\n\n", year.Year, year.Status)
		for _, warning := range year.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
		for _, doc := range year.Documents {
			if doc.Status == yearconf.StatusError {
				fmt.Fprintf(&b, "- `%s` used an empty mapping\n", doc.Path)
			}
		}
	}
	return b.String()
}

func belongsToYear(years []yearconf.YearResult, msg string) bool {
	for _, year := range years {
		if strings.HasPrefix(msg, year.Year+": ") {
			return true
		}
	}
	return false
}
