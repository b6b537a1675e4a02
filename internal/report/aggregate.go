package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

type AggregateResult struct {
	SchemaVersion string          `json:"schemaVersion"`
	Inputs        []string        `json:"inputs"`
	Status        string          `json:"status"`
	Years         []YearAggregate `json:"years"`
	Errors        []string        `json:"errors"`
}

type YearAggregate struct {
	Year     string   `json:"year"`
	Status   string   `json:"status"`
	Reports  int      `json:"reports"`
	Loaded   int      `json:"loaded"`
	Failed   int      `json:"failed"`
	Warnings []string `json:"warnings"`
}

func ReadResults(paths []string) ([]yearconf.LoadReport, error) {
	var results []yearconf.LoadReport
	for _, path := range paths {
		result, err := ReadSummaryJSON(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if result.SchemaVersion == "" {
			return nil, fmt.Errorf("missing schemaVersion in %s", path)
		}
		results = append(results, result)
	}
	return results, nil
}

func Aggregate(results []yearconf.LoadReport, inputs []string) (AggregateResult, error) {
	if len(results) == 0 {
		return AggregateResult{}, errors.New("no results to aggregate")
	}
	byYear := map[string]*YearAggregate{}
	var errorsList []string
	status := yearconf.StatusOK
	for i, result := range results {
		status = mergeStatus(status, result.Status)
		for _, year := range result.Years {
			item, ok := byYear[year.Year]
			if !ok {
				item = &YearAggregate{Year: year.Year, Status: year.Status}
				byYear[year.Year] = item
			}
			item.Status = mergeStatus(item.Status, year.Status)
			item.Reports++
			item.Loaded += year.Loaded()
			item.Failed += year.Failed()
			item.Warnings = append(item.Warnings, year.Warnings...)
		}
		if len(result.Errors) > 0 && len(inputs) > i {
			errorsList = append(errorsList, fmt.Sprintf("%s: %d warning(s)", inputs[i], len(result.Errors)))
		}
	}

	var years []YearAggregate
	for _, item := range byYear {
		if item.Reports < len(results) {
			item.Status = mergeStatus(item.Status, yearconf.StatusPartial)
			errorsList = append(errorsList, fmt.Sprintf("year %s missing from %d report(s)", item.Year, len(results)-item.Reports))
		}
		years = append(years, *item)
	}
	sort.Slice(years, func(i, j int) bool {
		return years[i].Year < years[j].Year
	})
	sort.Strings(errorsList)

	return AggregateResult{
		SchemaVersion: yearconf.SchemaVersion,
		Inputs:        inputs,
		Status:        status,
		Years:         years,
		Errors:        errorsList,
	}, nil
}

func mergeStatus(a, b string) string {
	score := func(value string) int {
		switch value {
		case yearconf.StatusError:
			return 3
		case yearconf.StatusPartial:
			return 2
		case yearconf.StatusOK:
			return 1
		default:
			return 0
		}
	}
	if score(b) > score(a) {
		return b
	}
	return a
}

func WriteAggregateJSON(path string, result AggregateResult) error {
	return WriteJSON(path, result)
}

func WriteAggregateMarkdown(path string, result AggregateResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# yearcfg report\n\n")
	fmt.Fprintf(&b, "Inputs: %d\n\n", len(result.Inputs))
	fmt.Fprintf(&b, "- Status: %s\n\n", result.Status)
	fmt.Fprintf(&b, "| Year | Status | Reports | Loaded | Failed |\n")
	fmt.Fprintf(&b, "| --- | --- | --- | --- | --- |\n")
	for _, year := range result.Years {
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d |\n", year.Year, year.Status, year.Reports, year.Loaded, year.Failed)
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(&b, "\n## Warnings\n")
		for _, err := range result.Errors {
			fmt.Fprintf(&b, "- %s\n", err)
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
