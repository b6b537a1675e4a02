package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

func TestAggregateResults(t *testing.T) {
	first := sampleReport()
	second := yearconf.LoadReport{
		SchemaVersion: yearconf.SchemaVersion,
		Status:        yearconf.StatusOK,
		Years: []yearconf.YearResult{{
			Year:   "2023",
			Status: yearconf.StatusOK,
			Documents: []yearconf.DocumentResult{
				{Name: "robot", Status: yearconf.StatusOK},
				{Name: "course", Status: yearconf.StatusOK},
			},
		}},
	}

	agg, err := Aggregate([]yearconf.LoadReport{first, second}, []string{"mirror-a.json", "mirror-b.json"})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if agg.Status != yearconf.StatusPartial {
		t.Fatalf("expected partial, got %s", agg.Status)
	}
	if len(agg.Years) != 2 || agg.Years[0].Year != "2023" {
		t.Fatalf("unexpected years %+v", agg.Years)
	}
	y2023 := agg.Years[0]
	if y2023.Reports != 2 || y2023.Loaded != 3 || y2023.Failed != 1 {
		t.Fatalf("unexpected 2023 aggregate %+v", y2023)
	}
	if agg.Years[1].Status != yearconf.StatusPartial {
		t.Fatalf("2024 is missing from one report and must be partial, got %s", agg.Years[1].Status)
	}
	if len(agg.Errors) != 2 {
		t.Fatalf("expected warning count and missing-year errors, got %v", agg.Errors)
	}

	dir := t.TempDir()
	md := filepath.Join(dir, "summary.md")
	if err := WriteAggregateMarkdown(md, agg); err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	if _, err := os.Stat(md); err != nil {
		t.Fatalf("markdown missing: %v", err)
	}
	js := filepath.Join(dir, "summary.json")
	if err := WriteAggregateJSON(js, agg); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if _, err := os.Stat(js); err != nil {
		t.Fatalf("json missing: %v", err)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if _, err := Aggregate(nil, nil); err == nil {
		t.Fatalf("expected error for no results")
	}
}
