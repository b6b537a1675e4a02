package monitoringjson

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

func TestWriteMonitoringJSON(t *testing.T) {
	report := yearconf.LoadReport{
		Status: yearconf.StatusOK,
		Years: []yearconf.YearResult{{
			Year:   "2023",
			Status: yearconf.StatusOK,
			Documents: []yearconf.DocumentResult{
				{Name: "robot", Status: yearconf.StatusOK},
				{Name: "course", Status: yearconf.StatusOK},
			},
		}},
	}

	dir := t.TempDir()
	path, err := Write("demo", report, map[string]string{"team": "blue"}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["name"] != "projects/demo" {
		t.Fatalf("unexpected name %v", payload["name"])
	}
	series, ok := payload["timeSeries"].([]interface{})
	if !ok || len(series) != 3 {
		t.Fatalf("expected 3 time series, got %v", payload["timeSeries"])
	}
	first := series[0].(map[string]interface{})
	metric := first["metric"].(map[string]interface{})
	if metric["type"] != "custom.googleapis.com/yearcfg/documents_loaded" {
		t.Fatalf("unexpected metric %v", metric)
	}
	points := first["points"].([]interface{})
	value := points[0].(map[string]interface{})["value"].(map[string]interface{})
	// protojson encodes int64 as a string.
	if value["int64Value"] != "2" {
		t.Fatalf("unexpected value %v", value)
	}
}
