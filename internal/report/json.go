package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

func WriteJSON(path string, payload interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

func WriteSummaryJSON(path string, report yearconf.LoadReport) error {
	return WriteJSON(path, report)
}

func ReadSummaryJSON(path string) (yearconf.LoadReport, error) {
	var report yearconf.LoadReport
	data, err := os.ReadFile(path)
	if err != nil {
		return report, err
	}
	err = json.Unmarshal(data, &report)
	return report, err
}
