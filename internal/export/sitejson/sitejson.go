package sitejson

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

const indexFile = "years.json"

type Store interface {
	AvailableYears() []string
	CurrentYear() string
	Config(year string) (yearconf.YearConfig, error)
}

type Index struct {
	Years       []string  `json:"years"`
	Current     string    `json:"current"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func Write(store Store, outDir string, now time.Time) ([]string, error) {
	if outDir == "" {
		outDir = filepath.Join("out", "site-json")
	}
	years := store.AvailableYears()
	if len(years) == 0 {
		return nil, errors.New("no loaded years to export")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for _, year := range years {
		cfg, err := store.Config(year)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(outDir, year+".json")
		if err := writeJSON(path, cfg); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	current := store.CurrentYear()
	if _, err := store.Config(current); err != nil {
		current = ""
	}
	index := Index{Years: years, Current: current, GeneratedAt: now.UTC()}
	path := filepath.Join(outDir, indexFile)
	if err := writeJSON(path, index); err != nil {
		return nil, err
	}
	return append(paths, path), nil
}

func writeJSON(path string, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}
