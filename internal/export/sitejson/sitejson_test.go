package sitejson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bayneri/yearcfg/internal/yearconf"
)

type fakeStore struct {
	configs map[string]yearconf.YearConfig
	current string
}

func (f fakeStore) AvailableYears() []string {
	return []string{"2023", "Test"}
}

func (f fakeStore) CurrentYear() string {
	return f.current
}

func (f fakeStore) Config(year string) (yearconf.YearConfig, error) {
	cfg, ok := f.configs[year]
	if !ok {
		return yearconf.YearConfig{}, fmt.Errorf("%w: %q", yearconf.ErrYearNotFound, year)
	}
	return cfg, nil
}

func TestWrite(t *testing.T) {
	store := fakeStore{
		current: "2025",
		configs: map[string]yearconf.YearConfig{
			"2023": {
				Year:      "2023",
				Robot:     map[string]any{},
				Course:    map[string]any{"image": map[string]any{"filename": "track.png"}},
				Sensors:   map[string]any{},
				Rules:     map[string]any{},
				ImagePath: "/config/years/2023/track.png",
			},
			"Test": {Year: "Test", Robot: map[string]any{}, Course: map[string]any{}, Sensors: map[string]any{}, Rules: map[string]any{}},
		},
	}
	dir := t.TempDir()
	paths, err := Write(store, dir, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 3 || filepath.Base(paths[2]) != "years.json" {
		t.Fatalf("unexpected paths %v", paths)
	}

	data, err := os.ReadFile(filepath.Join(dir, "2023.json"))
	if err != nil {
		t.Fatalf("read 2023: %v", err)
	}
	var cfg map[string]interface{}
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("parse 2023: %v", err)
	}
	if cfg["imgpath"] != "/config/years/2023/track.png" {
		t.Fatalf("unexpected imgpath %v", cfg["imgpath"])
	}
	if robot, ok := cfg["robot"].(map[string]interface{}); !ok || len(robot) != 0 {
		t.Fatalf("expected empty robot object, got %v", cfg["robot"])
	}

	data, err = os.ReadFile(filepath.Join(dir, "years.json"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		t.Fatalf("parse index: %v", err)
	}
	if index.Current != "" {
		t.Fatalf("current year 2025 is not loaded and must be blank, got %q", index.Current)
	}
	if len(index.Years) != 2 {
		t.Fatalf("unexpected index years %v", index.Years)
	}
}
