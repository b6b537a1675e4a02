package yearconf

import (
	"context"
	"fmt"
	"strings"

	"github.com/bayneri/yearcfg/internal/settings"
)

func DocumentPath(year, name string) string {
	return fmt.Sprintf("config/years/%s/%s.yaml", year, name)
}

// LoadYear fetches and parses every enabled document of year. A failed
// document becomes an empty mapping and a warning; the year is StatusError
// only when every enabled document failed.
func (m *Manager) LoadYear(ctx context.Context, year string) (YearConfig, YearResult) {
	cfg := YearConfig{
		Year:    year,
		Robot:   map[string]any{},
		Course:  map[string]any{},
		Sensors: map[string]any{},
		Rules:   map[string]any{},
	}
	result := YearResult{Year: year}

	enabled, failed := 0, 0
	courseLoaded := false
	for _, doc := range m.opts.Documents {
		item := DocumentResult{
			Name: doc.Name,
			Path: DocumentPath(year, doc.Name),
		}
		if !doc.IsEnabled() {
			item.Status = StatusSkipped
			result.Documents = append(result.Documents, item)
			continue
		}
		enabled++

		data, err := m.loadDocument(ctx, item.Path)
		if err != nil {
			failed++
			item.Status = StatusError
			item.Error = err.Error()
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", doc.Name, err))
			m.logger.Warn("document failed, using empty mapping", "year", year, "document", doc.Name, "path", item.Path, "error", err)
		} else {
			item.Status = StatusOK
			cfg.set(doc.Name, data)
			if doc.Name == settings.DocumentCourse {
				courseLoaded = true
			}
		}
		result.Documents = append(result.Documents, item)
	}

	if imagePath, ok := ImagePath(m.opts.ImagePrefix, year, cfg.Course); ok {
		cfg.ImagePath = imagePath
	} else if courseLoaded {
		result.Warnings = append(result.Warnings, "course: image.filename is missing; imgpath left empty")
		m.logger.Warn("course has no image.filename", "year", year)
	}

	switch {
	case enabled > 0 && failed == enabled:
		result.Status = StatusError
	case len(result.Warnings) > 0:
		result.Status = StatusPartial
	default:
		result.Status = StatusOK
	}
	return cfg, result
}

func (m *Manager) loadDocument(ctx context.Context, path string) (map[string]any, error) {
	data, err := m.source.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return m.parser.Parse(data)
}

func (c *YearConfig) set(name string, data map[string]any) {
	switch name {
	case settings.DocumentRobot:
		c.Robot = data
	case settings.DocumentCourse:
		c.Course = data
	case settings.DocumentSensors:
		c.Sensors = data
	case settings.DocumentRules:
		c.Rules = data
	}
}

func ImagePath(prefix, year string, course map[string]any) (string, bool) {
	image, ok := course["image"].(map[string]any)
	if !ok {
		return "", false
	}
	filename, ok := image["filename"].(string)
	if !ok || strings.TrimSpace(filename) == "" {
		return "", false
	}
	return strings.TrimSuffix(prefix, "/") + "/" + year + "/" + strings.TrimPrefix(filename, "/"), true
}
