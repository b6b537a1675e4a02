package settings

import (
	"fmt"
	"sort"
)

const (
	DocumentRobot   = "robot"
	DocumentCourse  = "course"
	DocumentSensors = "sensors"
	DocumentRules   = "rules"
)

type DocumentTemplate struct {
	Name           string
	Description    string
	EnabledDefault bool
	Pitfalls       []string
}

var documentTemplates = map[string]DocumentTemplate{
	DocumentRobot: {
		Name:           DocumentRobot,
		Description:    "Robot dimensions, drive train and team metadata for the season",
		EnabledDefault: true,
	},
	DocumentCourse: {
		Name:           DocumentCourse,
		Description:    "Course layout; image.filename names the track picture served next to the file",
		EnabledDefault: true,
		Pitfalls: []string{
			"Without image.filename the year loads but has no image path.",
		},
	},
	DocumentSensors: {
		Name:           DocumentSensors,
		Description:    "Sensor inventory and calibration values",
		EnabledDefault: false,
		Pitfalls: []string{
			"Disabled by default; enable it explicitly once every year publishes the file.",
		},
	},
	DocumentRules: {
		Name:           DocumentRules,
		Description:    "Scoring and competition rules",
		EnabledDefault: false,
		Pitfalls: []string{
			"Disabled by default; enable it explicitly once every year publishes the file.",
		},
	},
}

func DocumentForName(name string) (DocumentTemplate, error) {
	tmpl, ok := documentTemplates[name]
	if !ok {
		return DocumentTemplate{}, fmt.Errorf("unsupported document %q (supported: %v)", name, SupportedDocuments())
	}
	return tmpl, nil
}

func SupportedDocuments() []string {
	names := make([]string, 0, len(documentTemplates))
	for name := range documentTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func DefaultDocuments() []Document {
	order := []string{DocumentRobot, DocumentCourse, DocumentSensors, DocumentRules}
	docs := make([]Document, 0, len(order))
	for _, name := range order {
		enabled := documentTemplates[name].EnabledDefault
		docs = append(docs, Document{Name: name, Enabled: &enabled})
	}
	return docs
}
