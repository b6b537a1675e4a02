package yearconf

import "time"

const SchemaVersion = "1.0"

const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// YearConfig is the parsed configuration of one season. Document fields are
// never nil.
type YearConfig struct {
	Year      string         `json:"year"`
	Robot     map[string]any `json:"robot"`
	Course    map[string]any `json:"course"`
	Sensors   map[string]any `json:"sensors"`
	Rules     map[string]any `json:"rules"`
	ImagePath string         `json:"imgpath"`
}

type LoadReport struct {
	SchemaVersion  string       `json:"schemaVersion"`
	Status         string       `json:"status"`
	StartedAt      time.Time    `json:"startedAt"`
	FinishedAt     time.Time    `json:"finishedAt"`
	DurationMillis int64        `json:"durationMillis"`
	Years          []YearResult `json:"years"`
	Errors         []string     `json:"errors"`
}

type YearResult struct {
	Year      string           `json:"year"`
	Status    string           `json:"status"`
	Documents []DocumentResult `json:"documents"`
	Warnings  []string         `json:"warnings,omitempty"`
}

type DocumentResult struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (r YearResult) Loaded() int {
	n := 0
	for _, doc := range r.Documents {
		if doc.Status == StatusOK {
			n++
		}
	}
	return n
}

func (r YearResult) Failed() int {
	n := 0
	for _, doc := range r.Documents {
		if doc.Status == StatusError {
			n++
		}
	}
	return n
}

func (r LoadReport) Degraded() bool {
	return r.Status != StatusOK
}

func (c YearConfig) clone() YearConfig {
	out := c
	out.Robot = cloneMap(c.Robot)
	out.Course = cloneMap(c.Course)
	out.Sensors = cloneMap(c.Sensors)
	out.Rules = cloneMap(c.Rules)
	return out
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
