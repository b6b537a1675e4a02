package settings

import (
	"strings"
	"testing"
	"time"
)

func TestLoadValid(t *testing.T) {
	s, err := Load("testdata/valid.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid settings, got %v", err)
	}
	if s.Metadata.Labels["team"] != "blue" {
		t.Fatalf("expected team label, got %v", s.Metadata.Labels)
	}
	if s.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", s.Timeout)
	}
	if s.Parser.Backend != "yaml.v2" || s.Parser.ReadyTimeout != 2*time.Second {
		t.Fatalf("unexpected parser settings %+v", s.Parser)
	}
	if len(s.Years) != 2 || s.Years[1] != "Test" {
		t.Fatalf("unexpected years %v", s.Years)
	}
	if s.ImagePrefix != DefaultImagePrefix {
		t.Fatalf("expected default image prefix, got %q", s.ImagePrefix)
	}
	if !s.Documents[2].IsEnabled() {
		t.Fatalf("expected sensors to be enabled")
	}
	if s.Deploy.Branch != "gh-pages" || s.Deploy.Remote != DefaultDeployRemote || s.Deploy.Message != DefaultDeployMessage {
		t.Fatalf("unexpected deploy settings %+v", s.Deploy)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	if err == nil || !strings.Contains(err.Error(), "read settings") {
		t.Fatalf("expected read error, got %v", err)
	}
	_, err = Load("testdata/malformed.yaml")
	if err == nil || !strings.Contains(err.Error(), "parse settings") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	s := Default()
	if strings.Join(s.Years, ",") != "2023,2024,2025,Test" {
		t.Fatalf("unexpected default years %v", s.Years)
	}
	var enabled []string
	for _, doc := range s.Documents {
		if doc.IsEnabled() {
			enabled = append(enabled, doc.Name)
		}
	}
	if strings.Join(enabled, ",") != "robot,course" {
		t.Fatalf("expected robot and course enabled, got %v", enabled)
	}
	if len(s.Documents) != 4 {
		t.Fatalf("expected sensors and rules declared, got %d documents", len(s.Documents))
	}
	if s.Deploy.Message != "Update build files" || s.Deploy.Branch != "main" {
		t.Fatalf("unexpected deploy defaults %+v", s.Deploy)
	}
	// No base URL is known without a settings file or flag.
	if err := s.Validate(); err == nil {
		t.Fatalf("expected missing baseURL error")
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{"bad-scheme", func(s *Settings) { s.Source.BaseURL = "ftp://example.org" }, "http(s) URL"},
		{"file-dir", func(s *Settings) { s.Source = Source{Type: SourceFile} }, "source.dir"},
		{"s3-bucket", func(s *Settings) { s.Source = Source{Type: SourceS3, Region: "us-east-1"} }, "source.bucket"},
		{"s3-keys", func(s *Settings) {
			s.Source = Source{Type: SourceS3, Bucket: "b", Region: "r", AccessKey: "a"}
		}, "set together"},
		{"unknown-source", func(s *Settings) { s.Source.Type = "ftp" }, "source.type"},
		{"bad-year", func(s *Settings) { s.Years = []string{"../etc"} }, "years[0]"},
		{"dup-year", func(s *Settings) { s.Years = []string{"2024", "2024"} }, "duplicated"},
		{"unknown-document", func(s *Settings) { s.Documents = []Document{{Name: "weather"}} }, "unsupported document"},
		{"backend", func(s *Settings) { s.Parser.Backend = "json" }, "parser.backend"},
		{"prefix", func(s *Settings) { s.ImagePrefix = "config" }, "imagePrefix"},
		{"site-url", func(s *Settings) { s.Deploy.SiteURL = "example.org/site" }, "deploy.siteURL"},
		{"branch", func(s *Settings) { s.Deploy.Branch = "--force" }, "deploy.branch"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			s.Source.BaseURL = "https://example.org"
			tc.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %q", tc.want, err)
			}
		})
	}
}

func TestDeployValidate(t *testing.T) {
	d := Default().Deploy
	if err := d.Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
	d.SiteURL = "https://example.org/site/"
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.SiteURL = "ftp://example.org"
	d.Remote = "my remote"
	err := d.Validate()
	if err == nil || !strings.Contains(err.Error(), "deploy.siteURL") || !strings.Contains(err.Error(), "deploy.remote") {
		t.Fatalf("expected siteURL and remote errors, got %v", err)
	}
}

func TestParseLabels(t *testing.T) {
	labels, err := ParseLabels("team=blue, env=prod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if labels["team"] != "blue" || labels["env"] != "prod" {
		t.Fatalf("unexpected labels %v", labels)
	}
	if _, err := ParseLabels("team"); err == nil {
		t.Fatalf("expected error for label without value")
	}
	merged := MergeLabels(map[string]string{"team": "red"}, labels)
	if merged["team"] != "blue" {
		t.Fatalf("expected override to win, got %v", merged)
	}
}
