package settings

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	APIVersionV1   = "yearcfg.dev/v1"
	KindSiteConfig = "SiteConfig"

	SourceHTTP = "http"
	SourceFile = "file"
	SourceS3   = "s3"

	DefaultImagePrefix   = "/config/years"
	DefaultYear          = "2025"
	DefaultParserBackend = "yaml.v3"
	DefaultReadyTimeout  = 10 * time.Second
	DefaultFetchTimeout  = 30 * time.Second

	DefaultDeployRemote  = "origin"
	DefaultDeployBranch  = "main"
	DefaultDeployMessage = "Update build files"
)

var DefaultYears = []string{"2023", "2024", "2025", "Test"}

type Settings struct {
	APIVersion  string        `yaml:"apiVersion"`
	Kind        string        `yaml:"kind"`
	Metadata    Metadata      `yaml:"metadata"`
	Source      Source        `yaml:"source"`
	Timeout     time.Duration `yaml:"timeout"`
	Years       []string      `yaml:"years"`
	DefaultYear string        `yaml:"defaultYear"`
	ImagePrefix string        `yaml:"imagePrefix"`
	Documents   []Document    `yaml:"documents"`
	Parser      Parser        `yaml:"parser"`
	Deploy      Deploy        `yaml:"deploy"`
}

type Metadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels"`
}

type Source struct {
	Type      string `yaml:"type"`
	BaseURL   string `yaml:"baseURL"`
	Dir       string `yaml:"dir"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

type Document struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"`
}

func (d Document) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

type Parser struct {
	Backend      string        `yaml:"backend"`
	ReadyTimeout time.Duration `yaml:"readyTimeout"`
}

type Deploy struct {
	Dir     string `yaml:"dir"`
	Remote  string `yaml:"remote"`
	Branch  string `yaml:"branch"`
	Message string `yaml:"message"`
	SiteURL string `yaml:"siteURL"`
}

func Default() Settings {
	s := Settings{
		APIVersion: APIVersionV1,
		Kind:       KindSiteConfig,
	}
	s.ApplyDefaults()
	return s
}

func (s *Settings) ApplyDefaults() {
	if s.Source.Type == "" {
		s.Source.Type = SourceHTTP
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultFetchTimeout
	}
	if len(s.Years) == 0 {
		s.Years = append([]string(nil), DefaultYears...)
	}
	if s.DefaultYear == "" {
		s.DefaultYear = DefaultYear
	}
	if s.ImagePrefix == "" {
		s.ImagePrefix = DefaultImagePrefix
	}
	if len(s.Documents) == 0 {
		s.Documents = DefaultDocuments()
	}
	if s.Parser.Backend == "" {
		s.Parser.Backend = DefaultParserBackend
	}
	if s.Parser.ReadyTimeout <= 0 {
		s.Parser.ReadyTimeout = DefaultReadyTimeout
	}
	if s.Deploy.Dir == "" {
		s.Deploy.Dir = "."
	}
	if s.Deploy.Remote == "" {
		s.Deploy.Remote = DefaultDeployRemote
	}
	if s.Deploy.Branch == "" {
		s.Deploy.Branch = DefaultDeployBranch
	}
	if s.Deploy.Message == "" {
		s.Deploy.Message = DefaultDeployMessage
	}
}

var (
	yearRe     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	backendSet = map[string]bool{"yaml.v3": true, "yaml.v2": true}
)

func (s Settings) Validate() error {
	var errs []string
	if s.APIVersion != APIVersionV1 {
		errs = append(errs, fmt.Sprintf("apiVersion must be %q", APIVersionV1))
	}
	if s.Kind != KindSiteConfig {
		errs = append(errs, fmt.Sprintf("kind must be %q", KindSiteConfig))
	}
	errs = append(errs, validateSource(s.Source)...)

	seen := map[string]bool{}
	for i, year := range s.Years {
		if !yearRe.MatchString(year) {
			errs = append(errs, fmt.Sprintf("years[%d] %q must be letters, digits, '-' or '_'", i, year))
		}
		if seen[year] {
			errs = append(errs, fmt.Sprintf("years[%d] %q is duplicated", i, year))
		}
		seen[year] = true
	}
	if !yearRe.MatchString(s.DefaultYear) {
		errs = append(errs, fmt.Sprintf("defaultYear %q is invalid", s.DefaultYear))
	}
	if !strings.HasPrefix(s.ImagePrefix, "/") {
		errs = append(errs, "imagePrefix must start with '/'")
	}

	docs := map[string]bool{}
	for i, doc := range s.Documents {
		if _, err := DocumentForName(doc.Name); err != nil {
			errs = append(errs, fmt.Sprintf("documents[%d]: %s", i, err))
		}
		if docs[doc.Name] {
			errs = append(errs, fmt.Sprintf("documents[%d] %q is duplicated", i, doc.Name))
		}
		docs[doc.Name] = true
	}

	if !backendSet[s.Parser.Backend] {
		errs = append(errs, fmt.Sprintf("parser.backend must be yaml.v3 or yaml.v2, got %q", s.Parser.Backend))
	}
	errs = append(errs, validateDeploy(s.Deploy)...)

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (d Deploy) Validate() error {
	if errs := validateDeploy(d); len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateDeploy(d Deploy) []string {
	var errs []string
	if d.SiteURL != "" {
		u, err := url.Parse(d.SiteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, "deploy.siteURL must be an http(s) URL")
		}
	}
	if strings.ContainsAny(d.Remote, " \t") || strings.HasPrefix(d.Remote, "-") {
		errs = append(errs, fmt.Sprintf("deploy.remote %q is not a valid remote name", d.Remote))
	}
	if strings.ContainsAny(d.Branch, " \t") || strings.HasPrefix(d.Branch, "-") {
		errs = append(errs, fmt.Sprintf("deploy.branch %q is not a valid branch name", d.Branch))
	}
	return errs
}

func validateSource(src Source) []string {
	var errs []string
	switch src.Type {
	case SourceHTTP:
		if strings.TrimSpace(src.BaseURL) == "" {
			errs = append(errs, "source.baseURL is required for http sources")
			break
		}
		u, err := url.Parse(src.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, "source.baseURL must be an http(s) URL")
		}
	case SourceFile:
		if strings.TrimSpace(src.Dir) == "" {
			errs = append(errs, "source.dir is required for file sources")
		}
	case SourceS3:
		if strings.TrimSpace(src.Bucket) == "" {
			errs = append(errs, "source.bucket is required for s3 sources")
		}
		if strings.TrimSpace(src.Region) == "" {
			errs = append(errs, "source.region is required for s3 sources")
		}
		if (src.AccessKey == "") != (src.SecretKey == "") {
			errs = append(errs, "source.accessKey and source.secretKey must be set together")
		}
	default:
		errs = append(errs, "source.type must be http, file or s3")
	}
	return errs
}
