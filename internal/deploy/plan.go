package deploy

import (
	"strings"

	"github.com/bayneri/yearcfg/internal/settings"
)

type Plan struct {
	Dir         string
	Remote      string
	Branch      string
	SiteURL     string
	StopOnError bool
	Steps       []Step
}

type Step struct {
	Name string
	Args []string
}

type Options struct {
	Dir         string
	Remote      string
	Branch      string
	Message     string
	SiteURL     string
	StopOnError bool
}

func OptionsFromSettings(s settings.Deploy) Options {
	return Options{
		Dir:     s.Dir,
		Remote:  s.Remote,
		Branch:  s.Branch,
		Message: s.Message,
		SiteURL: s.SiteURL,
	}
}

func Build(opts Options) Plan {
	remote := strings.TrimSpace(opts.Remote)
	if remote == "" {
		remote = settings.DefaultDeployRemote
	}
	branch := strings.TrimSpace(opts.Branch)
	if branch == "" {
		branch = settings.DefaultDeployBranch
	}
	message := strings.TrimSpace(opts.Message)
	if message == "" {
		message = settings.DefaultDeployMessage
	}

	return Plan{
		Dir:         opts.Dir,
		Remote:      remote,
		Branch:      branch,
		SiteURL:     strings.TrimSpace(opts.SiteURL),
		StopOnError: opts.StopOnError,
		Steps: []Step{
			{Name: "status", Args: []string{"git", "status"}},
			{Name: "stage", Args: []string{"git", "add", "."}},
			{Name: "commit", Args: []string{"git", "commit", "-m", message}},
			{Name: "push", Args: []string{"git", "push", remote, branch}},
		},
	}
}

func (s Step) String() string {
	parts := make([]string, len(s.Args))
	for i, arg := range s.Args {
		if strings.ContainsAny(arg, " \t\"'") {
			arg = "\"" + strings.ReplaceAll(arg, "\"", "\\\"") + "\""
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}
