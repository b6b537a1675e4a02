package main

import (
	"flag"
	"os"
	"strings"

	"github.com/bayneri/yearcfg/internal/deploy"
	"github.com/bayneri/yearcfg/internal/settings"
)

type deployOptions struct {
	file        string
	dir         string
	siteURL     string
	dryRun      bool
	stopOnError bool
	failOnError bool
}

func deployFlags() (*flag.FlagSet, *deployOptions) {
	fs := flag.NewFlagSet("deploy", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := &deployOptions{}
	fs.StringVar(&opts.file, "f", "", "path to settings file (optional)")
	fs.StringVar(&opts.dir, "site-dir", "", "working tree to deploy (overrides deploy.dir)")
	fs.StringVar(&opts.siteURL, "site-url", "", "URL printed after deploying (overrides deploy.siteURL)")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "print the git steps without running them")
	fs.BoolVar(&opts.stopOnError, "stop-on-error", false, "stop at the first failing step")
	fs.BoolVar(&opts.failOnError, "fail-on-error", false, "exit non-zero if any step failed")
	return fs, opts
}

func buildDeployPlan(opts *deployOptions) (deploy.Plan, error) {
	s := settings.Default()
	if strings.TrimSpace(opts.file) != "" {
		loaded, err := settings.Load(opts.file)
		if err != nil {
			return deploy.Plan{}, err
		}
		s = loaded
	}
	if opts.dir != "" {
		s.Deploy.Dir = opts.dir
	}
	if opts.siteURL != "" {
		s.Deploy.SiteURL = opts.siteURL
	}
	if err := s.Deploy.Validate(); err != nil {
		return deploy.Plan{}, err
	}

	dopts := deploy.OptionsFromSettings(s.Deploy)
	dopts.StopOnError = opts.stopOnError
	return deploy.Build(dopts), nil
}

func runDeploy(args []string) error {
	fs, opts := deployFlags()
	if err := fs.Parse(args); err != nil {
		return err
	}
	plan, err := buildDeployPlan(opts)
	if err != nil {
		return err
	}

	if opts.dryRun {
		deploy.Render(os.Stdout, plan)
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()

	result := deploy.Run(ctx, deploy.ExecRunner{}, plan, os.Stdout)
	if err := result.Err(); err != nil && opts.failOnError {
		return exitError{code: 2, err: err}
	}
	return nil
}
