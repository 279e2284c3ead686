/*
Copyright 2026 The Kubermatic Kubernetes Platform contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package types

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	SourceGitHub  = "github"
	SourceFixture = "fixture"
)

type Options struct {
	Repository    string
	Workspace     string
	Configuration string
	GithubToken   string
	OutputFile    string
	Source        string
	FixtureFile   string
	DryRun        bool
	Strict        bool
	Verbose       bool

	// Repo and ConfigurationFile are derived by Parse.
	Repo              Repository
	ConfigurationFile string
}

// envBindings maps option keys to the environment variables GitHub Actions
// provides for them. Flags given on the command line take precedence.
var envBindings = map[string]string{
	"repository":    "GITHUB_REPOSITORY",
	"workspace":     "GITHUB_WORKSPACE",
	"configuration": "INPUT_CONFIGURATION",
	"token":         "GITHUB_TOKEN",
	"output":        "GITHUB_OUTPUT",
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Repository, "repository", "r", "", "Repository in owner/name form ($GITHUB_REPOSITORY)")
	fs.StringVarP(&o.Workspace, "workspace", "w", "", "Path to the checked out repository ($GITHUB_WORKSPACE)")
	fs.StringVarP(&o.Configuration, "configuration", "c", "", "Configuration file, relative to the workspace ($INPUT_CONFIGURATION)")
	fs.StringVar(&o.Source, "source", SourceGitHub, "Where to read releases and pull requests from (github or fixture)")
	fs.StringVar(&o.FixtureFile, "fixture", "", "YAML file with releases and pull requests, used with --source=fixture")
	fs.BoolVar(&o.DryRun, "dry-run", false, "Compute the next version without rewriting any files")
	fs.BoolVar(&o.Strict, "strict", false, "Fail if a label is configured for more than one semver part")
	fs.BoolVarP(&o.Verbose, "verbose", "V", false, "Enable more verbose logging")
}

// Parse fills in options that were not given as flags from the environment
// and validates the result.
func (o *Options) Parse(fs *pflag.FlagSet) error {
	v := viper.New()

	for key, env := range envBindings {
		if flag := fs.Lookup(key); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return errors.Wrapf(err, "failed to bind --%s", key)
			}
		}

		if err := v.BindEnv(key, env); err != nil {
			return errors.Wrapf(err, "failed to bind $%s", env)
		}
	}

	o.Repository = v.GetString("repository")
	o.Workspace = v.GetString("workspace")
	o.Configuration = v.GetString("configuration")
	o.GithubToken = v.GetString("token")
	o.OutputFile = v.GetString("output")

	return o.validate()
}

func (o *Options) validate() error {
	switch o.Source {
	case SourceGitHub:
		repo, err := ParseRepository(o.Repository)
		if err != nil {
			return err
		}
		o.Repo = repo

	case SourceFixture:
		if o.FixtureFile == "" {
			return errors.Wrap(ErrConfigurationMissing, "no --fixture given for --source=fixture")
		}

		if o.Repository != "" {
			repo, err := ParseRepository(o.Repository)
			if err != nil {
				return err
			}
			o.Repo = repo
		}

	default:
		return errors.Wrapf(ErrConfigurationMalformed, "unknown --source %q", o.Source)
	}

	if o.Workspace == "" {
		return errors.Wrap(ErrConfigurationMissing, "no workspace given, set $GITHUB_WORKSPACE or --workspace")
	}

	o.ConfigurationFile = ""
	if o.Configuration != "" {
		o.ConfigurationFile = o.Configuration
		if !filepath.IsAbs(o.ConfigurationFile) {
			o.ConfigurationFile = filepath.Join(o.Workspace, o.Configuration)
		}
	}

	return nil
}
