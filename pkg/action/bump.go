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

package action

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"k8c.io/prbump/pkg/bump"
	"k8c.io/prbump/pkg/config"
	"k8c.io/prbump/pkg/rewrite"
	"k8c.io/prbump/pkg/source"
	"k8c.io/prbump/pkg/types"

	"github.com/Masterminds/semver/v3"
	"github.com/go-openapi/inflect"
	"github.com/pkg/errors"
)

type Result struct {
	Release   types.Release
	Previous  *semver.Version
	Next      *semver.Version
	Magnitude bump.Magnitude
	Pulls     []types.PullRequest
}

func (r *Result) HasBump() bool {
	return !r.Next.Equal(r.Previous)
}

// LoadConfig reads the configuration file named in opts, if any, and fills
// in the defaults for everything it leaves out.
func (a *Action) LoadConfig(opts *types.Options) (*config.Config, error) {
	if opts.ConfigurationFile == "" {
		a.log.Info("No configuration file given, using defaults.")
		return config.Default(), nil
	}

	a.log.WithField("file", opts.ConfigurationFile).Info("Reading configuration file")

	cfg, err := config.Load(opts.ConfigurationFile)
	if err != nil {
		return nil, err
	}

	return cfg.Merge(config.Default()), nil
}

// Rules builds the rule set and checks it for labels that are configured
// for more than one semver part. Those are only reported, unless strict is
// set.
func (a *Action) Rules(cfg *config.Config, strict bool) (*bump.Rules, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}

	if err := config.CheckAmbiguity(rules); err != nil {
		if strict {
			return nil, err
		}

		a.log.Warnf("%v; they count as the smallest part.", err)
	}

	return rules, nil
}

// Compute determines the next version from the latest release and the pull
// requests merged after it. It has no side effects.
func (a *Action) Compute(ctx context.Context, src source.Source, cfg *config.Config, rules *bump.Rules) (*Result, error) {
	result := &Result{}

	err := a.step("🛳️  Finding latest release", func() error {
		release, err := src.LatestRelease(ctx)
		if err != nil {
			return errors.Wrap(err, "could not find latest release")
		}

		version, err := release.Version()
		if err != nil {
			return err
		}

		a.log.WithField("tag", release.TagName).WithField("created", release.CreatedAt).Info("Found latest release")

		result.Release = release
		result.Previous = version
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = a.step("📜  Reading pull requests", func() error {
		pulls, err := src.PullsSince(ctx, cfg.Bases(), result.Release.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "could not list pull requests")
		}

		a.log.Infof("Found %s merged since the latest release", countPulls(len(pulls)))

		result.Pulls = pulls
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = a.step("🎯  Calculating version bump", func() error {
		a.log.Info("Looking at all pull request labels")

		result.Magnitude = rules.Resolve(result.Pulls)
		result.Next = bump.Bump(result.Previous, result.Magnitude)

		if result.Magnitude != bump.None {
			a.log.Infof("Version bump required: %s", result.Magnitude.Title())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func countPulls(n int) string {
	noun := "pull request"
	if n != 1 {
		noun = inflect.Pluralize(noun)
	}

	return fmt.Sprintf("%d %s", n, noun)
}

// UpdateFiles rewrites the version in every configured file. Files are
// processed in order; the first failure stops processing, files that were
// already updated stay updated.
func (a *Action) UpdateFiles(workspace string, files []config.BumpFile, result *Result) error {
	return a.step("✏️  Updating files with the new version", func() error {
		if !result.HasBump() {
			a.log.Info("Version did not change, no files to update.")
			return nil
		}

		for _, file := range files {
			path := file.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(workspace, path)
			}

			if err := rewrite.File(a.log, path, file.Prefix, result.Previous.String(), result.Next.String()); err != nil {
				return err
			}
		}

		return nil
	})
}

func (a *Action) SetOutputs(result *Result) error {
	if result.HasBump() {
		a.log.Infof("✅ Done! Performed a version bump: %s ➡ %s", result.Previous, result.Next)
	} else {
		a.log.Infof("✅ Done! Version did not change (current: %s)", result.Next)
	}

	outputs := []struct {
		name  string
		value string
	}{
		{name: "has_bump", value: strconv.FormatBool(result.HasBump())},
		{name: "previous_version", value: result.Previous.String()},
		{name: "next_version", value: result.Next.String()},
	}

	for _, o := range outputs {
		if err := a.output.Set(o.name, o.value); err != nil {
			return err
		}
	}

	return nil
}

// Run executes the whole bump: configuration, version computation, file
// updates and step outputs.
func (a *Action) Run(ctx context.Context, src source.Source, opts *types.Options) (*Result, error) {
	var (
		cfg   *config.Config
		rules *bump.Rules
	)

	a.log.WithField("dry-run", opts.DryRun).Infof("Starting %s", a.Name)

	err := a.step("⚙️  Reading input configuration", func() error {
		var err error

		cfg, err = a.LoadConfig(opts)
		if err != nil {
			return err
		}

		rules, err = a.Rules(cfg, opts.Strict)
		return err
	})
	if err != nil {
		return nil, err
	}

	result, err := a.Compute(ctx, src, cfg, rules)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		a.log.Info("Dry run, not updating any files.")
	} else if err := a.UpdateFiles(opts.Workspace, cfg.Files(), result); err != nil {
		return nil, err
	}

	if err := a.SetOutputs(result); err != nil {
		return nil, err
	}

	return result, nil
}
