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

package config

import (
	"os"
	"strings"
	"unicode"

	"k8c.io/prbump/pkg/bump"
	"k8c.io/prbump/pkg/types"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Config is the bump configuration file. Every field is a pointer so that
// a field that is present, even if empty, can be told apart from one that
// was left out.
type Config struct {
	BaseBranches *[]string   `yaml:"base_branches"`
	BumpFiles    *[]BumpFile `yaml:"bump_files"`
	Categories   *[]Category `yaml:"categories"`
	IgnoreLabels *[]string   `yaml:"ignore_labels"`
}

type Category struct {
	Labels     []string `yaml:"labels"`
	SemverPart string   `yaml:"semver_part"`
}

// BumpFile names a file in which the version is rewritten. Prefix is the
// literal text that immediately precedes the version, e.g. `version = "`.
type BumpFile struct {
	Path   string `yaml:"path"`
	Prefix string `yaml:"prefix"`
}

// UnmarshalYAML also accepts a plain path, meaning a file without prefix.
func (b *BumpFile) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		b.Path = value.Value
		b.Prefix = ""
		return nil
	}

	type plain BumpFile
	return value.Decode((*plain)(b))
}

func strs(s ...string) *[]string {
	return &s
}

// Default returns the built-in configuration: all base branches, no files to
// rewrite and the common label names for each semver part.
func Default() *Config {
	return &Config{
		BaseBranches: nil,
		BumpFiles:    &[]BumpFile{},
		Categories: &[]Category{
			{
				Labels:     []string{"bug", "docs", "documentation", "fix", "patch"},
				SemverPart: bump.Patch.String(),
			},
			{
				Labels:     []string{"enhancement", "feat", "feature", "minor"},
				SemverPart: bump.Minor.String(),
			},
			{
				Labels:     []string{"breaking", "major"},
				SemverPart: bump.Major.String(),
			},
		},
		IgnoreLabels: strs(),
	}
}

// Load reads a configuration file. JSON and YAML are both accepted.
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(types.ErrConfigurationMissing, "could not read configuration at %s: %v", filename, err)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid configuration %s", filename)
	}

	return cfg, nil
}

func Parse(content []byte) (*Config, error) {
	// JSON files are often indented with tabs, which YAML does not allow.
	// Raw control characters are never valid inside JSON strings.
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r == '\n' || r == '\r':
			return r
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, string(content))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(cleaned), cfg); err != nil {
		return nil, errors.Wrap(types.ErrConfigurationMalformed, err.Error())
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Categories != nil {
		for i, category := range *c.Categories {
			if _, err := bump.ParseMagnitude(category.SemverPart); err != nil {
				return errors.Wrapf(types.ErrConfigurationMalformed, "category %d: %v", i, err)
			}
		}
	}

	if c.BumpFiles != nil {
		for i, file := range *c.BumpFiles {
			if file.Path == "" {
				return errors.Wrapf(types.ErrConfigurationMalformed, "bump file %d has no path", i)
			}
		}
	}

	return nil
}

// Merge fills every field absent from c with the one from defaults. Present
// fields are kept as they are, lists are never combined.
func (c *Config) Merge(defaults *Config) *Config {
	if c.BaseBranches == nil {
		c.BaseBranches = defaults.BaseBranches
	}

	if c.BumpFiles == nil {
		c.BumpFiles = defaults.BumpFiles
	}

	if c.Categories == nil {
		c.Categories = defaults.Categories
	}

	if c.IgnoreLabels == nil {
		c.IgnoreLabels = defaults.IgnoreLabels
	}

	return c
}

// Bases returns the admitted base branches, or nil if every branch is
// admitted.
func (c *Config) Bases() sets.Set[string] {
	if c.BaseBranches == nil {
		return nil
	}

	return sets.New(*c.BaseBranches...)
}

func (c *Config) Files() []BumpFile {
	if c.BumpFiles == nil {
		return nil
	}

	return *c.BumpFiles
}

// Rules flattens the categories into a rule set.
func (c *Config) Rules() (*bump.Rules, error) {
	rules := bump.NewRules()

	if c.Categories != nil {
		for i, category := range *c.Categories {
			m, err := bump.ParseMagnitude(category.SemverPart)
			if err != nil {
				return nil, errors.Wrapf(types.ErrConfigurationMalformed, "category %d: %v", i, err)
			}

			rules.AddLabels(m, category.Labels...)
		}
	}

	if c.IgnoreLabels != nil {
		rules.Ignore(*c.IgnoreLabels...)
	}

	return rules, nil
}

// AmbiguityError lists labels configured for more than one semver part.
// Such labels classify as the smallest of their parts.
type AmbiguityError struct {
	Labels map[string][]bump.Magnitude
}

func (e *AmbiguityError) Error() string {
	parts := []string{}
	for _, label := range sets.List(sets.KeySet(e.Labels)) {
		names := []string{}
		for _, m := range e.Labels[label] {
			names = append(names, m.String())
		}
		parts = append(parts, label+" ("+strings.Join(names, ", ")+")")
	}

	return "labels configured for multiple semver parts: " + strings.Join(parts, "; ")
}

func (e *AmbiguityError) Unwrap() error {
	return types.ErrConfigurationMalformed
}

// CheckAmbiguity returns an *AmbiguityError if any label is registered for
// more than one semver part.
func CheckAmbiguity(rules *bump.Rules) error {
	overlaps := rules.Overlaps()
	if len(overlaps) == 0 {
		return nil
	}

	return &AmbiguityError{Labels: overlaps}
}
