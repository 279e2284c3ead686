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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"k8c.io/prbump/pkg/actions"
	"k8c.io/prbump/pkg/config"
	"k8c.io/prbump/pkg/source"
	"k8c.io/prbump/pkg/types"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var knownErrors = map[string]error{
	"no-releases":         types.ErrNoReleases,
	"invalid-version-tag": types.ErrInvalidVersionTag,
	"source-unavailable":  types.ErrSourceUnavailable,
}

type computeTestcase struct {
	source.FixtureFile `yaml:",inline"`

	Config   *config.Config `yaml:"config"`
	Expected string         `yaml:"expected"`
	Error    string         `yaml:"error"`
}

func newTestAction(buf *bytes.Buffer, outputFile string) *Action {
	log := logrus.New()
	log.SetOutput(buf)
	log.SetFormatter(&actions.Formatter{})

	return New(log, actions.NewOutput(buf, outputFile))
}

func TestCompute(t *testing.T) {
	files, err := os.ReadDir("testdata")
	if err != nil {
		t.Fatalf("Failed to load testcases: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		t.Run(file.Name(), func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("testdata", file.Name()))
			if err != nil {
				t.Fatalf("Failed to load testcase: %v", err)
			}

			testcase := computeTestcase{}
			if err := yaml.Unmarshal(content, &testcase); err != nil {
				t.Fatalf("Failed to load testcase: %v", err)
			}

			cfg := testcase.Config
			if cfg == nil {
				cfg = &config.Config{}
			}
			cfg.Merge(config.Default())

			var buf bytes.Buffer
			a := newTestAction(&buf, "")

			rules, err := a.Rules(cfg, true)
			if err != nil {
				t.Fatalf("Failed to build rules: %v", err)
			}

			result, err := a.Compute(context.Background(), testcase.Fixture(), cfg, rules)

			if testcase.Error != "" {
				expected, ok := knownErrors[testcase.Error]
				if !ok {
					t.Fatalf("Unknown error %q in testcase.", testcase.Error)
				}

				if !errors.Is(err, expected) {
					t.Fatalf("Expected error %v, got %v.", expected, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Failed to compute next version: %v", err)
			}

			if result.Next.String() != testcase.Expected {
				t.Fatalf("Expected next version %s, got %s.", testcase.Expected, result.Next)
			}
		})
	}
}

func TestRun(t *testing.T) {
	workspace := t.TempDir()

	files := map[string]string{
		"Cargo.toml":   "[package]\nname = \"demo\"\nversion = \"1.2.3\"\n",
		"package.json": "{\n  \"version\": \"1.2.3\"\n}\n",
		".prbump.json": `{
  "bump_files": [
    {"path": "Cargo.toml", "prefix": "version = \""},
    {"path": "package.json", "prefix": "\"version\": \""}
  ]
}`,
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(workspace, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	fixture := source.NewFixture()
	fixture.AddRelease(types.Release{TagName: "v1.2.3", CreatedAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)})

	merged := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	fixture.AddPull(types.NewPullRequest(1, []string{"feat"}, &merged, "main"))

	outputFile := filepath.Join(workspace, "output")
	opts := &types.Options{
		Workspace:         workspace,
		ConfigurationFile: filepath.Join(workspace, ".prbump.json"),
	}

	var buf bytes.Buffer
	result, err := newTestAction(&buf, outputFile).Run(context.Background(), fixture, opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.HasBump() || result.Next.String() != "1.3.0" {
		t.Fatalf("Expected a bump to 1.3.0, got %v.", result.Next)
	}

	expectedFiles := map[string]string{
		"Cargo.toml":   "[package]\nname = \"demo\"\nversion = \"1.3.0\"\n",
		"package.json": "{\n  \"version\": \"1.3.0\"\n}\n",
		"output":       "has_bump=true\nprevious_version=1.2.3\nnext_version=1.3.0\n",
	}

	for name, expected := range expectedFiles {
		content, err := os.ReadFile(filepath.Join(workspace, name))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}

		if string(content) != expected {
			t.Errorf("Expected %s to be %q, got %q.", name, expected, string(content))
		}
	}
}

func TestRunDryRun(t *testing.T) {
	workspace := t.TempDir()
	target := filepath.Join(workspace, "VERSION")

	if err := os.WriteFile(target, []byte("1.2.3\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := os.WriteFile(filepath.Join(workspace, "config.json"), []byte(`{"bump_files": ["VERSION"]}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	fixture := source.NewFixture()
	fixture.AddRelease(types.Release{TagName: "1.2.3", CreatedAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)})

	merged := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	fixture.AddPull(types.NewPullRequest(1, []string{"breaking"}, &merged, "main"))

	opts := &types.Options{
		Workspace:         workspace,
		ConfigurationFile: filepath.Join(workspace, "config.json"),
		DryRun:            true,
	}

	var buf bytes.Buffer
	act := newTestAction(&buf, "")
	act.Name = "prbump-ci"

	result, err := act.Run(context.Background(), fixture, opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("Starting prbump-ci dry-run=true\n")) {
		t.Fatalf("Expected the run to be announced with the action name, got:\n%s", buf.String())
	}

	if result.Next.String() != "2.0.0" {
		t.Fatalf("Expected 2.0.0, got %s.", result.Next)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}

	if string(content) != "1.2.3\n" {
		t.Fatalf("Dry run modified the file: %q", string(content))
	}

	if !bytes.Contains(buf.Bytes(), []byte("::set-output name=next_version::2.0.0")) {
		t.Fatalf("Expected next_version output, got:\n%s", buf.String())
	}
}

func TestRunStopsAtFirstFailingFile(t *testing.T) {
	workspace := t.TempDir()

	if err := os.WriteFile(filepath.Join(workspace, "first"), []byte("1.2.3"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := os.WriteFile(filepath.Join(workspace, "last"), []byte("1.2.3"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	cfg := `{"bump_files": ["first", "missing", "last"]}`
	if err := os.WriteFile(filepath.Join(workspace, "config.json"), []byte(cfg), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	fixture := source.NewFixture()
	fixture.AddRelease(types.Release{TagName: "1.2.3", CreatedAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)})

	merged := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	fixture.AddPull(types.NewPullRequest(1, []string{"fix"}, &merged, "main"))

	opts := &types.Options{
		Workspace:         workspace,
		ConfigurationFile: filepath.Join(workspace, "config.json"),
	}

	var buf bytes.Buffer
	if _, err := newTestAction(&buf, "").Run(context.Background(), fixture, opts); err == nil {
		t.Fatal("Expected Run to fail for a missing bump file.")
	}

	for name, expected := range map[string]string{"first": "1.2.4", "last": "1.2.3"} {
		content, _ := os.ReadFile(filepath.Join(workspace, name))
		if string(content) != expected {
			t.Errorf("Expected %s to contain %q, got %q.", name, expected, string(content))
		}
	}
}

func TestRunStrictRejectsAmbiguousCategories(t *testing.T) {
	workspace := t.TempDir()

	cfg := `{"categories": [
  {"labels": ["fix"], "semver_part": "patch"},
  {"labels": ["fix"], "semver_part": "major"}
]}`
	if err := os.WriteFile(filepath.Join(workspace, "config.json"), []byte(cfg), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	fixture := source.NewFixture()
	fixture.AddRelease(types.Release{TagName: "1.2.3", CreatedAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)})

	merged := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	fixture.AddPull(types.NewPullRequest(1, []string{"fix"}, &merged, "main"))

	opts := &types.Options{
		Workspace:         workspace,
		ConfigurationFile: filepath.Join(workspace, "config.json"),
		DryRun:            true,
		Strict:            true,
	}

	var buf bytes.Buffer
	_, err := newTestAction(&buf, "").Run(context.Background(), fixture, opts)
	if !errors.Is(err, types.ErrConfigurationMalformed) {
		t.Fatalf("Expected ErrConfigurationMalformed, got %v.", err)
	}

	opts.Strict = false
	buf.Reset()

	result, err := newTestAction(&buf, "").Run(context.Background(), fixture, opts)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Next.String() != "1.2.4" {
		t.Fatalf("Expected the ambiguous label to count as patch, got %s.", result.Next)
	}

	if !bytes.Contains(buf.Bytes(), []byte("::warning::labels configured for multiple semver parts")) {
		t.Fatalf("Expected a warning about ambiguous labels, got:\n%s", buf.String())
	}
}
