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

package source

import (
	"context"
	"os"
	"time"

	"k8c.io/prbump/pkg/types"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Fixture is an in-memory source. Unlike the GitHub source it does not fall
// back to a placeholder release: LatestRelease fails with types.ErrNoReleases
// until a release was added.
type Fixture struct {
	pulls    []types.PullRequest
	releases []types.Release
}

var _ Source = &Fixture{}

func NewFixture() *Fixture {
	return &Fixture{}
}

func (f *Fixture) AddPull(pr types.PullRequest) {
	f.pulls = append(f.pulls, pr)
}

func (f *Fixture) AddRelease(release types.Release) {
	f.releases = append(f.releases, release)
}

func (f *Fixture) PullsSince(_ context.Context, bases sets.Set[string], mergedAfter time.Time) ([]types.PullRequest, error) {
	result := []types.PullRequest{}
	for _, pr := range f.pulls {
		if pr.MergedSince(mergedAfter, bases) {
			result = append(result, pr)
		}
	}

	return result, nil
}

func (f *Fixture) LatestRelease(_ context.Context) (types.Release, error) {
	if len(f.releases) == 0 {
		return types.Release{}, types.ErrNoReleases
	}

	return f.releases[len(f.releases)-1], nil
}

type FixtureFile struct {
	Releases     []FixtureRelease     `yaml:"releases"`
	PullRequests []FixturePullRequest `yaml:"pullRequests"`
}

type FixtureRelease struct {
	Tag       string    `yaml:"tag"`
	CreatedAt time.Time `yaml:"createdAt"`
}

type FixturePullRequest struct {
	Number   int        `yaml:"number"`
	Labels   []string   `yaml:"labels"`
	MergedAt *time.Time `yaml:"mergedAt"`
	Base     string     `yaml:"base"`
}

// Fixture builds a source from the file contents, keeping the order of
// releases and pull requests.
func (ff FixtureFile) Fixture() *Fixture {
	fixture := NewFixture()

	for _, r := range ff.Releases {
		fixture.AddRelease(types.Release{
			TagName:   r.Tag,
			CreatedAt: r.CreatedAt,
		})
	}

	for _, pr := range ff.PullRequests {
		fixture.AddPull(types.NewPullRequest(pr.Number, pr.Labels, pr.MergedAt, pr.Base))
	}

	return fixture
}

// LoadFixture reads a YAML file describing releases and pull requests.
func LoadFixture(filename string) (*Fixture, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(types.ErrConfigurationMissing, "failed to read fixture: %v", err)
	}

	ff := FixtureFile{}
	if err := yaml.Unmarshal(content, &ff); err != nil {
		return nil, errors.Wrapf(types.ErrConfigurationMalformed, "failed to parse fixture %s: %v", filename, err)
	}

	return ff.Fixture(), nil
}
