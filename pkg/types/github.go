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
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

type PullRequest struct {
	Number     int
	Labels     sets.Set[string]
	MergedAt   *time.Time
	BaseBranch string
}

func NewPullRequest(number int, labels []string, mergedAt *time.Time, baseBranch string) PullRequest {
	return PullRequest{
		Number:     number,
		Labels:     sets.New(labels...),
		MergedAt:   mergedAt,
		BaseBranch: baseBranch,
	}
}

// Merged returns false for open pull requests and for those that were
// closed without being merged.
func (p PullRequest) Merged() bool {
	return p.MergedAt != nil
}

// MergedSince reports whether the pull request was merged strictly after
// mergedAfter into one of the given base branches. A nil set of bases
// admits every branch.
func (p PullRequest) MergedSince(mergedAfter time.Time, bases sets.Set[string]) bool {
	if !p.Merged() || !p.MergedAt.After(mergedAfter) {
		return false
	}

	return bases == nil || bases.Has(p.BaseBranch)
}

type Release struct {
	TagName   string
	CreatedAt time.Time
}

const epochTag = "0.1.0"

// EpochRelease is the placeholder used when a repository has not published
// any release yet.
func EpochRelease() Release {
	return Release{
		TagName:   epochTag,
		CreatedAt: time.Unix(0, 0).UTC(),
	}
}

// Version parses the release tag as a semantic version. A single leading
// "v" is accepted, prerelease and build metadata are kept.
func (r Release) Version() (*semver.Version, error) {
	version, err := semver.StrictNewVersion(strings.TrimPrefix(r.TagName, "v"))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidVersionTag, "release tag %q: %v", r.TagName, err)
	}

	return version, nil
}

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository splits an "owner/name" string.
func ParseRepository(s string) (Repository, error) {
	if s == "" {
		return Repository{}, errors.Wrap(ErrConfigurationMissing, "no repository given")
	}

	owner, name, found := strings.Cut(s, "/")
	if !found || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, errors.Wrapf(ErrConfigurationMalformed, "repository %q is not of the form owner/name", s)
	}

	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}
