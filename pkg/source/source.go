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
	"time"

	"k8c.io/prbump/pkg/github"
	"k8c.io/prbump/pkg/types"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

// PullRequestSource lists pull requests merged after a point in time. A nil
// set of bases admits pull requests against every branch. The order of the
// returned pull requests is unspecified.
type PullRequestSource interface {
	PullsSince(ctx context.Context, bases sets.Set[string], mergedAfter time.Time) ([]types.PullRequest, error)
}

// ReleaseRepository returns the most recently published release.
type ReleaseRepository interface {
	LatestRelease(ctx context.Context) (types.Release, error)
}

type Source interface {
	PullRequestSource
	ReleaseRepository
}

// New constructs the source selected by opts.Source.
func New(ctx context.Context, log logrus.FieldLogger, opts *types.Options) (Source, error) {
	switch opts.Source {
	case types.SourceGitHub:
		client, err := github.NewClient(ctx, log, opts.Repo, opts.GithubToken)
		if err != nil {
			return nil, err
		}

		return client, nil

	case types.SourceFixture:
		fixture, err := LoadFixture(opts.FixtureFile)
		if err != nil {
			return nil, err
		}

		return fixture, nil

	default:
		return nil, errors.Wrapf(types.ErrConfigurationMalformed, "unknown source %q", opts.Source)
	}
}
