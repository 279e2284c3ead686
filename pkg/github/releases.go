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

package github

import (
	"context"
	"net/http"

	"k8c.io/prbump/pkg/types"

	gh "github.com/google/go-github/v62/github"
	"github.com/pkg/errors"
)

// LatestRelease returns the latest published release. A "not found" answer
// means the repository has no release yet and yields types.EpochRelease, so
// that versioning can start.
func (c *Client) LatestRelease(ctx context.Context) (types.Release, error) {
	c.log.Debug("LatestRelease()")

	release, _, err := c.rest.Repositories.GetLatestRelease(ctx, c.repo.Owner, c.repo.Name)
	if err != nil {
		if isNotFound(err) {
			c.log.Warn("Repository has no releases, starting from the epoch release.")
			return types.EpochRelease(), nil
		}

		return types.Release{}, errors.Wrapf(types.ErrSourceUnavailable, "failed to fetch latest release: %v", err)
	}

	return types.Release{
		TagName:   release.GetTagName(),
		CreatedAt: release.GetCreatedAt().Time,
	}, nil
}

func isNotFound(err error) bool {
	var apiErr *gh.ErrorResponse
	if !errors.As(err, &apiErr) || apiErr.Response == nil {
		return false
	}

	return apiErr.Response.StatusCode == http.StatusNotFound
}
