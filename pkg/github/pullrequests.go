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
	"strings"
	"time"

	"k8c.io/prbump/pkg/types"

	gh "github.com/google/go-github/v62/github"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"
)

const PullRequestsPerPage = 100

// PullsSince lists closed pull requests and keeps those merged after
// mergedAfter into one of the bases. The API cannot filter by merge state,
// so pull requests closed without merging are dropped here as well.
//
// Pages are requested most recently updated first. A pull request merged
// after mergedAfter was necessarily updated after it, so paging stops at
// the first pull request that was last updated before that.
func (c *Client) PullsSince(ctx context.Context, bases sets.Set[string], mergedAfter time.Time) ([]types.PullRequest, error) {
	opts := &gh.PullRequestListOptions{
		State:     "closed",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: PullRequestsPerPage,
		},
	}

	result := []types.PullRequest{}

	for {
		c.log.WithField("page", opts.Page).Debug("PullsSince()")

		page, resp, err := c.rest.PullRequests.List(ctx, c.repo.Owner, c.repo.Name, opts)
		if err != nil {
			return nil, errors.Wrapf(types.ErrSourceUnavailable, "failed to list pull requests: %v", err)
		}

		exhausted := false
		for _, api := range page {
			if !api.GetUpdatedAt().Time.After(mergedAfter) {
				exhausted = true
				break
			}

			pr, err := convertPullRequest(api)
			if err != nil {
				return nil, err
			}

			if pr.MergedSince(mergedAfter, bases) {
				result = append(result, pr)
			}
		}

		if exhausted || resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	c.log.WithField("pulls", len(result)).Debug("Found eligible pull requests.")

	return result, nil
}

func convertPullRequest(api *gh.PullRequest) (types.PullRequest, error) {
	labels := []string{}
	for _, label := range api.Labels {
		labels = append(labels, label.GetName())
	}

	pr := types.NewPullRequest(api.GetNumber(), labels, api.MergedAt.GetTime(), "")

	// the base branch only matters for merged pull requests, do not fail
	// on ones that are going to be skipped anyway
	if !pr.Merged() {
		return pr, nil
	}

	branch, err := parseBaseLabel(api.GetBase().GetLabel())
	if err != nil {
		return pr, errors.Wrapf(err, "pull request #%d", pr.Number)
	}
	pr.BaseBranch = branch

	return pr, nil
}

// parseBaseLabel extracts the branch from a label of the form "owner:branch".
func parseBaseLabel(label string) (string, error) {
	idx := strings.LastIndex(label, ":")
	branch := label[idx+1:]

	if branch == "" {
		return "", errors.Wrapf(types.ErrMalformedBranch, "unexpected format for base label %q", label)
	}

	return branch, nil
}
