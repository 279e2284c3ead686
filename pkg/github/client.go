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
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Client talks to the GitHub REST API through one long-lived HTTP client.
type Client struct {
	rest *gh.Client
	repo types.Repository
	log  logrus.FieldLogger
}

// NewClient creates a client for the repository. Without a token requests
// are made anonymously, which is enough for public repositories.
func NewClient(ctx context.Context, log logrus.FieldLogger, repo types.Repository, token string) (*Client, error) {
	if token == "" {
		log.Warn("No token given, accessing GitHub anonymously.")
		return newClient(log, repo, &http.Client{}, "")
	}

	src := oauth2.StaticTokenSource(
		&oauth2.Token{
			AccessToken: token,
		},
	)
	httpClient := oauth2.NewClient(ctx, src)

	return newClient(log, repo, httpClient, "")
}

// newClient creates a client for the given HTTP client. An empty baseURL
// targets github.com, otherwise the URL is treated as a GitHub Enterprise
// installation.
func newClient(log logrus.FieldLogger, repo types.Repository, httpClient *http.Client, baseURL string) (*Client, error) {
	rest := gh.NewClient(httpClient)

	if baseURL != "" {
		var err error

		rest, err = rest.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, errors.Wrapf(types.ErrConfigurationMalformed, "invalid GitHub URL %q: %v", baseURL, err)
		}
	}

	return &Client{
		rest: rest,
		repo: repo,
		log:  log.WithField("repository", repo.String()),
	}, nil
}
