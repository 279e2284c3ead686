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

import "github.com/pkg/errors"

var (
	// ErrConfigurationMissing means a required setting was not provided and
	// has no default.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrConfigurationMalformed means a setting or the configuration file
	// could not be parsed.
	ErrConfigurationMalformed = errors.New("configuration malformed")

	// ErrInvalidVersionTag means a release tag is not a semantic version.
	ErrInvalidVersionTag = errors.New("invalid version tag")

	// ErrSourceUnavailable means the upstream pull request or release source
	// failed for a reason other than "not found".
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNoReleases is returned by sources that have no release to offer
	// and no placeholder to fall back to.
	ErrNoReleases = errors.New("no releases")

	// ErrMalformedBranch means an upstream pull request carried a base
	// branch label that could not be parsed.
	ErrMalformedBranch = errors.New("malformed base branch")
)
