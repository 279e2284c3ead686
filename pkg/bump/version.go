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

package bump

import (
	"k8c.io/prbump/pkg/types"

	"github.com/Masterminds/semver/v3"
)

// NextVersion computes the version that follows current, given the pull
// requests merged since current was released. The result only depends on
// the largest magnitude any label demands, so neither the number nor the
// order of pull requests matters.
func NextVersion(current *semver.Version, rules *Rules, pulls []types.PullRequest) *semver.Version {
	return Bump(current, rules.Resolve(pulls))
}

// Bump returns a new version incremented by m. Prerelease and build
// metadata of current are carried over as-is.
func Bump(current *semver.Version, m Magnitude) *semver.Version {
	major, minor, patch := current.Major(), current.Minor(), current.Patch()

	switch m {
	case Patch:
		patch++
	case Minor:
		minor++
		patch = 0
	case Major:
		major++
		minor = 0
		patch = 0
	}

	return semver.New(major, minor, patch, current.Prerelease(), current.Metadata())
}
