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
	"fmt"

	"github.com/go-openapi/inflect"
)

// Magnitude is the size of a version increment. The zero value means no
// increment; the remaining values are ordered so that max() picks the
// largest bump.
type Magnitude int

const (
	None Magnitude = iota
	Patch
	Minor
	Major
)

var magnitudeNames = map[Magnitude]string{
	None:  "none",
	Patch: "patch",
	Minor: "minor",
	Major: "major",
}

func ParseMagnitude(s string) (Magnitude, error) {
	for m, name := range magnitudeNames {
		if m != None && name == s {
			return m, nil
		}
	}

	return None, fmt.Errorf("unknown semver part %q, expected one of patch, minor or major", s)
}

func (m Magnitude) String() string {
	if name, ok := magnitudeNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Magnitude(%d)", int(m))
}

func (m Magnitude) Title() string {
	return inflect.Titleize(m.String())
}
