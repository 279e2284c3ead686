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

	"k8s.io/apimachinery/pkg/util/sets"
)

// classifyOrder is the order in which label sets are consulted. A label
// registered for more than one magnitude resolves to the first match.
var classifyOrder = []Magnitude{Patch, Minor, Major}

// Rules maps pull request labels to the magnitude of the version bump they
// demand.
type Rules struct {
	labels  map[Magnitude]sets.Set[string]
	ignored sets.Set[string]
}

func NewRules() *Rules {
	r := &Rules{
		labels:  map[Magnitude]sets.Set[string]{},
		ignored: sets.New[string](),
	}

	for _, m := range classifyOrder {
		r.labels[m] = sets.New[string]()
	}

	return r
}

// AddLabels registers labels for the given magnitude. Registering None is a
// no-op.
func (r *Rules) AddLabels(m Magnitude, labels ...string) {
	set, ok := r.labels[m]
	if !ok {
		return
	}

	set.Insert(labels...)
}

// Ignore excludes every pull request carrying one of the labels from Resolve,
// regardless of its other labels.
func (r *Rules) Ignore(labels ...string) {
	r.ignored.Insert(labels...)
}

func (r *Rules) Classify(label string) (Magnitude, bool) {
	for _, m := range classifyOrder {
		if r.labels[m].Has(label) {
			return m, true
		}
	}

	return None, false
}

// Resolve returns the largest magnitude demanded by any label of any of the
// pull requests, or None.
func (r *Rules) Resolve(pulls []types.PullRequest) Magnitude {
	result := None

	for _, pr := range pulls {
		if r.ignored.HasAny(sets.List(pr.Labels)...) {
			continue
		}

		for label := range pr.Labels {
			if m, ok := r.Classify(label); ok && m > result {
				result = m
			}
		}

		if result == Major {
			break
		}
	}

	return result
}

// Overlaps returns every label registered for more than one magnitude,
// together with those magnitudes in classification order.
func (r *Rules) Overlaps() map[string][]Magnitude {
	seen := map[string][]Magnitude{}
	for _, m := range classifyOrder {
		for label := range r.labels[m] {
			seen[label] = append(seen[label], m)
		}
	}

	result := map[string][]Magnitude{}
	for label, magnitudes := range seen {
		if len(magnitudes) > 1 {
			result[label] = magnitudes
		}
	}

	return result
}
