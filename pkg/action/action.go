/*
Copyright 2020 The Kubermatic Kubernetes Platform contributors.

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

package action

import (
	"os"
	"path/filepath"

	"k8c.io/prbump/pkg/actions"

	"github.com/sirupsen/logrus"
)

// Action knows everything to run a version bump
type Action struct {
	// Name is the binary name, announced when a run starts.
	Name   string
	log    logrus.FieldLogger
	output *actions.Output
}

// New returns a new Action wrapper
func New(log logrus.FieldLogger, output *actions.Output) *Action {
	name := "prbump"
	if len(os.Args) > 0 {
		name = filepath.Base(os.Args[0])
	}

	return &Action{
		Name:   name,
		log:    log,
		output: output,
	}
}

// step runs fn inside a collapsible log group.
func (a *Action) step(title string, fn func() error) error {
	a.output.Group(title)
	defer a.output.EndGroup()

	return fn()
}
