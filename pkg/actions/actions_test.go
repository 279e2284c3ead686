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

package actions

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	var buf bytes.Buffer

	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&Formatter{})
	log.SetLevel(logrus.DebugLevel)

	log.Info("Looking at all pull request labels")
	log.WithField("pulls", 3).WithField("branch", "main").Debug("Listed pull requests")
	log.Warn("100% sure\nsecond line")
	log.Error("Boom")

	expected := "Looking at all pull request labels\n" +
		"::debug::Listed pull requests branch=main pulls=3\n" +
		"::warning::100%25 sure%0Asecond line\n" +
		"::error::Boom\n"

	assert.Equal(t, expected, buf.String())
}

func TestOutputCommands(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf, "")

	out.Group("Finding latest release")
	require.NoError(t, out.Set("next_version", "1.2.4"))
	out.EndGroup()

	expected := "::group::Finding latest release\n" +
		"::set-output name=next_version::1.2.4\n" +
		"::endgroup::\n"

	assert.Equal(t, expected, buf.String())
}

func TestOutputFile(t *testing.T) {
	var buf bytes.Buffer
	filename := filepath.Join(t.TempDir(), "output")

	out := NewOutput(&buf, filename)
	require.NoError(t, out.Set("has_bump", "true"))
	require.NoError(t, out.Set("next_version", "2.0.0"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)

	assert.Equal(t, "has_bump=true\nnext_version=2.0.0\n", string(content))
	assert.Empty(t, buf.String())
}
