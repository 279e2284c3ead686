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

package rewrite

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// File replaces the first occurrence of prefix+oldVersion in the file with
// prefix+newVersion. The prefix is literal text, not a pattern. A file that
// does not contain the old version is left untouched.
func File(log logrus.FieldLogger, filename string, prefix string, oldVersion string, newVersion string) error {
	log = log.WithField("file", filename)
	log.Info("Updating version")

	info, err := os.Stat(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to update %s", filename)
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to update %s", filename)
	}

	needle := prefix + oldVersion
	if !strings.Contains(string(content), needle) {
		log.WithField("search", needle).Warn("Version not found, file left unchanged.")
		return nil
	}

	replaced := strings.Replace(string(content), needle, prefix+newVersion, 1)

	if err := os.WriteFile(filename, []byte(replaced), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, "failed to update %s", filename)
	}

	return nil
}
