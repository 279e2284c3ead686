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

// Package actions speaks the GitHub Actions workflow command protocol:
// log annotations, collapsible log groups and step outputs.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

var commandEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

// Formatter renders log entries as workflow commands, so that warnings and
// errors are annotated in the run summary and debug output only shows up
// when step debugging is enabled.
type Formatter struct{}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	prefix := ""
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		prefix = "::error::"
	case logrus.WarnLevel:
		prefix = "::warning::"
	case logrus.DebugLevel, logrus.TraceLevel:
		prefix = "::debug::"
	}

	b.WriteString(entry.Message)
	for _, key := range sets.List(sets.KeySet(entry.Data)) {
		fmt.Fprintf(&b, " %s=%v", key, entry.Data[key])
	}

	message := b.String()
	if prefix != "" {
		message = prefix + commandEscaper.Replace(message)
	}

	return []byte(message + "\n"), nil
}

// Output writes step outputs and log groups. Outputs go to the file named by
// $GITHUB_OUTPUT if there is one, and are printed as the legacy set-output
// command otherwise.
type Output struct {
	w          io.Writer
	outputFile string
}

func NewOutput(w io.Writer, outputFile string) *Output {
	return &Output{
		w:          w,
		outputFile: outputFile,
	}
}

func (o *Output) Group(name string) {
	fmt.Fprintf(o.w, "::group::%s\n", commandEscaper.Replace(name))
}

func (o *Output) EndGroup() {
	fmt.Fprintln(o.w, "::endgroup::")
}

func (o *Output) Set(name string, value string) error {
	if o.outputFile == "" {
		_, err := fmt.Fprintf(o.w, "::set-output name=%s::%s\n", name, commandEscaper.Replace(value))
		return err
	}

	f, err := os.OpenFile(o.outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to open output file")
	}
	defer f.Close()

	line := fmt.Sprintf("%s=%s\n", name, value)
	if strings.ContainsAny(value, "\r\n") {
		line = fmt.Sprintf("%s<<PRBUMP_EOF\n%s\nPRBUMP_EOF\n", name, value)
	}

	if _, err := f.WriteString(line); err != nil {
		return errors.Wrapf(err, "failed to write output %q", name)
	}

	return nil
}
