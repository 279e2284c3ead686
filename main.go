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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"k8c.io/prbump/pkg/action"
	"k8c.io/prbump/pkg/actions"
	"k8c.io/prbump/pkg/source"
	"k8c.io/prbump/pkg/types"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

var (
	version = "v0.1"
)

func main() {
	// a local .env is convenient for running outside of a workflow; it
	// never overrides variables that are already set
	_ = godotenv.Load()

	opts := types.Options{}
	opts.AddFlags(pflag.CommandLine)
	showVersion := pflag.Bool("version", false, "Print the version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&actions.Formatter{})
	log.SetLevel(logrus.InfoLevel)

	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(log, &opts); err != nil {
		log.Errorf("💥  %v", err)
		os.Exit(1)
	}
}

func run(log *logrus.Logger, opts *types.Options) error {
	if err := opts.Parse(pflag.CommandLine); err != nil {
		return errors.Wrap(err, "invalid command line")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := source.New(ctx, log, opts)
	if err != nil {
		return err
	}

	act := action.New(log, actions.NewOutput(os.Stdout, opts.OutputFile))

	_, err = act.Run(ctx, src, opts)
	return err
}
