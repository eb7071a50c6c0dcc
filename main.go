// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Command pysetup computes the metadata that a Python project's setup.py would hand to
// setuptools: the package version and the requirement lists.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/datawire/pysetup/pkg/cliutil"
)

var (
	logger  = logrus.New()
	verbose bool
)

var argparser = &cobra.Command{
	Use:   "pysetup {[flags]|SUBCOMMAND...}",
	Short: "Compute Python package metadata from version and requirements files",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,

	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}
	},

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
	argparser.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debugging information to stderr")
}

func main() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	ctx := dlog.WithLogger(context.Background(), dlog.WrapLogrus(logger))

	if err := argparser.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
