// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/datawire/pysetup/pkg/cliutil"
	"github.com/datawire/pysetup/pkg/fsutil"
	"github.com/datawire/pysetup/pkg/python/requirements"
)

func init() {
	var flags struct {
		Versions requirements.VersionPin
	}
	cmd := &cobra.Command{
		Use:   "requirements [flags] MANIFEST",
		Short: "Print the requirements listed in a requirements file",
		Long: "Parse a pip requirements file, following -r includes, and print one " +
			"requirement per line, in the form accepted by setuptools' " +
			"install_requires.  A missing MANIFEST is treated as empty; a missing " +
			"included file is an error." +
			"\n\n" +
			"The --versions flag controls version constraints:" +
			"\n\n" +
			"    none    drop them (the default)\n" +
			"    loose   keep them as written\n" +
			"    strict  keep them, but turn >= in to ==\n" +
			"\n" +
			"Platform markers (the part after \";\") are always kept.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := requirements.ParseRequirements(cmd.Context(), args[0], flags.Versions)
			if err != nil {
				return err
			}
			return fsutil.WriteLines(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().Var(&flags.Versions, "versions",
		"How to render version constraints")

	argparser.AddCommand(cmd)
}
