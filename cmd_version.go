// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datawire/pysetup/pkg/cliutil"
	"github.com/datawire/pysetup/pkg/fsutil"
	"github.com/datawire/pysetup/pkg/python/pysource"
)

func init() {
	var flags struct {
		Variable string
	}
	cmd := &cobra.Command{
		Use:   "version [flags] PYFILE",
		Short: "Print the version declared in a Python source file",
		Long: "Read a Python source file without running it, and print the string that " +
			"it assigns to __version__ (or to the variable named by --variable).  If " +
			"the variable is assigned more than once at module level, the last " +
			"assignment wins.  It is an error if that assignment is not a plain string " +
			"literal.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				val string
				err error
			)
			if flags.Variable == pysource.VersionVariable {
				val, err = pysource.ParseVersionFile(args[0])
			} else {
				val, err = findVariable(args[0], flags.Variable)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), val)
			return err
		},
	}
	cmd.Flags().StringVar(&flags.Variable, "variable", pysource.VersionVariable,
		"Print the string assigned to `NAME` instead")

	argparser.AddCommand(cmd)
}

func findVariable(filename, name string) (string, error) {
	src, err := fsutil.ReadText("read python source", filename)
	if err != nil {
		return "", err
	}
	val, ok, err := pysource.FindStringAssignment(filename, src, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%s: %s: %w", filename, name, pysource.ErrNoAssignment)
	}
	return val, nil
}
