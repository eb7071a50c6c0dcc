// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/datawire/pysetup/pkg/cliutil"
	"github.com/datawire/pysetup/pkg/python/requirements"
)

func init() {
	cmd := &cobra.Command{
		Use:   "records MANIFEST >RECORDS.yml",
		Short: "Dump the parsed lines of a requirements file",
		Long: "Parse a pip requirements file, following -r includes, and dump the " +
			"parsed form of each requirement as YAML.  This is mostly useful for " +
			"figuring out why a line renders the way it does.  Unlike the " +
			"requirements command, a missing MANIFEST is an error.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := requirements.ParseFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if recs == nil {
				recs = []requirements.Record{}
			}
			bs, err := yaml.Marshal(recs)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(bs); err != nil {
				return err
			}
			return nil
		},
	}

	argparser.AddCommand(cmd)
}
