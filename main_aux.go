// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

//go:build aux
// +build aux

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/datawire/pysetup/pkg/cliutil"
)

// genDocs replaces OUT_DIRECTORY with freshly generated documentation for the whole command tree.
func genDocs(cmd *cobra.Command, dir string, gen func(root *cobra.Command, dir string) error) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	root := cmd.Root()
	root.DisableAutoGenTag = true
	return gen(root, dir)
}

func init() {
	// completion
	argparser.CompletionOptions.DisableDefaultCmd = false
	setLogLevel := argparser.PersistentPreRun
	argparser.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setLogLevel(cmd, args)
		completionCmd, _, _ := cmd.Root().Find([]string{"completion"})
		completionCmd.Hidden = true
	}

	// man
	argparser.AddCommand(&cobra.Command{
		Hidden: true,
		Use:    "man OUT_DIRECTORY",
		Short:  "Generate man pages",
		Args:   cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return genDocs(cmd, args[0], func(root *cobra.Command, dir string) error {
				return doc.GenManTree(root, &doc.GenManHeader{
					Source: "Ambassador Labs",
					Manual: root.Name(),
				}, dir)
			})
		},
	})

	// mddoc
	argparser.AddCommand(&cobra.Command{
		Hidden: true,
		Use:    "mddoc OUT_DIRECTORY",
		Short:  "Generate markdown documentation",
		Args:   cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return genDocs(cmd, args[0], doc.GenMarkdownTree)
		},
	})
}
