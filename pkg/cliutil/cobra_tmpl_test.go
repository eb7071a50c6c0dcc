// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil_test

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/datawire/pysetup/pkg/cliutil"
)

//nolint:paralleltest // can't use .Parallel() with .Setenv()
func TestHelpTemplate(t *testing.T) {
	t.Setenv("COLUMNS", "80")
	noopRunE := func(_ *cobra.Command, _ []string) error {
		return nil
	}
	type testcase struct {
		InputCmd     *cobra.Command
		ExpectedHelp string
	}
	testcases := map[string]testcase{
		"basic": {
			InputCmd: func() *cobra.Command {
				cmd := &cobra.Command{
					Use:   "requirements [flags] MANIFEST",
					Args:  cobra.ExactArgs(1),
					Short: "Print the requirements listed in a requirements file",
					Long: "Parse a pip requirements file, following -r includes, and print " +
						"one requirement per line.  Missing requirements files are treated " +
						"as empty.",
					RunE: noopRunE,
				}
				cmd.Flags().BoolP("strict", "s", false, "Pin exact versions")
				return cmd
			}(),
			ExpectedHelp: "" +
				// 0      1         2         3         4         5         6         7         8
				// 345678901234567890123456789012345678901234567890123456789012345678901234567890
				//                                                                          \n"  \n"
				"Usage: requirements [flags] MANIFEST\n" +
				"Print the requirements listed in a requirements file\n" +
				"\n" +
				"Parse a pip requirements file, following -r includes, and print one\n" +
				"requirement per line.  Missing requirements files are treated as empty.\n" +
				"\n" +
				"Flags:\n" +
				"  -s, --strict   Pin exact versions\n" +
				"",
		},
		"no-flags": {
			InputCmd: &cobra.Command{
				Use:   "requirements MANIFEST",
				Args:  cobra.ExactArgs(1),
				Short: "Print the requirements listed in a requirements file",
				Long: "Parse a pip requirements file, following -r includes, and print " +
					"one requirement per line.  Missing requirements files are treated " +
					"as empty.",
				RunE: noopRunE,
			},
			ExpectedHelp: "" +
				"Usage: requirements MANIFEST\n" +
				"Print the requirements listed in a requirements file\n" +
				"\n" +
				"Parse a pip requirements file, following -r includes, and print one\n" +
				"requirement per line.  Missing requirements files are treated as empty.\n" +
				"",
		},
		"global-flags": {
			InputCmd: func() *cobra.Command {
				root := &cobra.Command{
					Use:  "pysetup [command]",
					RunE: noopRunE,
				}
				root.PersistentFlags().BoolP("verbose", "v", false, "Log debugging information to stderr")
				cmd := &cobra.Command{
					Use:   "version [flags] PYFILE",
					Args:  cobra.ExactArgs(1),
					Short: "Print the version declared in a Python source file",
					RunE:  noopRunE,
				}
				root.AddCommand(cmd)
				return cmd
			}(),
			ExpectedHelp: "" +
				"Usage: pysetup version [flags] PYFILE\n" +
				"Print the version declared in a Python source file\n" +
				"\n" +
				"Global Flags:\n" +
				"  -v, --verbose   Log debugging information to stderr\n" +
				"",
		},
		"subcommandWrap": {
			InputCmd: func() *cobra.Command {
				cmd := &cobra.Command{
					Use:   "pysetup [command]",
					Short: "Inspect Python project build configuration",
					RunE:  noopRunE,
				}
				cmd.AddCommand(&cobra.Command{
					Use:   "version PYFILE",
					Args:  cobra.ExactArgs(1),
					Short: "Print the version declared in a Python source file",
					RunE:  noopRunE,
				})
				cmd.AddCommand(&cobra.Command{
					Use:   "requirements MANIFEST",
					Args:  cobra.ExactArgs(1),
					Short: "Print the requirements listed in a requirements file",
					RunE:  noopRunE,
				})
				cmd.AddCommand(&cobra.Command{
					Use:   "metadata",
					Args:  cobra.NoArgs,
					Short: "Assemble the package metadata from the project configuration and the version file", //nolint:lll
					RunE:  noopRunE,
				})
				return cmd
			}(),
			ExpectedHelp: "" +
				// 0      1         2         3         4         5         6         7         8
				// 345678901234567890123456789012345678901234567890123456789012345678901234567890
				//                                                                          \n"  \n"
				"Usage: pysetup [command]\n" +
				"Inspect Python project build configuration\n" +
				"\n" +
				"Available Commands:\n" +
				"  metadata       Assemble the package metadata from the project\n" +
				"                 configuration and the version file\n" +
				"  requirements   Print the requirements listed in a requirements file\n" +
				"  version        Print the version declared in a Python source file\n" +
				"\n" +
				"Use \"pysetup [command] --help\" for more information about a command.\n" +
				"",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			tcData.InputCmd.SetHelpTemplate(cliutil.HelpTemplate)

			var out strings.Builder
			tcData.InputCmd.SetOut(&out)
			tcData.InputCmd.HelpFunc()(tcData.InputCmd, []string{"--help"})

			assert.Equal(t, tcData.ExpectedHelp, out.String())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Indent int
		Width  int
		Input  string
		Output string
	}
	testcases := map[string]testcase{
		"no-width": {
			Width:  0,
			Input:  "alpha beta gamma delta epsilon",
			Output: "alpha beta gamma delta epsilon",
		},
		"fits": {
			Width:  80,
			Input:  "alpha beta",
			Output: "alpha beta",
		},
		"wrapped": {
			Width:  26,
			Input:  "alpha beta gamma delta epsilon",
			Output: "alpha beta gamma\ndelta epsilon",
		},
		"indented": {
			Indent: 4,
			Width:  30,
			Input:  "alpha beta gamma delta epsilon",
			Output: "alpha beta gamma\n    delta epsilon",
		},
		"double-space-kept": {
			Width:  80,
			Input:  "First sentence.  Second sentence.",
			Output: "First sentence.  Second sentence.",
		},
		"preformatted": {
			Width:  20,
			Input:  "Example:\n\n  pysetup requirements requirements.txt",
			Output: "Example:\n\n  pysetup requirements requirements.txt",
		},
	}
	for tcName, tcData := range testcases {
		tcData := tcData
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tcData.Output, cliutil.WrapIndent(tcData.Indent, tcData.Width, tcData.Input))
		})
	}
}
