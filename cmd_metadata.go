// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/datawire/pysetup/pkg/cliutil"
	"github.com/datawire/pysetup/pkg/fsutil"
	"github.com/datawire/pysetup/pkg/python/requirements"
	"github.com/datawire/pysetup/pkg/python/setuptools"
)

func init() {
	var flags struct {
		Config   string
		Name     string
		Format   string
		Versions requirements.VersionPin
	}
	cmd := &cobra.Command{
		Use:   "metadata [flags] >METADATA.yml",
		Short: "Assemble the package metadata from the project configuration and the version file",
		Long: "Assemble the keyword arguments that setup.py would pass to " +
			"setuptools.setup(): the version from the version file, install_requires " +
			"and extras_require from the requirements files, long_description from " +
			"the README, and packages from the Python packages found under the " +
			"package directory." +
			"\n\n" +
			"The project is described by --config, which defaults to " +
			setuptools.DefaultConfigFile + " if that file exists.  Relative paths in the " +
			"config file are relative to the directory containing it.  A config file " +
			"named *.cfg is read as a setuptools setup.cfg (see below); anything else " +
			"is read as YAML:" +
			"\n\n" +
			"    name: mypkg\n" +
			"    versionFile: mypkg/__init__.py\n" +
			"    readme: README.md\n" +
			"    versions: loose\n" +
			"    installRequires: requirements/runtime.txt\n" +
			"    extrasRequire:\n" +
			"      tests: requirements/tests.txt\n" +
			"\n" +
			"A setup.cfg takes the package information from its [metadata] and " +
			"[options] sections, and the rest from a [pysetup] section:" +
			"\n\n" +
			"    [metadata]\n" +
			"    name = mypkg\n" +
			"    long_description = file: README.md\n" +
			"\n" +
			"    [pysetup]\n" +
			"    version_file = mypkg/__init__.py\n" +
			"    install_requires = requirements/runtime.txt\n" +
			"    extras_require =\n" +
			"        tests = requirements/tests.txt\n" +
			"\n" +
			"If there is no config file, the conventional layout is assumed: " +
			"NAME/__init__.py, README.md, requirements/runtime.txt, and an " +
			"extras_require group for each of requirements.txt (as \"all\") and " +
			"requirements/{tests,build,optional,headless,graphics}.txt.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var marshal func(interface{}) ([]byte, error)
			switch flags.Format {
			case "yaml":
				marshal = yaml.Marshal
			case "json":
				marshal = func(v interface{}) ([]byte, error) {
					bs, err := json.MarshalIndent(v, "", "  ")
					if err != nil {
						return nil, err
					}
					return append(bs, '\n'), nil
				}
			default:
				return cliutil.FlagErrorFunc(cmd,
					fmt.Errorf("invalid --format %q (must be one of yaml, json)", flags.Format))
			}

			cfgFile := flags.Config
			if cfgFile == "" && fsutil.Exists(setuptools.DefaultConfigFile) {
				cfgFile = setuptools.DefaultConfigFile
			}
			var cfg setuptools.Config
			dir := "."
			if cfgFile != "" {
				var err error
				cfg, err = setuptools.ReadConfig(cfgFile)
				if err != nil {
					return err
				}
				dir = filepath.Dir(cfgFile)
			} else {
				name := flags.Name
				if name == "" {
					abs, err := filepath.Abs(dir)
					if err != nil {
						return err
					}
					name = filepath.Base(abs)
				}
				cfg = setuptools.DefaultConfig(name)
			}
			if cmd.Flags().Changed("versions") {
				cfg.Versions = flags.Versions
			}

			md, err := setuptools.Assemble(cmd.Context(), cfg, dir)
			if err != nil {
				return err
			}
			bs, err := marshal(md)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(bs); err != nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Config, "config", "",
		"Read the project description from `FILE` (.yml or .cfg)")
	cmd.Flags().StringVar(&flags.Name, "name", "",
		"The package name to assume if there is no config file (default: the name of the current directory)") //nolint:lll
	cmd.Flags().StringVar(&flags.Format, "format", "yaml",
		"Output format (yaml or json)")
	cmd.Flags().Var(&flags.Versions, "versions",
		"How to render version constraints, overriding the config file")

	argparser.AddCommand(cmd)
}
