// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package setuptools assembles the keyword arguments that a setup.py script would pass to
// setuptools.setup(), from a small declarative config file plus the project's requirements
// files and version file.
package setuptools

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/datawire/pysetup/pkg/python/requirements"
)

// DefaultConfigFile is the name of the config file that is used if none is specified.
const DefaultConfigFile = "pysetup.yml"

// Config describes a Python project.  All relative paths are relative to the directory
// containing the config file.
type Config struct {
	Name           string `json:"name"`
	URL            string `json:"url,omitempty"`
	Description    string `json:"description,omitempty"`
	Author         string `json:"author,omitempty"`
	AuthorEmail    string `json:"authorEmail,omitempty"`
	PythonRequires string `json:"pythonRequires,omitempty"`
	// PackageDir is the directory that contains the top-level packages ("" for the project
	// root, "src" for a src-layout).
	PackageDir string `json:"packageDir,omitempty"`
	// IncludePackageData is whether to install the data files listed in MANIFEST.in along
	// with the packages.
	IncludePackageData bool `json:"includePackageData,omitempty"`

	// VersionFile is a Python file that assigns `__version__`.
	VersionFile string `json:"versionFile"`

	Readme            string `json:"readme,omitempty"`
	ReadmeContentType string `json:"readmeContentType,omitempty"`

	// Versions is how version constraints from the requirements files are rendered.
	Versions requirements.VersionPin `json:"versions,omitempty"`
	// InstallRequires is the requirements file for install_requires.
	InstallRequires string `json:"installRequires,omitempty"`
	// ExtrasRequire maps extras names to requirements files.
	ExtrasRequire map[string]string `json:"extrasRequire,omitempty"`
}

// DefaultConfig returns the config for a project that follows the conventional layout:
//
//	NAME/__init__.py
//	README.md
//	requirements.txt
//	requirements/{runtime,tests,build,optional,headless,graphics}.txt
func DefaultConfig(name string) Config {
	cfg := Config{
		Name:               name,
		VersionFile:        filepath.Join(name, "__init__.py"),
		Readme:             "README.md",
		InstallRequires:    filepath.Join("requirements", "runtime.txt"),
		IncludePackageData: true,
		ExtrasRequire: map[string]string{
			"all": "requirements.txt",
		},
	}
	for _, group := range []string{"tests", "build", "optional", "headless", "graphics"} {
		cfg.ExtrasRequire[group] = filepath.Join("requirements", group+".txt")
	}
	return cfg
}

// Validate checks that the required fields are set.
func (cfg Config) Validate() error {
	if cfg.Name == "" {
		return errors.New("name: must be set")
	}
	if cfg.VersionFile == "" {
		return errors.New("versionFile: must be set")
	}
	for group, filename := range cfg.ExtrasRequire {
		if group == "" {
			return errors.New("extrasRequire: group names must not be empty")
		}
		if filename == "" {
			return fmt.Errorf("extrasRequire[%q]: must not be empty", group)
		}
	}
	return nil
}

// LoadConfig reads and validates a YAML config file.  Unknown fields are an error.
func LoadConfig(filename string) (Config, error) {
	var cfg Config
	bs, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(bs, &cfg, yaml.DisallowUnknownFields); err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// ReadConfig loads `filename` with LoadSetupCfg if it is named "*.cfg", and with LoadConfig
// otherwise.
func ReadConfig(filename string) (Config, error) {
	if filepath.Ext(filename) == ".cfg" {
		return LoadSetupCfg(filename)
	}
	return LoadConfig(filename)
}
