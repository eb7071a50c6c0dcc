// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package setuptools

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/datawire/dlib/derror"
	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pysetup/pkg/fsutil"
	"github.com/datawire/pysetup/pkg/python/pysource"
	"github.com/datawire/pysetup/pkg/python/requirements"
)

// Metadata is the set of keyword arguments for setuptools.setup().
type Metadata struct {
	Name                       string              `json:"name" yaml:"name"`
	Version                    string              `json:"version" yaml:"version"`
	URL                        string              `json:"url,omitempty" yaml:"url,omitempty"`
	Description                string              `json:"description,omitempty" yaml:"description,omitempty"`
	Author                     string              `json:"author,omitempty" yaml:"author,omitempty"`
	AuthorEmail                string              `json:"author_email,omitempty" yaml:"author_email,omitempty"`
	PythonRequires             string              `json:"python_requires,omitempty" yaml:"python_requires,omitempty"`
	PackageDir                 map[string]string   `json:"package_dir,omitempty" yaml:"package_dir,omitempty"`
	Packages                   []string            `json:"packages" yaml:"packages"`
	IncludePackageData         bool                `json:"include_package_data,omitempty" yaml:"include_package_data,omitempty"` //nolint:lll
	InstallRequires            []string            `json:"install_requires" yaml:"install_requires"`
	ExtrasRequire              map[string][]string `json:"extras_require" yaml:"extras_require"`
	LongDescription            string              `json:"long_description" yaml:"long_description"`
	LongDescriptionContentType string              `json:"long_description_content_type,omitempty" yaml:"long_description_content_type,omitempty"` //nolint:lll
}

func resolve(dir, filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(dir, filename)
}

// ContentType guesses the README content type from the file extension.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return "text/markdown"
	case ".rst":
		return "text/x-rst"
	default:
		return "text/plain"
	}
}

// Assemble builds the Metadata for `cfg`, resolving relative paths against `dir`.
//
// A version file that can't be read or has no version is fatal.  Requirements files that don't
// exist are simply empty; other problems with them are collected so that all of the broken
// groups are reported at once.  A missing README is not an error.
func Assemble(ctx context.Context, cfg Config, dir string) (*Metadata, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	version, err := pysource.ParseVersionFile(resolve(dir, cfg.VersionFile))
	if err != nil {
		return nil, err
	}
	dlog.Infof(ctx, "%s: version %s", cfg.Name, version)

	md := &Metadata{
		Name:            cfg.Name,
		Version:         version,
		URL:             cfg.URL,
		Description:     cfg.Description,
		Author:          cfg.Author,
		AuthorEmail:     cfg.AuthorEmail,
		PythonRequires:  cfg.PythonRequires,
		InstallRequires: []string{},
		ExtrasRequire:   make(map[string][]string, len(cfg.ExtrasRequire)),
	}
	if cfg.PackageDir != "" {
		md.PackageDir = map[string]string{"": cfg.PackageDir}
	}
	md.Packages, err = FindPackages(resolve(dir, cfg.PackageDir))
	if err != nil {
		return nil, err
	}
	dlog.Debugf(ctx, "packages: %v", md.Packages)
	md.IncludePackageData = cfg.IncludePackageData

	var errs derror.MultiError
	if cfg.InstallRequires != "" {
		items, err := requirements.ParseRequirements(ctx, resolve(dir, cfg.InstallRequires), cfg.Versions)
		if err != nil {
			errs = append(errs, fmt.Errorf("install_requires: %w", err))
		} else {
			md.InstallRequires = items
		}
	}
	groups := make([]string, 0, len(cfg.ExtrasRequire))
	for group := range cfg.ExtrasRequire {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	for _, group := range groups {
		items, err := requirements.ParseRequirements(ctx, resolve(dir, cfg.ExtrasRequire[group]), cfg.Versions)
		if err != nil {
			errs = append(errs, fmt.Errorf("extras_require[%q]: %w", group, err))
			continue
		}
		dlog.Debugf(ctx, "extras_require[%q]: %d requirements", group, len(items))
		md.ExtrasRequire[group] = items
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if cfg.Readme != "" {
		readme := resolve(dir, cfg.Readme)
		md.LongDescriptionContentType = cfg.ReadmeContentType
		if md.LongDescriptionContentType == "" {
			md.LongDescriptionContentType = ContentType(readme)
		}
		if fsutil.Exists(readme) {
			md.LongDescription, err = fsutil.ReadText("read readme", readme)
			if err != nil {
				return nil, err
			}
		} else {
			dlog.Debugf(ctx, "readme %q does not exist; long_description is empty", readme)
		}
	}

	return md, nil
}
