// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package setuptools

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func isPackageDir(dirname string) bool {
	info, err := os.Stat(filepath.Join(dirname, "__init__.py"))
	return err == nil && info.Mode().IsRegular()
}

// FindPackages returns the dotted names of the Python packages under `root`, sorted, the way
// setuptools.find_packages(root) does: a directory is a package if it contains an `__init__.py`
// and every directory between it and `root` is also a package.  Directories with a "." in their
// name, and "ez_setup", are never packages.
//
// A `root` that does not exist has no packages.
func FindPackages(root string) ([]string, error) {
	pkgs := []string{}
	err := filepath.Walk(root, func(filename string, info fs.FileInfo, e error) error {
		if e != nil {
			if filename == root && errors.Is(e, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return e
		}
		if !info.IsDir() || filename == root {
			return nil
		}
		base := info.Name()
		if strings.Contains(base, ".") || base == "ez_setup" || !isPackageDir(filename) {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(root, filename)
		if err != nil {
			return err
		}
		pkgs = append(pkgs, strings.ReplaceAll(filepath.ToSlash(rel), "/", "."))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(pkgs)
	return pkgs, nil
}
