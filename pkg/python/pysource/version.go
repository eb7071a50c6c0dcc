// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pysource

import (
	"fmt"

	"github.com/datawire/pysetup/pkg/fsutil"
)

// VersionVariable is the conventional name of the module-level variable that holds a package's
// version.
const VersionVariable = "__version__"

// FindStringAssignment returns the string literal assigned to the module-level variable `name` in
// the Python source code `src`.  `filename` is only used for error messages.
//
// Assignments inside of functions, classes, and other compound statements are ignored.  If there
// are several module-level assignments, the last one wins, as it would at runtime.  It is an
// error if that last assignment is not a plain string literal.
//
// The bool is false (with a nil error) if there is no such assignment.
func FindStringAssignment(filename, src, name string) (string, bool, error) {
	lines, err := tokenize(filename, src)
	if err != nil {
		return "", false, err
	}

	var (
		found    bool
		foundVal string
		foundOK  bool
		foundAt  int
	)
	for _, line := range lines {
		for _, stmt := range simpleStatements(line) {
			assign, ok := parseAssignment(stmt)
			if !ok || !assign.assigns(name) {
				continue
			}
			found = true
			foundAt = stmt[0].line
			foundVal, foundOK = stringLiteral(assign.value)
		}
	}

	switch {
	case !found:
		return "", false, nil
	case !foundOK:
		return "", false, &NotLiteralError{
			Filename: filename,
			Line:     foundAt,
			Name:     name,
		}
	default:
		return foundVal, true, nil
	}
}

// FindVersion is FindStringAssignment for VersionVariable.
func FindVersion(filename, src string) (string, bool, error) {
	return FindStringAssignment(filename, src, VersionVariable)
}

// ParseVersionFile statically extracts the `__version__` of a Python module file, without
// importing it.
//
// All errors are *ConfigurationError; a missing file, a file without a `__version__`, and a file
// that does not parse are all fatal to configuring the package.
func ParseVersionFile(filename string) (string, error) {
	src, err := fsutil.ReadText("read version file", filename)
	if err != nil {
		return "", &ConfigurationError{Path: filename, Err: err}
	}
	version, ok, err := FindVersion(filename, src)
	if err != nil {
		return "", &ConfigurationError{Path: filename, Err: err}
	}
	if !ok {
		return "", &ConfigurationError{
			Path: filename,
			Err:  fmt.Errorf("%s: %s: %w", filename, VersionVariable, ErrNoAssignment),
		}
	}
	return version, nil
}
