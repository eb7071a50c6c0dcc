// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package requirements

import (
	"context"
	"path/filepath"
	"strings"
)

const (
	includePrefix  = "-r "
	editablePrefix = "-e "
	eggMarker      = "#egg="
	commentMarker  = " #"
)

// directive is a single line, parsed without following any inclusion.
type directive struct {
	// include is the raw "-r" argument; nil if the line is not an inclusion.
	include *string
	record  Record
}

// stripComment removes an inline comment.  The "#" must be preceded by a space, so that URL
// fragments such as "#egg=" survive.
func stripComment(line string) string {
	if idx := strings.Index(line, commentMarker); idx >= 0 {
		return line[:idx]
	}
	return line
}

func parseDirective(line string) directive {
	line = stripComment(line)

	if strings.HasPrefix(line, includePrefix) {
		var target string
		if fields := strings.Fields(line); len(fields) > 1 {
			target = fields[1]
		}
		return directive{include: &target}
	}

	rec := Record{Line: line}
	if strings.HasPrefix(line, editablePrefix) {
		rec.Editable = true
		rest := strings.TrimPrefix(line, editablePrefix)
		if idx := strings.Index(rest, eggMarker); idx >= 0 {
			egg := rest[idx+len(eggMarker):]
			if end := strings.Index(egg, eggMarker); end >= 0 {
				egg = egg[:end]
			}
			rec.Package = strings.TrimSpace(egg)
		} else {
			rec.Package = strings.TrimSpace(rest)
		}
		return directive{record: rec}
	}

	pkgPart := line
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		pkgPart = line[:idx]
		platDeps := strings.TrimSpace(line[idx+1:])
		rec.PlatformDeps = &platDeps
	}

	if idx, op, ok := findOperator(pkgPart); ok {
		rec.Package = strings.TrimSpace(pkgPart[:idx])
		rec.Version = &Constraint{
			Op:      op,
			Version: strings.TrimSpace(pkgPart[idx+len(op):]),
		}
	} else {
		rec.Package = strings.TrimSpace(pkgPart)
	}

	return directive{record: rec}
}

// findOperator returns the position of the leftmost operator in `spec`.
func findOperator(spec string) (int, Operator, bool) {
	for i := 0; i < len(spec); i++ {
		for _, op := range operators {
			if strings.HasPrefix(spec[i:], string(op)) {
				return i, op, true
			}
		}
	}
	return -1, "", false
}

// resolveInclude resolves the argument of a "-r" line against the directory of the file that
// contains it.
func resolveInclude(dir, target string) string {
	if target == "" || filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(dir, target)
}

// ParseLine parses a single line of a requirements file.  The line must already be trimmed, and
// must not be blank or a comment.  `dir` is the directory containing the file that the line came
// from.
//
// A "-r" line returns all of the records of the included file, which must exist.  Any other line
// returns exactly one record; malformed lines are never an error, the unrecognized text simply
// becomes the package name.
func ParseLine(ctx context.Context, line, dir string) ([]Record, error) {
	d := parseDirective(line)
	if d.include == nil {
		return []Record{d.record}, nil
	}
	return ParseFile(ctx, resolveInclude(dir, *d.include))
}
