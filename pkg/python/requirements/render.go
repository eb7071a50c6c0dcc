// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package requirements

import (
	"context"
	"strings"

	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pysetup/pkg/fsutil"
)

// Render turns a Record back in to a single requirement string, such as is accepted by
// setuptools' install_requires.  The version constraint is included according to `pin`; the
// platform marker is always included.
func Render(rec Record, pin VersionPin) string {
	var ret strings.Builder
	ret.WriteString(rec.Package)
	if rec.Version != nil {
		switch pin {
		case PinLoose:
			ret.WriteString(rec.Version.String())
		case PinStrict:
			ret.WriteString(rec.Version.Pinned().String())
		}
	}
	if rec.PlatformDeps != nil {
		ret.WriteString(";")
		ret.WriteString(*rec.PlatformDeps)
	}
	return ret.String()
}

// ParseRequirements returns the rendered requirements listed in `filename`.
//
// Requirements files are optional: if `filename` does not exist, the result is an empty list, not
// an error.  Files named by "-r" lines, however, must exist.
func ParseRequirements(ctx context.Context, filename string, pin VersionPin) ([]string, error) {
	items := []string{}
	if !fsutil.Exists(filename) {
		dlog.Debugf(ctx, "requirements file %q does not exist; no requirements", filename)
		return items, nil
	}
	err := Walk(ctx, filename, func(rec Record) error {
		items = append(items, Render(rec, pin))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
