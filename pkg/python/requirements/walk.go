// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package requirements

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/datawire/dlib/dlog"

	"github.com/datawire/pysetup/pkg/fsutil"
)

type frame struct {
	path  string
	dir   string
	lines []string
	next  int
}

func openFrame(path, includedFrom string, lineno int) (*frame, error) {
	lines, err := fsutil.ReadLines("read requirements", path)
	if err != nil {
		return nil, &ManifestReadError{
			Path:         path,
			IncludedFrom: includedFrom,
			Line:         lineno,
			Err:          err,
		}
	}
	return &frame{
		path:  path,
		dir:   filepath.Dir(path),
		lines: lines,
	}, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// Walk calls `fn` for each requirement in the file `filename`, in order.  A "-r" line is
// replaced by the requirements of the included file, depth-first.  Each file is read in full and
// closed before any of its lines are processed.
//
// If `fn` returns an error, the walk stops and that error is returned.
func Walk(ctx context.Context, filename string, fn func(Record) error) error {
	root, err := openFrame(filename, "", 0)
	if err != nil {
		return err
	}
	stack := []*frame{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.lines) {
			stack = stack[:len(stack)-1]
			continue
		}
		lineno := top.next + 1
		line := strings.TrimSpace(top.lines[top.next])
		top.next++
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		d := parseDirective(line)
		if d.include == nil {
			if err := fn(d.record); err != nil {
				return err
			}
			continue
		}

		if *d.include == "" {
			return &ManifestReadError{
				Path:         top.path,
				IncludedFrom: top.path,
				Line:         lineno,
				Err:          errors.New("-r: missing file name"),
			}
		}
		target := resolveInclude(top.dir, *d.include)
		for i, f := range stack {
			if sameFile(f.path, target) {
				chain := make([]string, 0, len(stack)-i+1)
				for _, g := range stack[i:] {
					chain = append(chain, g.path)
				}
				chain = append(chain, target)
				return &IncludeCycleError{Chain: chain}
			}
		}
		dlog.Debugf(ctx, "%s:%d: including %q", top.path, lineno, target)
		child, err := openFrame(target, top.path, lineno)
		if err != nil {
			return err
		}
		stack = append(stack, child)
	}
	return nil
}

// ParseFile returns all of the requirements in the file `filename`, following "-r" lines.  It is
// an error if the file (or any included file) does not exist.
func ParseFile(ctx context.Context, filename string) ([]Record, error) {
	var ret []Record
	err := Walk(ctx, filename, func(rec Record) error {
		ret = append(ret, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
