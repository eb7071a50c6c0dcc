// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package requirements

import (
	"fmt"
	"strings"
)

// ManifestReadError is returned when a requirements file cannot be read.  If the file was named
// by a "-r" line, IncludedFrom and Line identify that line.
type ManifestReadError struct {
	Path         string
	IncludedFrom string
	Line         int
	Err          error
}

func (e *ManifestReadError) Error() string {
	if e.IncludedFrom == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s:%d: %v", e.IncludedFrom, e.Line, e.Err)
}

func (e *ManifestReadError) Unwrap() error {
	return e.Err
}

// IncludeCycleError is returned when a chain of "-r" lines leads back to a file that is already
// being read.
type IncludeCycleError struct {
	// Chain is the list of files, starting and ending with the same file.
	Chain []string
}

func (e *IncludeCycleError) Error() string {
	return "requirements: -r inclusion cycle: " + strings.Join(e.Chain, " -> ")
}
