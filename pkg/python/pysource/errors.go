// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pysource

import (
	"errors"
	"fmt"
)

// ErrNoAssignment is wrapped by the error returned when a file does not assign the requested
// variable at module level.
var ErrNoAssignment = errors.New("no module-level assignment found")

// SyntaxError is returned when the source cannot be tokenized.
type SyntaxError struct {
	Filename string
	Line     int
	Col      int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s", e.Filename, e.Line, e.Col, e.Msg)
}

// NotLiteralError is returned when the variable is assigned something other than a plain string
// literal (a function call, an f-string, a bytes literal...).
type NotLiteralError struct {
	Filename string
	Line     int
	Name     string
}

func (e *NotLiteralError) Error() string {
	return fmt.Sprintf("%s:%d: %s is not assigned a string literal", e.Filename, e.Line, e.Name)
}

// ConfigurationError is returned by ParseVersionFile; the project cannot be configured without
// a version.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return "pysource.ParseVersionFile: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
