// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package requirements implements just enough of pip's requirements-file format to generate the
// install_requires and extras_require lists for a Python package's setup metadata.
//
// Supported lines are:
//
//	# comment
//	-r other-requirements.txt
//	-e git+https://example.com/repo@tag#egg=Name
//	name
//	name>=1.0
//	name==1.0;platform_system=="Windows"
//
// Text after " #" is a comment.  Other pip options are not understood, and are treated as
// package names.
//
// https://pip.pypa.io/en/stable/reference/requirements-file-format/
package requirements

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Operator is a version comparison operator.  Only the operators that are meaningful to
// strict-pinning are recognized; anything else (`<`, `~=`, `!=`, ...) ends up as part of the
// package name.
type Operator string

const (
	OpGE Operator = ">="
	OpEQ Operator = "=="
	OpGT Operator = ">"
)

// operators is in order of preference when several match at the same position.
var operators = []Operator{OpGE, OpEQ, OpGT}

// Constraint is the version part of a requirement line.
type Constraint struct {
	Op      Operator `json:"op" yaml:"op"`
	Version string   `json:"version" yaml:"version"`
}

func (c Constraint) String() string {
	return string(c.Op) + c.Version
}

// Pinned returns the constraint with a minimum-version (`>=`) rewritten to an exact version
// (`==`).  Other operators are returned unchanged.
func (c Constraint) Pinned() Constraint {
	if c.Op == OpGE {
		c.Op = OpEQ
	}
	return c
}

// Record is a single parsed requirement.
type Record struct {
	// Line is the text of the line, with any inline comment removed.
	Line string `json:"line" yaml:"line"`
	// Package is the distribution name (for editable lines: the "#egg=" name).
	Package string `json:"package" yaml:"package"`
	// Editable is whether this was a "-e" line.
	Editable bool `json:"editable,omitempty" yaml:"editable,omitempty"`
	// Version is nil if the line had no recognized operator.
	Version *Constraint `json:"version,omitempty" yaml:"version,omitempty"`
	// PlatformDeps is the environment marker following the ";", or nil if there was no ";".
	PlatformDeps *string `json:"platform_deps,omitempty" yaml:"platform_deps,omitempty"`
}

// VersionPin selects how version constraints are rendered.
type VersionPin int

const (
	// PinNone drops version constraints entirely.
	PinNone VersionPin = iota
	// PinLoose keeps version constraints as written.
	PinLoose
	// PinStrict pins minimum versions to exact versions.
	PinStrict
)

var pinNames = map[VersionPin]string{
	PinNone:   "none",
	PinLoose:  "loose",
	PinStrict: "strict",
}

func (p VersionPin) String() string {
	str, ok := pinNames[p]
	if !ok {
		panic(fmt.Errorf("invalid VersionPin: %d", p))
	}
	return str
}

// ParseVersionPin parses the name of a VersionPin.  For compatibility with setup.py scripts that
// used a boolean `versions=` argument, "true" is accepted as "loose" and "false" as "none".
func ParseVersionPin(str string) (VersionPin, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "none", "false", "":
		return PinNone, nil
	case "loose", "true":
		return PinLoose, nil
	case "strict":
		return PinStrict, nil
	default:
		return PinNone, fmt.Errorf("requirements.ParseVersionPin: invalid version pin %q (must be one of none, loose, strict)", str) //nolint:lll
	}
}

var _ pflag.Value = (*VersionPin)(nil)

// Set implements pflag.Value.
func (p *VersionPin) Set(str string) error {
	val, err := ParseVersionPin(str)
	if err != nil {
		return err
	}
	*p = val
	return nil
}

// Type implements pflag.Value.
func (p *VersionPin) Type() string {
	return "none|loose|strict"
}

func (p VersionPin) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *VersionPin) UnmarshalJSON(data []byte) error {
	var boolVal bool
	if err := json.Unmarshal(data, &boolVal); err == nil {
		if boolVal {
			*p = PinLoose
		} else {
			*p = PinNone
		}
		return nil
	}
	var strVal string
	if err := json.Unmarshal(data, &strVal); err != nil {
		return fmt.Errorf("version pin must be a string or a boolean: %w", err)
	}
	return p.Set(strVal)
}

// MarshalYAML implements gopkg.in/yaml.v2.Marshaler.
func (p VersionPin) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}
