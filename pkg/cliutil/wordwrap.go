// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package cliutil

import (
	"strings"
)

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// Wrap the string `s` to a maximum width `w` with leading indent `i`.  The first line is not
// indented (this is assumed to be done by caller).  Pass `w` == 0 to do no wrapping
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

// wrap word-wraps each line of `s` separately.  Lines that begin with whitespace are
// preformatted (example config files, command lines) and are passed through untouched.  Runs of
// spaces between words are preserved, except at a line break.
func wrap(indent, width int, s string) string {
	if width <= 0 {
		return s
	}
	limit := width - 5 - indent
	if limit < 10 {
		limit = 10
	}
	prefix := strings.Repeat(" ", indent)

	var ret strings.Builder
	for n, line := range strings.Split(s, "\n") {
		if n > 0 {
			ret.WriteString("\n")
			if line != "" {
				ret.WriteString(prefix)
			}
		}
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			ret.WriteString(line)
			continue
		}
		col := 0
		for len(line) > 0 {
			spaceLen := len(line) - len(strings.TrimLeft(line, " "))
			rest := line[spaceLen:]
			wordLen := strings.IndexByte(rest, ' ')
			if wordLen < 0 {
				wordLen = len(rest)
			}
			word := rest[:wordLen]
			line = rest[wordLen:]
			if word == "" {
				break
			}
			switch {
			case col == 0:
				ret.WriteString(word)
				col = len(word)
			case col+spaceLen+len(word) < limit:
				ret.WriteString(strings.Repeat(" ", spaceLen) + word)
				col += spaceLen + len(word)
			default:
				ret.WriteString("\n" + prefix + word)
				col = len(word)
			}
		}
	}
	return ret.String()
}
