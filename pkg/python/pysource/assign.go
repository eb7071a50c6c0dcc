// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pysource

import (
	"strings"
)

// Statements beginning with these are compound statements; any simple statements on the same
// line are part of the compound statement's body, not module-level.
var compoundKeywords = map[string]bool{
	"if":      true,
	"elif":    true,
	"else":    true,
	"for":     true,
	"while":   true,
	"try":     true,
	"except":  true,
	"finally": true,
	"with":    true,
	"def":     true,
	"class":   true,
	"async":   true,
}

// assignment is a simple statement of the form `target = [target = ...] value`.
type assignment struct {
	targets [][]token
	value   []token
}

// simpleStatements returns the `;`-separated statements of a module-level logical line.
func simpleStatements(line logicalLine) [][]token {
	if line.indented() {
		return nil
	}
	first := line.tokens[0]
	if (first.kind == tokName && compoundKeywords[first.text]) || (first.kind == tokOp && first.text == "@") {
		return nil
	}
	var ret [][]token
	start := 0
	for i, tok := range line.tokens {
		if tok.kind == tokOp && tok.text == ";" {
			if i > start {
				ret = append(ret, line.tokens[start:i])
			}
			start = i + 1
		}
	}
	if start < len(line.tokens) {
		ret = append(ret, line.tokens[start:])
	}
	return ret
}

// parseAssignment splits a statement on the "=" tokens that are not inside brackets.  It returns
// false if the statement is not an assignment.
func parseAssignment(stmt []token) (assignment, bool) {
	var parts [][]token
	depth := 0
	start := 0
	for i, tok := range stmt {
		if tok.kind != tokOp {
			continue
		}
		switch tok.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case "=":
			if depth == 0 {
				parts = append(parts, stmt[start:i])
				start = i + 1
			}
		}
	}
	if len(parts) == 0 {
		return assignment{}, false
	}
	return assignment{
		targets: parts,
		value:   stmt[start:],
	}, true
}

func (a assignment) assigns(name string) bool {
	for _, target := range a.targets {
		if len(target) == 1 && target[0].kind == tokName && target[0].text == name {
			return true
		}
	}
	return false
}

// stringLiteral returns the value of an expression that consists solely of (possibly
// parenthesized) adjacent string literals.  f-strings and bytes are not string literals.
func stringLiteral(expr []token) (string, bool) {
	for len(expr) >= 2 &&
		expr[0].kind == tokOp && expr[0].text == "(" &&
		expr[len(expr)-1].kind == tokOp && expr[len(expr)-1].text == ")" {
		expr = expr[1 : len(expr)-1]
	}
	if len(expr) == 0 {
		return "", false
	}
	var ret strings.Builder
	for _, tok := range expr {
		if tok.kind != tokString || strings.ContainsAny(tok.prefix, "fb") {
			return "", false
		}
		ret.WriteString(tok.value)
	}
	return ret.String(), true
}
