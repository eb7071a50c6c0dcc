// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pysource statically inspects Python source code, without running a Python interpreter.
//
// It understands enough of Python's lexical structure (PEP 263 aside) to split a module in to
// logical lines and simple statements, so that module-level assignments can be found reliably
// even when the file contains docstrings, comments, or bracketed expressions that look like
// assignments.
//
// https://docs.python.org/3/reference/lexical_analysis.html
package pysource

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokName tokenKind = iota
	tokNumber
	tokString
	tokOp
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int

	// for tokString only
	prefix string // lower-cased
	value  string // decoded, unless the prefix includes "r"
}

// logicalLine is a sequence of tokens that Python's tokenizer would terminate with a single
// NEWLINE token.
type logicalLine struct {
	tokens []token
}

func (l logicalLine) indented() bool {
	return len(l.tokens) > 0 && l.tokens[0].col > 0
}

var stringPrefixes = map[string]bool{
	"":   true,
	"r":  true,
	"u":  true,
	"b":  true,
	"f":  true,
	"br": true,
	"rb": true,
	"fr": true,
	"rf": true,
}

// Longest first.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"**", "//", ">>", "<<", "<=", ">=", "==", "!=", "->", ":=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	"+", "-", "*", "/", "%", "@", "&", "|", "^", "~", "<", ">",
	"(", ")", "[", "]", "{", "}", ",", ":", ".", ";", "=",
}

var closers = map[string]string{
	")": "(",
	"]": "[",
	"}": "{",
}

type scanner struct {
	filename  string
	src       string
	pos       int
	line      int
	lineStart int

	brackets []token
	cur      []token
	lines    []logicalLine
}

func (s *scanner) errorf(line, col int, format string, args ...interface{}) error {
	return &SyntaxError{
		Filename: s.filename,
		Line:     line,
		Col:      col + 1,
		Msg:      fmt.Sprintf(format, args...),
	}
}

func (s *scanner) col() int {
	return s.pos - s.lineStart
}

// advance moves forward n bytes, keeping track of line numbers.
func (s *scanner) advance(n int) {
	end := s.pos + n
	for ; s.pos < end; s.pos++ {
		if s.src[s.pos] == '\n' {
			s.line++
			s.lineStart = s.pos + 1
		}
	}
}

func (s *scanner) emit(tok token) {
	s.cur = append(s.cur, tok)
}

func (s *scanner) flush() {
	if len(s.cur) > 0 {
		s.lines = append(s.lines, logicalLine{tokens: s.cur})
		s.cur = nil
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

// newlines translates "\r\n" and lone "\r" line endings to "\n", as Python does when reading
// source files.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// tokenize splits Python source code in to logical lines.
func tokenize(filename, src string) ([]logicalLine, error) {
	s := &scanner{
		filename: filename,
		src:      newlines.Replace(strings.TrimPrefix(src, "\ufeff")),
		line:     1,
	}
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			if len(s.brackets) == 0 {
				s.flush()
			}
			s.advance(1)
		case c == ' ' || c == '\t' || c == '\f':
			s.advance(1)
		case c == '#':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.advance(1)
			}
		case c == '\\':
			rest := s.src[s.pos+1:]
			switch {
			case strings.HasPrefix(rest, "\n"):
				s.advance(2)
			case rest == "":
				return nil, s.errorf(s.line, s.col(), "unexpected EOF after line continuation character")
			default:
				return nil, s.errorf(s.line, s.col(), "unexpected character after line continuation character")
			}
		case c == '"' || c == '\'':
			if err := s.scanString(""); err != nil {
				return nil, err
			}
		case c >= '0' && c <= '9',
			c == '.' && s.pos+1 < len(s.src) && s.src[s.pos+1] >= '0' && s.src[s.pos+1] <= '9':
			s.scanNumber()
		default:
			r, size := utf8.DecodeRuneInString(s.src[s.pos:])
			if isIdentStart(r) {
				if err := s.scanName(); err != nil {
					return nil, err
				}
				continue
			}
			if size == 1 {
				if err := s.scanOp(); err != nil {
					return nil, err
				}
				continue
			}
			return nil, s.errorf(s.line, s.col(), "invalid character %q (U+%04X)", r, r)
		}
	}
	if len(s.brackets) > 0 {
		open := s.brackets[len(s.brackets)-1]
		return nil, s.errorf(open.line, open.col, "'%s' was never closed", open.text)
	}
	s.flush()
	return s.lines, nil
}

func (s *scanner) scanName() error {
	start, line, col := s.pos, s.line, s.col()
	end := s.pos
	for end < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[end:])
		if !isIdentContinue(r) {
			break
		}
		end += size
	}
	word := s.src[start:end]
	if end < len(s.src) && (s.src[end] == '"' || s.src[end] == '\'') && stringPrefixes[strings.ToLower(word)] {
		s.advance(end - start)
		return s.scanStringAt(strings.ToLower(word), start, line, col)
	}
	s.advance(end - start)
	s.emit(token{kind: tokName, text: word, line: line, col: col})
	return nil
}

func (s *scanner) scanNumber() {
	start, line, col := s.pos, s.line, s.col()
	end := s.pos
	for end < len(s.src) {
		c := s.src[end]
		isExpSign := (c == '+' || c == '-') && end > start &&
			(s.src[end-1] == 'e' || s.src[end-1] == 'E') &&
			!strings.HasPrefix(strings.ToLower(s.src[start:end]), "0x")
		if !(c == '_' || c == '.' || isExpSign ||
			(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			break
		}
		end++
	}
	s.advance(end - start)
	s.emit(token{kind: tokNumber, text: s.src[start:end], line: line, col: col})
}

func (s *scanner) scanOp() error {
	line, col := s.line, s.col()
	for _, op := range operators {
		if !strings.HasPrefix(s.src[s.pos:], op) {
			continue
		}
		tok := token{kind: tokOp, text: op, line: line, col: col}
		switch op {
		case "(", "[", "{":
			s.brackets = append(s.brackets, tok)
		case ")", "]", "}":
			if len(s.brackets) == 0 {
				return s.errorf(line, col, "unmatched '%s'", op)
			}
			open := s.brackets[len(s.brackets)-1]
			if open.text != closers[op] {
				return s.errorf(line, col, "closing parenthesis '%s' does not match opening parenthesis '%s' on line %d",
					op, open.text, open.line)
			}
			s.brackets = s.brackets[:len(s.brackets)-1]
		}
		s.advance(len(op))
		s.emit(tok)
		return nil
	}
	return s.errorf(line, col, "invalid character %q", s.src[s.pos])
}

func (s *scanner) scanString(prefix string) error {
	return s.scanStringAt(prefix, s.pos, s.line, s.col())
}

// scanStringAt scans a string literal whose opening quote is at s.pos, and whose prefix (if any)
// started at `start`.
func (s *scanner) scanStringAt(prefix string, start, line, col int) error {
	quote := s.src[s.pos : s.pos+1]
	if strings.HasPrefix(s.src[s.pos:], strings.Repeat(quote, 3)) {
		quote = strings.Repeat(quote, 3)
	}
	bodyStart := s.pos + len(quote)
	i := bodyStart
	for {
		if i >= len(s.src) {
			if len(quote) == 3 {
				return s.errorf(line, col, "unterminated triple-quoted string literal")
			}
			return s.errorf(line, col, "unterminated string literal")
		}
		switch {
		case s.src[i] == '\\':
			i += 2
			continue
		case s.src[i] == '\n' && len(quote) == 1:
			return s.errorf(line, col, "unterminated string literal")
		case strings.HasPrefix(s.src[i:], quote):
			body := s.src[bodyStart:i]
			end := i + len(quote)
			tok := token{
				kind:   tokString,
				text:   s.src[start:end],
				line:   line,
				col:    col,
				prefix: prefix,
				value:  body,
			}
			if !strings.Contains(prefix, "r") {
				val, err := decodeEscapes(body, strings.Contains(prefix, "b"))
				if err != nil {
					return s.errorf(line, col, "%v", err)
				}
				tok.value = val
			}
			s.advance(end - s.pos)
			s.emit(tok)
			return nil
		}
		i++
	}
}
