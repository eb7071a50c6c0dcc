// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package pysource

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var simpleEscapes = map[byte]string{
	'\n': "",
	'\\': "\\",
	'\'': "'",
	'"':  "\"",
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

// decodeEscapes interprets the backslash escapes in the body of a non-raw string literal.
// Unrecognized escapes are left as-is, as Python does.  In bytes literals, \u, \U, and \N are not
// escapes.
func decodeEscapes(body string, isBytes bool) (string, error) {
	if !strings.Contains(body, "\\") {
		return body, nil
	}
	var ret strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 == len(body) {
			ret.WriteByte(body[i])
			continue
		}
		i++
		c := body[i]
		if repl, ok := simpleEscapes[c]; ok {
			ret.WriteString(repl)
			continue
		}
		switch {
		case c == '\r' && i+1 < len(body) && body[i+1] == '\n':
			i++
		case isOctal(c):
			end := i + 1
			for end < len(body) && end < i+3 && isOctal(body[end]) {
				end++
			}
			val, _ := strconv.ParseUint(body[i:end], 8, 16)
			writeCodepoint(&ret, rune(val), isBytes)
			i = end - 1
		case c == 'x':
			val, err := parseHexEscape(body, i, 2)
			if err != nil {
				return "", err
			}
			writeCodepoint(&ret, val, isBytes)
			i += 2
		case (c == 'u' || c == 'U') && !isBytes:
			width := 4
			if c == 'U' {
				width = 8
			}
			val, err := parseHexEscape(body, i, width)
			if err != nil {
				return "", err
			}
			if !utf8.ValidRune(val) {
				return "", fmt.Errorf("illegal Unicode character in \\%c escape", c)
			}
			ret.WriteRune(val)
			i += width
		default:
			// Includes \N{...}, which would need the Unicode name database.
			ret.WriteByte('\\')
			ret.WriteByte(c)
		}
	}
	return ret.String(), nil
}

// parseHexEscape parses the `width` hex digits following body[i].
func parseHexEscape(body string, i, width int) (rune, error) {
	if i+1+width > len(body) {
		return 0, fmt.Errorf("truncated \\%c escape", body[i])
	}
	val, err := strconv.ParseUint(body[i+1:i+1+width], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("truncated \\%c escape", body[i])
	}
	return rune(val), nil
}

func writeCodepoint(ret *strings.Builder, val rune, isBytes bool) {
	if isBytes {
		ret.WriteByte(byte(val))
		return
	}
	ret.WriteRune(val)
}
