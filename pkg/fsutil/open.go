// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText reads the entire file, and returns it as a string with any leading UTF-8 byte-order
// mark removed.  Errors are always *fs.PathError, with the Op set to `op` so that the caller can
// say what kind of file it was trying to read.
func ReadText(op, filename string) (string, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return "", &fs.PathError{
			Op:   op,
			Path: filename,
			Err:  err,
		}
	}
	return string(bytes.TrimPrefix(bs, utf8BOM)), nil
}

// ReadLines is like ReadText, but splits the text in to lines.  Both "\n" and "\r\n" line
// endings are accepted; the line terminators are not included.
func ReadLines(op, filename string) ([]string, error) {
	text, err := ReadText(op, filename)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// SplitLines splits `text` on line endings.  A trailing line terminator does not produce a final
// empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// Exists returns whether `filename` exists.  Only a definite "does not exist" counts as not
// existing; any other stat error (permissions, etc.) is left for the subsequent read to report.
func Exists(filename string) bool {
	_, err := os.Stat(filename)
	return !errors.Is(err, fs.ErrNotExist)
}
