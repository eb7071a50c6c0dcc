// Copyright (C) 2021-2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package fsutil

import (
	"bufio"
	"io"
)

// WriteLines writes each of the `lines` to `dst`, each followed by "\n".
func WriteLines(dst io.Writer, lines []string) (err error) {
	buf := bufio.NewWriter(dst)
	defer func() {
		if _err := buf.Flush(); _err != nil && err == nil {
			err = _err
		}
	}()
	for _, line := range lines {
		if _, err := buf.WriteString(line); err != nil {
			return err
		}
		if err := buf.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}
