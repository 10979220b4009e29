// dshbio: parsers and writers for annotated tab-delimited genomics files.
// Copyright (c) 2017-2020 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elprep/blob/master/LICENSE.txt>.

package internal

import (
	"bufio"
	"io"
)

// A LineReader reads lines one at a time and counts them, so that
// parse errors can report 1-based line numbers.
type LineReader struct {
	reader *bufio.Reader
	line   int
}

// NewLineReader returns a LineReader for r. If r already is a
// *bufio.Reader, it is used directly.
func NewLineReader(r io.Reader) *LineReader {
	if br, ok := r.(*bufio.Reader); ok {
		return &LineReader{reader: br}
	}
	return &LineReader{reader: bufio.NewReader(r)}
}

// Line returns the number of the line most recently returned by
// ReadLine.
func (lr *LineReader) Line() int {
	return lr.line
}

// Peek returns the next byte without consuming it.
func (lr *LineReader) Peek() (byte, error) {
	data, err := lr.reader.Peek(1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadLine returns the next line without its line terminator. Both
// "\n" and "\r\n" terminate a line. At the end of the input it
// returns io.EOF.
func (lr *LineReader) ReadLine() (line string, err error) {
	line, err = lr.reader.ReadString('\n')
	switch {
	case err == nil:
		line = line[:len(line)-1]
	case err == io.EOF:
		if line == "" {
			return "", io.EOF
		}
		err = nil
	default:
		return "", err
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	lr.line++
	return line, nil
}
