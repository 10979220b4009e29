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
	"io"
	"os"
)

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Open opens the named file for reading. The names "-" and
// "/dev/stdin" denote standard input, which is never closed.
func Open(name string) (io.ReadCloser, error) {
	if name == "-" || name == "/dev/stdin" {
		return nopCloser{os.Stdin}, nil
	}
	return os.Open(name)
}

// Create creates the named file for writing. The names "-" and
// "/dev/stdout" denote standard output, which is never closed.
func Create(name string) (io.WriteCloser, error) {
	if name == "-" || name == "/dev/stdout" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(name)
}

// Close closes c and stores its error in *err, unless *err already
// holds an earlier error. Use it in a defer statement so that a
// failing Close is not lost.
func Close(c io.Closer, err *error) {
	if nerr := c.Close(); nerr != nil && *err == nil {
		*err = nerr
	}
}
