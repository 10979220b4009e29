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

package gfa

import (
	"io"
	"log"
	"strings"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/internal"
)

// Scan reads r line by line and calls handle for every line whose
// record type is in kinds. Blank lines are ignored. Lines that do not
// start with one of the record type characters in codes followed by
// a tab, such as comments, are skipped and logged.
//
// Scan stops when handle returns false or an error. Errors are
// wrapped in a *annotation.LineError.
func Scan(r io.Reader, format, codes string, kinds Kinds, handle func(line string) (bool, error)) error {
	lines := internal.NewLineReader(r)
	for {
		line, err := lines.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		code := line[0]
		if strings.IndexByte(codes, code) < 0 || (len(line) > 1 && line[1] != '\t') {
			log.Printf("Skipping line %v with unknown %v record type %q", lines.Line(), format, code)
			continue
		}
		if !kinds.Has(code) {
			continue
		}
		more, err := handle(line)
		if err != nil {
			return &annotation.LineError{Line: lines.Line(), Err: err}
		}
		if !more {
			return nil
		}
	}
}
