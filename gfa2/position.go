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

package gfa2

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/exascience/dshbio/annotation"
)

// A Position is an offset in a segment or fragment. Terminal marks
// a position at the end of the sequence, written with a trailing $.
type Position struct {
	Offset   int64
	Terminal bool
}

// ParsePosition parses a non-negative integer with an optional $
// suffix.
func ParsePosition(s string) (Position, error) {
	var p Position
	if strings.HasSuffix(s, "$") {
		p.Terminal = true
		s = s[:len(s)-1]
	}
	offset, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Position{}, &annotation.FormatError{Token: s, Reason: "invalid position", Err: err}
	}
	if offset < 0 {
		return Position{}, &annotation.ConstraintError{Record: "position", Reason: fmt.Sprintf("offset must not be negative, found %d", offset)}
	}
	p.Offset = offset
	return p, nil
}

// AppendFormat appends p.
func (p Position) AppendFormat(out []byte) []byte {
	out = strconv.AppendInt(out, p.Offset, 10)
	if p.Terminal {
		out = append(out, '$')
	}
	return out
}

func (p Position) String() string {
	return string(p.AppendFormat(nil))
}
