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
	"fmt"
	"strconv"
	"strings"

	"github.com/exascience/dshbio/annotation"
)

// Absent is the placeholder written for an absent positional field.
const Absent = "*"

// Split splits a line into its tab-separated tokens.
func Split(line string) []string {
	return strings.Split(line, "\t")
}

// CheckColumns checks that a line of the given record type has at
// least n tokens.
func CheckColumns(tokens []string, n int, record string) error {
	if len(tokens) < n {
		return &annotation.FormatError{
			Column: len(tokens),
			Reason: fmt.Sprintf("%v line has %d columns, expected at least %d", record, len(tokens), n),
		}
	}
	return nil
}

// Optional maps the placeholder "*" to the empty string.
func Optional(token string) string {
	if token == Absent {
		return ""
	}
	return token
}

// AppendOptional appends s, or "*" if s is empty.
func AppendOptional(out []byte, s string) []byte {
	if s == "" {
		return append(out, Absent...)
	}
	return append(out, s...)
}

// ParseID parses the identifier in the given 1-based column.
func ParseID(tokens []string, column int) (string, error) {
	token := tokens[column-1]
	return token, annotation.AtColumn(CheckID(token), column, token)
}

// ParseOrientationAt parses the orientation in the given 1-based column.
func ParseOrientationAt(tokens []string, column int) (Orientation, error) {
	token := tokens[column-1]
	o, err := ParseOrientation(token)
	return o, annotation.AtColumn(err, column, token)
}

// ParseCount parses the non-negative integer in the given 1-based
// column. A negative value is a ConstraintError.
func ParseCount(tokens []string, column int, record, what string) (int64, error) {
	token := tokens[column-1]
	value, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, &annotation.FormatError{Column: column, Token: token, Reason: "invalid " + what, Err: err}
	}
	if value < 0 {
		return 0, &annotation.ConstraintError{Record: record, Reason: fmt.Sprintf("%v must not be negative, found %d", what, value)}
	}
	return value, nil
}

// ParseAnnotations parses the optional columns of a line, starting
// at the given 1-based column, into a Record. Tags may start with a
// digit. A tag that occurs twice is a FormatError.
func ParseAnnotations(tokens []string, first int) (annotation.Record, error) {
	var b annotation.RecordBuilder
	for i := first - 1; i < len(tokens); i++ {
		a, err := annotation.ParseAlphanumeric(tokens[i])
		if err != nil {
			return annotation.Record{}, annotation.AtColumn(err, i+1, tokens[i])
		}
		if b.WithAnnotation(a); b.Err() != nil {
			return annotation.Record{}, annotation.AtColumn(b.Err(), i+1, tokens[i])
		}
	}
	return b.Build()
}

// CheckKind checks that the first token of a line is the expected
// record type.
func CheckKind(tokens []string, kind byte) error {
	if tokens[0] != string(rune(kind)) {
		return &annotation.FormatError{Column: 1, Token: tokens[0], Reason: fmt.Sprintf("expected a %c line", kind)}
	}
	return nil
}
