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

package annotation

import (
	"fmt"
	"strings"
)

// FormatError is returned for malformed syntax: a wrong number of
// tokens, an unparsable number, an invalid enumeration symbol.
type FormatError struct {
	Column int    // 1-based column of the offending token, 0 if unknown
	Token  string // the offending token, if known
	Reason string
	Err    error // underlying cause, may be nil
}

func (e *FormatError) Error() string {
	var b strings.Builder
	if e.Column > 0 {
		fmt.Fprintf(&b, "column %d: ", e.Column)
	}
	b.WriteString(e.Reason)
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Err != nil {
		if e.Reason != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }

// TypeMismatchError is returned when a typed accessor is applied to
// an annotation whose type is of a different kind.
type TypeMismatchError struct {
	Tag       string
	Requested string
	Type      Type
	ArrayType ArrayType
}

func (e *TypeMismatchError) Error() string {
	if e.Type == Array {
		return fmt.Sprintf("%v has type B:%v, not %v", e.Tag, e.ArrayType, e.Requested)
	}
	return fmt.Sprintf("%v has type %v, not %v", e.Tag, e.Type, e.Requested)
}

// ArityError is returned when a tag holds the wrong number of values:
// a scalar accessor on an array, an array accessor on a scalar, or an
// array whose length differs from the requested length.
type ArityError struct {
	Tag      string
	Expected int // -1 if an array of any length was expected
	Actual   int
	Reason   string
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("wrong number of values for %v: %v", e.Tag, e.Reason)
}

// MissingKeyError is returned when a required tag or attribute is
// absent.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing required key %v", e.Key)
}

// ConstraintError is returned when a record violates a structural
// invariant at construction, such as a negative length or a path
// whose overlap count does not match its segment count.
type ConstraintError struct {
	Record string
	Reason string
}

func (e *ConstraintError) Error() string {
	if e.Record == "" {
		return e.Reason
	}
	return e.Record + ": " + e.Reason
}

// LineError wraps a failure while parsing one line of a stream with
// the 1-based number of that line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// AtColumn attaches a 1-based column number and the column's original
// token to err. A FormatError without a column gets them set in a
// copy; any other error is wrapped in a FormatError.
func AtColumn(err error, column int, token string) error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FormatError); ok && fe.Column == 0 {
		copied := *fe
		copied.Column = column
		if copied.Token == "" {
			copied.Token = token
		}
		return &copied
	}
	return &FormatError{Column: column, Token: token, Reason: "invalid field", Err: err}
}

func formatError(token, reason string, err error) error {
	return &FormatError{Token: token, Reason: reason, Err: err}
}

func missingKey(tag string) error {
	return &MissingKeyError{Key: tag}
}

func typeMismatch(tag string, requested string, t Type, at ArrayType) error {
	return &TypeMismatchError{Tag: tag, Requested: requested, Type: t, ArrayType: at}
}
