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
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{"format", &FormatError{Column: 3, Token: "x", Reason: "invalid strand"}, []string{"column 3", "invalid strand", `"x"`}},
		{"type mismatch", &TypeMismatchError{Tag: "ZA", Requested: "integer", Type: Character}, []string{"ZA", "type A", "integer"}},
		{"array type mismatch", &TypeMismatchError{Tag: "ZB", Requested: "string", Type: Array, ArrayType: Int8}, []string{"B:c"}},
		{"arity", &ArityError{Tag: "ZB", Expected: 3, Actual: 2, Reason: "expected 3 values, found 2"}, []string{"ZB", "expected 3"}},
		{"missing", &MissingKeyError{Key: "ID"}, []string{"missing", "ID"}},
		{"constraint", &ConstraintError{Record: "path", Reason: "overlaps"}, []string{"path: overlaps"}},
		{"line", &LineError{Line: 7, Err: errors.New("boom")}, []string{"line 7", "boom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
		})
	}
}

func TestAtColumn(t *testing.T) {
	if AtColumn(nil, 1, "x") != nil {
		t.Error("AtColumn(nil) is not nil")
	}
	err := AtColumn(&FormatError{Reason: "bad"}, 4, "tok")
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Column != 4 || fe.Token != "tok" {
		t.Errorf("AtColumn on FormatError = %#v", err)
	}
	_, perr := strconv.Atoi("q")
	err = AtColumn(&LineError{Line: 1, Err: perr}, 2, "q")
	if !errors.As(err, &fe) || fe.Column != 2 {
		t.Errorf("AtColumn did not wrap: %v", err)
	}
	var ne *strconv.NumError
	if !errors.As(err, &ne) {
		t.Errorf("wrapped error lost its cause: %v", err)
	}
}
