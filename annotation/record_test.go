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
	"testing"
)

func mustRecord(t *testing.T, tokens ...string) Record {
	t.Helper()
	var b RecordBuilder
	for _, token := range tokens {
		a, err := Parse(token)
		if err != nil {
			t.Fatal(err)
		}
		b.WithAnnotation(a)
	}
	r, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRecordAccessors(t *testing.T) {
	r := mustRecord(t, "aa:i:42", "ZA:A:c", "ZB:B:i,1,2")
	if !r.ContainsKey("aa") || r.ContainsKey("bb") {
		t.Error("ContainsKey is wrong")
	}
	if i, err := r.FieldInteger("aa"); err != nil || i != 42 {
		t.Errorf("FieldInteger = %v, %v", i, err)
	}
	var tm *TypeMismatchError
	if _, err := r.FieldInteger("ZA"); !errors.As(err, &tm) {
		t.Errorf("FieldInteger(ZA) = %v, want TypeMismatchError", err)
	}
	var mk *MissingKeyError
	if _, err := r.FieldString("MISSING"); !errors.As(err, &mk) {
		t.Errorf("FieldString(MISSING) = %v, want MissingKeyError", err)
	}
	if _, ok, err := r.FieldStringOpt("MISSING"); ok || err != nil {
		t.Errorf("FieldStringOpt(MISSING) = %v, %v", ok, err)
	}
	if values, err := r.FieldIntegers("ZB"); err != nil || len(values) != 2 {
		t.Errorf("FieldIntegers = %v, %v", values, err)
	}
	if got := string(r.AppendFormat(nil)); got != "\taa:i:42\tZA:A:c\tZB:B:i,1,2" {
		t.Errorf("AppendFormat = %q", got)
	}
}

func TestRecordDuplicateTag(t *testing.T) {
	a, _ := Parse("aa:i:1")
	b, _ := Parse("aa:i:2")
	_, err := NewRecord(a, b)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Errorf("NewRecord with duplicate tags = %v, want FormatError", err)
	}
}

func TestRecordBuilderReplace(t *testing.T) {
	a, _ := Parse("aa:i:1")
	b, _ := Parse("bb:Z:x")
	c, _ := Parse("aa:i:2")
	var builder RecordBuilder
	first, err := builder.WithAnnotation(a).WithAnnotation(b).Build()
	if err != nil {
		t.Fatal(err)
	}
	second, err := builder.ReplaceAnnotation(c).Build()
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := first.FieldInteger("aa"); v != 1 {
		t.Errorf("first record changed: aa = %v", v)
	}
	if v, _ := second.FieldInteger("aa"); v != 2 {
		t.Errorf("replaced aa = %v", v)
	}
	if tags := second.Tags(); len(tags) != 2 || tags[0] != "bb" || tags[1] != "aa" {
		t.Errorf("tags after replace = %v", tags)
	}
	if builder.Reset().Err() != nil {
		t.Error("Reset kept an error")
	}
	if empty, _ := builder.Build(); empty.Len() != 0 {
		t.Error("Build after Reset is not empty")
	}
}

func TestRecordEqual(t *testing.T) {
	r1 := mustRecord(t, "aa:i:42", "bb:Z:x")
	r2 := mustRecord(t, "aa:i:42", "bb:Z:x")
	r3 := mustRecord(t, "bb:Z:x", "aa:i:42")
	if !r1.Equal(r2) {
		t.Error("equal records compare unequal")
	}
	if r1.Equal(r3) {
		t.Error("records in different order compare equal")
	}
}
