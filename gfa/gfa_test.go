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
	"errors"
	"testing"

	"github.com/exascience/dshbio/annotation"
)

func TestParseReference(t *testing.T) {
	ref, err := ParseReference("seg1+")
	if err != nil {
		t.Fatal(err)
	}
	if ref.ID != "seg1" || ref.Orientation != Forward {
		t.Errorf("ParseReference(seg1+) = %+v", ref)
	}
	if ref.String() != "seg1+" {
		t.Errorf("String = %q", ref.String())
	}
	for _, s := range []string{"", "+", "seg1", "seg1*"} {
		if _, err := ParseReference(s); err == nil {
			t.Errorf("ParseReference(%q) succeeded", s)
		}
	}
}

func TestParseReferences(t *testing.T) {
	refs, err := ParseReferences("a+,b-,c+", ",")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 3 || refs[1].ID != "b" || refs[1].Orientation != Reverse {
		t.Errorf("ParseReferences = %v", refs)
	}
	if got := string(AppendReferences(nil, refs, ',')); got != "a+,b-,c+" {
		t.Errorf("AppendReferences = %q", got)
	}
	if refs, err := ParseReferences("", ","); err != nil || refs != nil {
		t.Errorf("ParseReferences(\"\") = %v, %v", refs, err)
	}
}

func TestOrientation(t *testing.T) {
	if Forward.Flip() != Reverse || Reverse.Flip() != Forward {
		t.Error("Flip is wrong")
	}
	if _, err := ParseOrientation("x"); err == nil {
		t.Error("ParseOrientation(x) succeeded")
	}
}

func TestParseCount(t *testing.T) {
	tokens := []string{"C", "12", "-3", "x"}
	if v, err := ParseCount(tokens, 2, "containment", "position"); err != nil || v != 12 {
		t.Errorf("ParseCount = %v, %v", v, err)
	}
	var ce *annotation.ConstraintError
	if _, err := ParseCount(tokens, 3, "containment", "position"); !errors.As(err, &ce) {
		t.Errorf("negative count = %v, want ConstraintError", err)
	}
	var fe *annotation.FormatError
	if _, err := ParseCount(tokens, 4, "containment", "position"); !errors.As(err, &fe) || fe.Column != 4 {
		t.Errorf("invalid count = %v, want FormatError at column 4", err)
	}
}

func TestParseAnnotations(t *testing.T) {
	r, err := ParseAnnotations([]string{"S", "id", "*", "aa:i:42", "bb:Z:x", "1a:i:7"}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d", r.Len())
	}
	_, err = ParseAnnotations([]string{"S", "id", "*", "aa:i:42", "aa:i:43"}, 4)
	var fe *annotation.FormatError
	if !errors.As(err, &fe) || fe.Column != 5 {
		t.Errorf("duplicate tag = %v, want FormatError at column 5", err)
	}
}

func TestKinds(t *testing.T) {
	kinds, err := ParseKinds("S,L", "HSLCPt")
	if err != nil {
		t.Fatal(err)
	}
	if !kinds.Has('S') || !kinds.Has('L') || kinds.Has('H') {
		t.Errorf("kinds = %v", kinds)
	}
	if kinds.String() != "L,S" {
		t.Errorf("String = %q", kinds.String())
	}
	if kinds.Union(NewKinds('H')).Len() != 3 {
		t.Error("Union is wrong")
	}
	if _, err := ParseKinds("S,X", "HSLCPt"); err == nil {
		t.Error("ParseKinds accepted an unknown kind")
	}
	var empty Kinds
	if empty.Has('S') || empty.Len() != 0 {
		t.Error("zero Kinds is not empty")
	}
}
