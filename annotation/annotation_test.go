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

func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{
		"ZA:A:c",
		"ZI:i:-42",
		"ZF:f:3.40",
		"ZF:f:1e-5",
		"ZZ:Z:hello world",
		"ZZ:Z:with:colons:inside",
		"ZZ:Z:",
		"ZH:H:1AE301",
		"ZH:H:",
		"ZB:B:i,1,2",
		"ZB:B:c,-128,127",
		"ZB:B:f,3.4,4.5",
		"ZB:B:S",
	} {
		a, err := Parse(s)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", s, err)
			continue
		}
		if got := a.Format(); got != s {
			t.Errorf("Format(Parse(%q)) = %q", s, got)
		}
		b, err := Parse(a.Format())
		if err != nil || !a.Equal(b) {
			t.Errorf("Parse(Format(%q)) not equal to original", s)
		}
	}
}

func TestParseArray(t *testing.T) {
	a, err := Parse("ZB:B:i,1,2")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name() != "ZB" || a.Type() != Array || a.ArrayType() != Int32 {
		t.Errorf("unexpected annotation %v %v %v", a.Name(), a.Type(), a.ArrayType())
	}
	values, err := a.AsIntegers()
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 2 || values[0] != 1 || values[1] != 2 {
		t.Errorf("AsIntegers = %v", values)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too few tokens", "ZA:Z"},
		{"no separators", "ZA"},
		{"long type", "ZA:ZZ:x"},
		{"unknown type", "ZA:Q:x"},
		{"bad tag", "1A:i:1"},
		{"three letter tag", "ABC:i:1"},
		{"bad integer", "ZI:i:1.5"},
		{"bad float", "ZF:f:NaN"},
		{"bad character", "ZA:A:ab"},
		{"odd hex", "ZH:H:ABC"},
		{"bad hex", "ZH:H:GG"},
		{"missing array type", "ZB:B:"},
		{"bad array type", "ZB:B:x,1"},
		{"missing comma", "ZB:B:i1"},
		{"int8 overflow", "ZB:B:c,128"},
		{"negative unsigned", "ZB:B:C,-1"},
		{"empty element", "ZB:B:i,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("Parse(%q) = %v, want FormatError", tt.input, err)
			}
		})
	}
}

func TestParseAlphanumeric(t *testing.T) {
	a, err := ParseAlphanumeric("1a:i:42")
	if err != nil {
		t.Fatal(err)
	}
	if a.Name() != "1a" || a.String() != "1a:i:42" {
		t.Errorf("ParseAlphanumeric = %v", a)
	}
	var fe *FormatError
	for _, input := range []string{"_a:i:1", "a:i:1", "ZI:i:x"} {
		if _, err := ParseAlphanumeric(input); !errors.As(err, &fe) {
			t.Errorf("ParseAlphanumeric(%q) = %v, want FormatError", input, err)
		}
	}
}

func TestTypedAccessors(t *testing.T) {
	mustParse := func(s string) Annotation {
		a, err := Parse(s)
		if err != nil {
			t.Fatal(err)
		}
		return a
	}
	if c, err := mustParse("ZA:A:c").AsCharacter(); err != nil || c != 'c' {
		t.Errorf("AsCharacter = %v, %v", c, err)
	}
	if i, err := mustParse("ZI:i:42").AsInteger(); err != nil || i != 42 {
		t.Errorf("AsInteger = %v, %v", i, err)
	}
	if f, err := mustParse("ZF:f:3.4").AsFloat(); err != nil || f != 3.4 {
		t.Errorf("AsFloat = %v, %v", f, err)
	}
	if s, err := mustParse("ZZ:Z:a:b").AsString(); err != nil || s != "a:b" {
		t.Errorf("AsString = %v, %v", s, err)
	}
	if h, err := mustParse("ZH:H:1AE3").AsByteArray(); err != nil || len(h) != 2 || h[0] != 0x1a || h[1] != 0xe3 {
		t.Errorf("AsByteArray = %v, %v", h, err)
	}
	if fs, err := mustParse("ZB:B:f,3.4,4.5").AsFloats(); err != nil || len(fs) != 2 || fs[0] != 3.4 || fs[1] != 4.5 {
		t.Errorf("AsFloats = %v, %v", fs, err)
	}
}

func TestTypeMismatch(t *testing.T) {
	a, _ := Parse("ZA:A:c")
	_, err := a.AsInteger()
	var tm *TypeMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("AsInteger on type A = %v, want TypeMismatchError", err)
	}
	if tm.Tag != "ZA" || tm.Type != Character {
		t.Errorf("unexpected error contents %+v", tm)
	}
	f, _ := Parse("ZB:B:f,1.5")
	if _, err := f.AsIntegers(); !errors.As(err, &tm) {
		t.Errorf("AsIntegers on B:f = %v, want TypeMismatchError", err)
	}
}

func TestArityMismatch(t *testing.T) {
	array, _ := Parse("ZB:B:i,1,2")
	scalar, _ := Parse("ZI:i:1")
	var ae *ArityError
	if _, err := array.AsInteger(); !errors.As(err, &ae) {
		t.Errorf("AsInteger on array = %v, want ArityError", err)
	}
	if _, err := scalar.AsIntegers(); !errors.As(err, &ae) {
		t.Errorf("AsIntegers on scalar = %v, want ArityError", err)
	}
}

func TestTypedConstructors(t *testing.T) {
	tests := []struct {
		name string
		make func() (Annotation, error)
		want string
	}{
		{"character", func() (Annotation, error) { return NewCharacter("tp", 'P') }, "tp:A:P"},
		{"integer", func() (Annotation, error) { return NewInteger("NM", -3) }, "NM:i:-3"},
		{"float", func() (Annotation, error) { return NewFloat("dv", 0.25) }, "dv:f:0.25"},
		{"string", func() (Annotation, error) { return NewString("cg", "10M") }, "cg:Z:10M"},
		{"byte array", func() (Annotation, error) { return NewByteArray("SH", []byte{0x1a, 0xe3}) }, "SH:H:1AE3"},
		{"integers", func() (Annotation, error) { return NewIntegers("ZB", Uint16, 1, 2) }, "ZB:B:S,1,2"},
		{"floats", func() (Annotation, error) { return NewFloats("ZT", 3.5, 4.5) }, "ZT:B:f,3.5,4.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.make()
			if err != nil {
				t.Fatal(err)
			}
			if got := a.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
	if _, err := NewIntegers("ZB", Float32, 1); err == nil {
		t.Error("NewIntegers with float element type succeeded")
	}
	if _, err := New("ZB", Array, "i,1"); err == nil {
		t.Error("New with type B succeeded")
	}
}

func TestValuesAreCopied(t *testing.T) {
	a, _ := Parse("ZB:B:i,1,2")
	values := a.Values()
	values[0] = "99"
	if a.Format() != "ZB:B:i,1,2" {
		t.Errorf("annotation changed through Values: %v", a)
	}
}
