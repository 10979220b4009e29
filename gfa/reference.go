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
	"strings"

	"github.com/exascience/dshbio/annotation"
)

// Orientation is the strand of a segment in a link, containment or
// path.
type Orientation byte

// The two orientations.
const (
	Forward Orientation = '+'
	Reverse Orientation = '-'
)

// ParseOrientation parses "+" or "-".
func ParseOrientation(s string) (Orientation, error) {
	if len(s) == 1 {
		switch o := Orientation(s[0]); o {
		case Forward, Reverse:
			return o, nil
		}
	}
	return 0, &annotation.FormatError{Token: s, Reason: "invalid orientation"}
}

// Valid reports whether o is Forward or Reverse.
func (o Orientation) Valid() bool {
	return o == Forward || o == Reverse
}

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	if o == Forward {
		return Reverse
	}
	return Forward
}

func (o Orientation) String() string {
	return string(rune(o))
}

// A Reference is a segment identifier together with an orientation.
type Reference struct {
	ID          string
	Orientation Orientation
}

// NewReference returns a reference after checking id and o.
func NewReference(id string, o Orientation) (Reference, error) {
	if err := CheckID(id); err != nil {
		return Reference{}, err
	}
	if !o.Valid() {
		return Reference{}, &annotation.FormatError{Token: string(rune(o)), Reason: "invalid orientation"}
	}
	return Reference{ID: id, Orientation: o}, nil
}

// ParseReference parses a reference written as an identifier
// immediately followed by its orientation, as in "seg1+".
func ParseReference(s string) (Reference, error) {
	n := len(s)
	if n < 2 {
		return Reference{}, &annotation.FormatError{Token: s, Reason: "invalid reference"}
	}
	o, err := ParseOrientation(s[n-1:])
	if err != nil {
		return Reference{}, &annotation.FormatError{Token: s, Reason: "invalid reference", Err: err}
	}
	return NewReference(s[:n-1], o)
}

// ParseReferences parses a list of references separated by sep. The
// empty string yields no references.
func ParseReferences(s string, sep string) ([]Reference, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, sep)
	refs := make([]Reference, len(parts))
	for i, part := range parts {
		ref, err := ParseReference(part)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}
	return refs, nil
}

// AppendFormat appends the identifier and the orientation of r.
func (r Reference) AppendFormat(out []byte) []byte {
	return append(append(out, r.ID...), byte(r.Orientation))
}

func (r Reference) String() string {
	return string(r.AppendFormat(nil))
}

// AppendReferences appends refs separated by sep.
func AppendReferences(out []byte, refs []Reference, sep byte) []byte {
	for i, ref := range refs {
		if i > 0 {
			out = append(out, sep)
		}
		out = ref.AppendFormat(out)
	}
	return out
}

// CheckID checks that id is a non-empty identifier made of visible
// ASCII characters.
func CheckID(id string) error {
	if id == "" {
		return &annotation.FormatError{Reason: "empty identifier"}
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c <= ' ' || c > '~' {
			return &annotation.FormatError{Token: id, Reason: "invalid character in identifier"}
		}
	}
	return nil
}
