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

	"github.com/bits-and-blooms/bitset"

	"github.com/exascience/dshbio/annotation"
)

// Kinds is a set of record types, identified by the character that
// starts their lines. The zero Kinds is empty.
type Kinds struct {
	bits *bitset.BitSet
}

// NewKinds returns the set of the given record types.
func NewKinds(kinds ...byte) Kinds {
	bits := bitset.New(128)
	for _, kind := range kinds {
		bits.Set(uint(kind))
	}
	return Kinds{bits}
}

// ParseKinds parses a comma-separated list of record type characters,
// such as "H,S,L". Each character must occur in valid.
func ParseKinds(s string, valid string) (Kinds, error) {
	kinds := NewKinds()
	if s == "" {
		return kinds, nil
	}
	for _, kind := range strings.Split(s, ",") {
		if len(kind) != 1 || !strings.Contains(valid, kind) {
			return Kinds{}, &annotation.FormatError{Token: kind, Reason: "unknown record type"}
		}
		kinds.bits.Set(uint(kind[0]))
	}
	return kinds, nil
}

// Has reports whether kind is in k.
func (k Kinds) Has(kind byte) bool {
	return k.bits != nil && k.bits.Test(uint(kind))
}

// Len returns the number of record types in k.
func (k Kinds) Len() int {
	if k.bits == nil {
		return 0
	}
	return int(k.bits.Count())
}

// Union returns the record types in k or in other.
func (k Kinds) Union(other Kinds) Kinds {
	switch {
	case k.bits == nil:
		return other
	case other.bits == nil:
		return k
	}
	return Kinds{k.bits.Union(other.bits)}
}

// String returns the record types of k in the syntax of ParseKinds.
func (k Kinds) String() string {
	if k.bits == nil {
		return ""
	}
	var b strings.Builder
	for i, ok := k.bits.NextSet(0); ok; i, ok = k.bits.NextSet(i + 1) {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(byte(i))
	}
	return b.String()
}
