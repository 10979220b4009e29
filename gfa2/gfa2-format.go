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
	"strconv"
	"strings"

	"github.com/exascience/dshbio/gfa"
)

func appendPositions(out []byte, positions ...Position) []byte {
	for _, p := range positions {
		out = p.AppendFormat(append(out, '\t'))
	}
	return out
}

// AppendFormat appends h as an H line, without line terminator.
func (h *Header) AppendFormat(out []byte) []byte {
	return h.Record.AppendFormat(append(out, 'H'))
}

// AppendFormat appends s as an S line, without line terminator.
func (s *Segment) AppendFormat(out []byte) []byte {
	out = append(append(out, "S\t"...), s.ID...)
	out = strconv.AppendInt(append(out, '\t'), s.Length, 10)
	out = gfa.AppendOptional(append(out, '\t'), s.Sequence)
	return s.Record.AppendFormat(out)
}

// AppendFormat appends f as an F line, without line terminator.
func (f *Fragment) AppendFormat(out []byte) []byte {
	out = append(append(out, "F\t"...), f.SegmentID...)
	out = f.External.AppendFormat(append(out, '\t'))
	out = appendPositions(out, f.SegmentStart, f.SegmentEnd, f.FragmentStart, f.FragmentEnd)
	out = gfa.AppendOptional(append(out, '\t'), f.Alignment)
	return f.Record.AppendFormat(out)
}

// AppendFormat appends e as an E line, without line terminator.
func (e *Edge) AppendFormat(out []byte) []byte {
	out = gfa.AppendOptional(append(out, "E\t"...), e.ID)
	out = e.Source.AppendFormat(append(out, '\t'))
	out = e.Target.AppendFormat(append(out, '\t'))
	out = appendPositions(out, e.SourceStart, e.SourceEnd, e.TargetStart, e.TargetEnd)
	out = gfa.AppendOptional(append(out, '\t'), e.Alignment)
	return e.Record.AppendFormat(out)
}

// AppendFormat appends g as a G line, without line terminator.
func (g *Gap) AppendFormat(out []byte) []byte {
	out = gfa.AppendOptional(append(out, "G\t"...), g.ID)
	out = g.Source.AppendFormat(append(out, '\t'))
	out = g.Target.AppendFormat(append(out, '\t'))
	out = strconv.AppendInt(append(out, '\t'), g.Distance, 10)
	out = append(out, '\t')
	if g.HasVariance {
		out = strconv.AppendInt(out, g.Variance, 10)
	} else {
		out = append(out, gfa.Absent...)
	}
	return g.Record.AppendFormat(out)
}

// AppendFormat appends p as an O line, without line terminator.
func (p *Path) AppendFormat(out []byte) []byte {
	out = gfa.AppendOptional(append(out, "O\t"...), p.ID)
	out = gfa.AppendReferences(append(out, '\t'), p.References, ' ')
	return p.Record.AppendFormat(out)
}

// AppendFormat appends s as a U line, without line terminator.
func (s *Set) AppendFormat(out []byte) []byte {
	out = gfa.AppendOptional(append(out, "U\t"...), s.ID)
	out = append(append(out, '\t'), strings.Join(s.IDs, " ")...)
	return s.Record.AppendFormat(out)
}

func (h *Header) String() string   { return string(h.AppendFormat(nil)) }
func (s *Segment) String() string  { return string(s.AppendFormat(nil)) }
func (f *Fragment) String() string { return string(f.AppendFormat(nil)) }
func (e *Edge) String() string     { return string(e.AppendFormat(nil)) }
func (g *Gap) String() string      { return string(g.AppendFormat(nil)) }
func (p *Path) String() string     { return string(p.AppendFormat(nil)) }
func (s *Set) String() string      { return string(s.AppendFormat(nil)) }

// Equal reports whether h and other have equal annotations.
func (h *Header) Equal(other *Header) bool {
	return h.Record.Equal(other.Record)
}

// Equal reports whether s and other have equal columns and annotations.
func (s *Segment) Equal(other *Segment) bool {
	return s.ID == other.ID && s.Length == other.Length &&
		s.Sequence == other.Sequence && s.Record.Equal(other.Record)
}

// Equal reports whether f and other have equal columns and annotations.
func (f *Fragment) Equal(other *Fragment) bool {
	return f.SegmentID == other.SegmentID && f.External == other.External &&
		f.SegmentStart == other.SegmentStart && f.SegmentEnd == other.SegmentEnd &&
		f.FragmentStart == other.FragmentStart && f.FragmentEnd == other.FragmentEnd &&
		f.Alignment == other.Alignment && f.Record.Equal(other.Record)
}

// Equal reports whether e and other have equal columns and annotations.
func (e *Edge) Equal(other *Edge) bool {
	return e.ID == other.ID && e.Source == other.Source && e.Target == other.Target &&
		e.SourceStart == other.SourceStart && e.SourceEnd == other.SourceEnd &&
		e.TargetStart == other.TargetStart && e.TargetEnd == other.TargetEnd &&
		e.Alignment == other.Alignment && e.Record.Equal(other.Record)
}

// Equal reports whether g and other have equal columns and annotations.
func (g *Gap) Equal(other *Gap) bool {
	return g.ID == other.ID && g.Source == other.Source && g.Target == other.Target &&
		g.Distance == other.Distance && g.HasVariance == other.HasVariance &&
		g.Variance == other.Variance && g.Record.Equal(other.Record)
}

// Equal reports whether p and other have equal columns and annotations.
func (p *Path) Equal(other *Path) bool {
	if p.ID != other.ID || len(p.References) != len(other.References) {
		return false
	}
	for i, ref := range p.References {
		if ref != other.References[i] {
			return false
		}
	}
	return p.Record.Equal(other.Record)
}

// Equal reports whether s and other have equal columns and annotations.
func (s *Set) Equal(other *Set) bool {
	if s.ID != other.ID || len(s.IDs) != len(other.IDs) {
		return false
	}
	for i, id := range s.IDs {
		if id != other.IDs[i] {
			return false
		}
	}
	return s.Record.Equal(other.Record)
}
