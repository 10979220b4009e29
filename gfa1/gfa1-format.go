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

package gfa1

import (
	"strconv"
	"strings"

	"github.com/exascience/dshbio/gfa"
)

func appendReference(out []byte, ref gfa.Reference) []byte {
	out = append(append(out, ref.ID...), '\t')
	return append(out, byte(ref.Orientation))
}

// AppendFormat appends h as an H line, without line terminator.
func (h *Header) AppendFormat(out []byte) []byte {
	return h.Record.AppendFormat(append(out, 'H'))
}

// AppendFormat appends s as an S line, without line terminator.
func (s *Segment) AppendFormat(out []byte) []byte {
	out = append(append(out, "S\t"...), s.ID...)
	out = gfa.AppendOptional(append(out, '\t'), s.Sequence)
	return s.Record.AppendFormat(out)
}

// AppendFormat appends l as an L line, without line terminator.
func (l *Link) AppendFormat(out []byte) []byte {
	out = appendReference(append(out, "L\t"...), l.Source)
	out = appendReference(append(out, '\t'), l.Target)
	out = gfa.AppendOptional(append(out, '\t'), l.Overlap)
	return l.Record.AppendFormat(out)
}

// AppendFormat appends c as a C line, without line terminator.
func (c *Containment) AppendFormat(out []byte) []byte {
	out = appendReference(append(out, "C\t"...), c.Container)
	out = appendReference(append(out, '\t'), c.Contained)
	out = strconv.AppendInt(append(out, '\t'), c.Position, 10)
	out = gfa.AppendOptional(append(out, '\t'), c.Overlap)
	return c.Record.AppendFormat(out)
}

// AppendFormat appends p as a P line, without line terminator.
func (p *Path) AppendFormat(out []byte) []byte {
	out = append(append(out, "P\t"...), p.Name...)
	out = append(out, '\t')
	if len(p.Segments) == 0 {
		out = append(out, gfa.Absent...)
	} else {
		out = gfa.AppendReferences(out, p.Segments, ',')
	}
	out = gfa.AppendOptional(append(out, '\t'), strings.Join(p.Overlaps, ","))
	return p.Record.AppendFormat(out)
}

// AppendFormat appends t as a t line, without line terminator.
func (t *Traversal) AppendFormat(out []byte) []byte {
	out = append(append(out, "t\t"...), t.PathName...)
	out = strconv.AppendInt(append(out, '\t'), t.Ordinal, 10)
	out = appendReference(append(out, '\t'), t.Source)
	out = appendReference(append(out, '\t'), t.Target)
	out = gfa.AppendOptional(append(out, '\t'), t.Overlap)
	return t.Record.AppendFormat(out)
}

func (h *Header) String() string      { return string(h.AppendFormat(nil)) }
func (s *Segment) String() string     { return string(s.AppendFormat(nil)) }
func (l *Link) String() string        { return string(l.AppendFormat(nil)) }
func (c *Containment) String() string { return string(c.AppendFormat(nil)) }
func (p *Path) String() string        { return string(p.AppendFormat(nil)) }
func (t *Traversal) String() string   { return string(t.AppendFormat(nil)) }

// Equal reports whether h and other have equal annotations.
func (h *Header) Equal(other *Header) bool {
	return h.Record.Equal(other.Record)
}

// Equal reports whether s and other have equal columns and annotations.
func (s *Segment) Equal(other *Segment) bool {
	return s.ID == other.ID && s.Sequence == other.Sequence && s.Record.Equal(other.Record)
}

// Equal reports whether l and other have equal columns and annotations.
func (l *Link) Equal(other *Link) bool {
	return l.Source == other.Source && l.Target == other.Target &&
		l.Overlap == other.Overlap && l.Record.Equal(other.Record)
}

// Equal reports whether c and other have equal columns and annotations.
func (c *Containment) Equal(other *Containment) bool {
	return c.Container == other.Container && c.Contained == other.Contained &&
		c.Position == other.Position && c.Overlap == other.Overlap &&
		c.Record.Equal(other.Record)
}

// Equal reports whether p and other have equal columns and annotations.
func (p *Path) Equal(other *Path) bool {
	if p.Name != other.Name || len(p.Segments) != len(other.Segments) ||
		p.HasOverlaps() != other.HasOverlaps() || len(p.Overlaps) != len(other.Overlaps) {
		return false
	}
	for i, segment := range p.Segments {
		if segment != other.Segments[i] {
			return false
		}
	}
	for i, overlap := range p.Overlaps {
		if overlap != other.Overlaps[i] {
			return false
		}
	}
	return p.Record.Equal(other.Record)
}

// Equal reports whether t and other have equal columns and annotations.
func (t *Traversal) Equal(other *Traversal) bool {
	return t.PathName == other.PathName && t.Ordinal == other.Ordinal &&
		t.Source == other.Source && t.Target == other.Target &&
		t.Overlap == other.Overlap && t.Record.Equal(other.Record)
}
