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
	"fmt"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/gfa"
)

// Kind identifies a record type by the character that starts its
// lines.
type Kind byte

// The GFA 1.0 record types.
const (
	HeaderKind      Kind = 'H'
	SegmentKind     Kind = 'S'
	LinkKind        Kind = 'L'
	ContainmentKind Kind = 'C'
	PathKind        Kind = 'P'
	TraversalKind   Kind = 't'
)

const kindCodes = "HSLCPt"

// AllKinds returns the set of all GFA 1.0 record types.
func AllKinds() gfa.Kinds {
	return gfa.NewKinds([]byte(kindCodes)...)
}

// ParseKinds parses a comma-separated list of GFA 1.0 record type
// characters, such as "S,L".
func ParseKinds(s string) (gfa.Kinds, error) {
	return gfa.ParseKinds(s, kindCodes)
}

func (k Kind) String() string {
	switch k {
	case HeaderKind:
		return "header"
	case SegmentKind:
		return "segment"
	case LinkKind:
		return "link"
	case ContainmentKind:
		return "containment"
	case PathKind:
		return "path"
	case TraversalKind:
		return "traversal"
	default:
		return fmt.Sprintf("unknown record type %q", byte(k))
	}
}

// A Record is one line of a GFA 1.0 file.
type Record interface {
	Kind() Kind
	Annotations() []annotation.Annotation
	AppendFormat(out []byte) []byte
	String() string
}

// Header is an H line.
type Header struct {
	annotation.Record
}

// Segment is an S line.
type Segment struct {
	ID       string
	Sequence string // empty if absent
	annotation.Record
}

// Link is an L line, an overlap between the end of one segment and
// the start of another.
type Link struct {
	Source  gfa.Reference
	Target  gfa.Reference
	Overlap string // CIGAR string, empty if absent
	annotation.Record
}

// Containment is a C line: a segment contained in another one.
type Containment struct {
	Container gfa.Reference
	Contained gfa.Reference
	Position  int64 // 0-based offset of Contained in Container
	Overlap   string
	annotation.Record
}

// Path is a P line, an ordered walk through oriented segments.
type Path struct {
	Name     string
	Segments []gfa.Reference
	Overlaps []string // nil if absent, else one per pair of consecutive segments
	annotation.Record
}

// Traversal is a t line, one step of a path from a source segment
// to a target segment.
type Traversal struct {
	PathName string
	Ordinal  int64
	Source   gfa.Reference
	Target   gfa.Reference
	Overlap  string
	annotation.Record
}

func (*Header) Kind() Kind      { return HeaderKind }
func (*Segment) Kind() Kind     { return SegmentKind }
func (*Link) Kind() Kind        { return LinkKind }
func (*Containment) Kind() Kind { return ContainmentKind }
func (*Path) Kind() Kind        { return PathKind }
func (*Traversal) Kind() Kind   { return TraversalKind }

// NewHeader returns a header with the given annotations.
func NewHeader(tags annotation.Record) *Header {
	return &Header{Record: tags}
}

// Version returns the VN:Z annotation of the header.
func (h *Header) Version() (string, bool, error) {
	return h.FieldStringOpt("VN")
}

// NewSegment returns a segment. An empty sequence means the sequence
// is absent.
func NewSegment(id, sequence string, tags annotation.Record) (*Segment, error) {
	if err := gfa.CheckID(id); err != nil {
		return nil, err
	}
	return &Segment{ID: id, Sequence: sequence, Record: tags}, nil
}

// HasSequence reports whether the sequence of s is present.
func (s *Segment) HasSequence() bool {
	return s.Sequence != ""
}

// Length returns the LN:i annotation, the length of the sequence.
func (s *Segment) Length() (int64, bool, error) { return s.FieldIntegerOpt("LN") }

// ReadCount returns the RC:i annotation.
func (s *Segment) ReadCount() (int64, bool, error) { return s.FieldIntegerOpt("RC") }

// FragmentCount returns the FC:i annotation.
func (s *Segment) FragmentCount() (int64, bool, error) { return s.FieldIntegerOpt("FC") }

// KmerCount returns the KC:i annotation.
func (s *Segment) KmerCount() (int64, bool, error) { return s.FieldIntegerOpt("KC") }

// Checksum returns the SHA-256 checksum in the SH:H annotation.
func (s *Segment) Checksum() ([]byte, bool, error) { return s.FieldByteArrayOpt("SH") }

// URI returns the UR:Z annotation, the location of the sequence.
func (s *Segment) URI() (string, bool, error) { return s.FieldStringOpt("UR") }

// NewLink returns a link. An empty overlap means the overlap is
// absent.
func NewLink(source, target gfa.Reference, overlap string, tags annotation.Record) (*Link, error) {
	if err := checkReferences(source, target); err != nil {
		return nil, err
	}
	return &Link{Source: source, Target: target, Overlap: overlap, Record: tags}, nil
}

// HasOverlap reports whether the overlap of l is present.
func (l *Link) HasOverlap() bool { return l.Overlap != "" }

// MappingQuality returns the MQ:i annotation.
func (l *Link) MappingQuality() (int64, bool, error) { return l.FieldIntegerOpt("MQ") }

// Mismatches returns the NM:i annotation.
func (l *Link) Mismatches() (int64, bool, error) { return l.FieldIntegerOpt("NM") }

// EdgeID returns the ID:Z annotation.
func (l *Link) EdgeID() (string, bool, error) { return l.FieldStringOpt("ID") }

// NewContainment returns a containment. The position must not be
// negative.
func NewContainment(container, contained gfa.Reference, position int64, overlap string, tags annotation.Record) (*Containment, error) {
	if err := checkReferences(container, contained); err != nil {
		return nil, err
	}
	if position < 0 {
		return nil, &annotation.ConstraintError{Record: "containment", Reason: fmt.Sprintf("position must not be negative, found %d", position)}
	}
	return &Containment{Container: container, Contained: contained, Position: position, Overlap: overlap, Record: tags}, nil
}

// HasOverlap reports whether the overlap of c is present.
func (c *Containment) HasOverlap() bool { return c.Overlap != "" }

// NewPath returns a path. If overlaps is not empty, it must hold one
// overlap less than there are segments; an empty overlaps slice means
// the overlaps are absent.
func NewPath(name string, segments []gfa.Reference, overlaps []string, tags annotation.Record) (*Path, error) {
	if err := gfa.CheckID(name); err != nil {
		return nil, err
	}
	for _, segment := range segments {
		if err := checkReference(segment); err != nil {
			return nil, err
		}
	}
	if len(overlaps) == 0 {
		overlaps = nil
	} else if len(overlaps) != len(segments)-1 {
		return nil, &annotation.ConstraintError{
			Record: "path",
			Reason: fmt.Sprintf("%d overlaps given for %d segments, expected %d", len(overlaps), len(segments), len(segments)-1),
		}
	}
	return &Path{
		Name:     name,
		Segments: append([]gfa.Reference(nil), segments...),
		Overlaps: append([]string(nil), overlaps...),
		Record:   tags,
	}, nil
}

// HasOverlaps reports whether the overlaps of p are present.
func (p *Path) HasOverlaps() bool { return p.Overlaps != nil }

// NewTraversal returns a traversal. The ordinal must not be negative.
func NewTraversal(pathName string, ordinal int64, source, target gfa.Reference, overlap string, tags annotation.Record) (*Traversal, error) {
	if err := gfa.CheckID(pathName); err != nil {
		return nil, err
	}
	if err := checkReferences(source, target); err != nil {
		return nil, err
	}
	if ordinal < 0 {
		return nil, &annotation.ConstraintError{Record: "traversal", Reason: fmt.Sprintf("ordinal must not be negative, found %d", ordinal)}
	}
	return &Traversal{PathName: pathName, Ordinal: ordinal, Source: source, Target: target, Overlap: overlap, Record: tags}, nil
}

// HasOverlap reports whether the overlap of t is present.
func (t *Traversal) HasOverlap() bool { return t.Overlap != "" }

func checkReference(ref gfa.Reference) error {
	_, err := gfa.NewReference(ref.ID, ref.Orientation)
	return err
}

func checkReferences(refs ...gfa.Reference) error {
	for _, ref := range refs {
		if err := checkReference(ref); err != nil {
			return err
		}
	}
	return nil
}
