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
	"fmt"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/gfa"
)

// Kind identifies a record type by the character that starts its
// lines.
type Kind byte

// The GFA 2.0 record types.
const (
	HeaderKind   Kind = 'H'
	SegmentKind  Kind = 'S'
	FragmentKind Kind = 'F'
	EdgeKind     Kind = 'E'
	GapKind      Kind = 'G'
	PathKind     Kind = 'O'
	SetKind      Kind = 'U'
)

const kindCodes = "HSFEGOU"

// AllKinds returns the set of all GFA 2.0 record types.
func AllKinds() gfa.Kinds {
	return gfa.NewKinds([]byte(kindCodes)...)
}

// ParseKinds parses a comma-separated list of GFA 2.0 record type
// characters, such as "S,E".
func ParseKinds(s string) (gfa.Kinds, error) {
	return gfa.ParseKinds(s, kindCodes)
}

func (k Kind) String() string {
	switch k {
	case HeaderKind:
		return "header"
	case SegmentKind:
		return "segment"
	case FragmentKind:
		return "fragment"
	case EdgeKind:
		return "edge"
	case GapKind:
		return "gap"
	case PathKind:
		return "path"
	case SetKind:
		return "set"
	default:
		return fmt.Sprintf("unknown record type %q", byte(k))
	}
}

// A Record is one line of a GFA 2.0 file.
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
	Length   int64
	Sequence string // empty if absent
	annotation.Record
}

// Fragment is an F line: part of an external sequence aligned to a
// segment.
type Fragment struct {
	SegmentID     string
	External      gfa.Reference
	SegmentStart  Position
	SegmentEnd    Position
	FragmentStart Position
	FragmentEnd   Position
	Alignment     string // empty if absent
	annotation.Record
}

// Edge is an E line, an alignment between intervals of two oriented
// segments.
type Edge struct {
	ID          string // empty if absent
	Source      gfa.Reference
	Target      gfa.Reference
	SourceStart Position
	SourceEnd   Position
	TargetStart Position
	TargetEnd   Position
	Alignment   string
	annotation.Record
}

// Gap is a G line, a distance estimate between two oriented segments.
type Gap struct {
	ID          string // empty if absent
	Source      gfa.Reference
	Target      gfa.Reference
	Distance    int64
	Variance    int64
	HasVariance bool
	annotation.Record
}

// Path is an O line, an ordered group of references to segments,
// edges or other groups.
type Path struct {
	ID         string // empty if absent
	References []gfa.Reference
	annotation.Record
}

// Set is a U line, an unordered group of identifiers.
type Set struct {
	ID  string // empty if absent
	IDs []string
	annotation.Record
}

func (*Header) Kind() Kind   { return HeaderKind }
func (*Segment) Kind() Kind  { return SegmentKind }
func (*Fragment) Kind() Kind { return FragmentKind }
func (*Edge) Kind() Kind     { return EdgeKind }
func (*Gap) Kind() Kind      { return GapKind }
func (*Path) Kind() Kind     { return PathKind }
func (*Set) Kind() Kind      { return SetKind }

// NewHeader returns a header with the given annotations.
func NewHeader(tags annotation.Record) *Header {
	return &Header{Record: tags}
}

// Version returns the VN:Z annotation of the header.
func (h *Header) Version() (string, bool, error) {
	return h.FieldStringOpt("VN")
}

// TracePointSpacing returns the TS:i annotation of the header.
func (h *Header) TracePointSpacing() (int64, bool, error) {
	return h.FieldIntegerOpt("TS")
}

// NewSegment returns a segment. The length must not be negative, and
// an empty sequence means the sequence is absent.
func NewSegment(id string, length int64, sequence string, tags annotation.Record) (*Segment, error) {
	if err := gfa.CheckID(id); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, &annotation.ConstraintError{Record: "segment", Reason: fmt.Sprintf("length must not be negative, found %d", length)}
	}
	return &Segment{ID: id, Length: length, Sequence: sequence, Record: tags}, nil
}

// HasSequence reports whether the sequence of s is present.
func (s *Segment) HasSequence() bool { return s.Sequence != "" }

// NewFragment returns a fragment.
func NewFragment(segmentID string, external gfa.Reference, segmentStart, segmentEnd, fragmentStart, fragmentEnd Position, alignment string, tags annotation.Record) (*Fragment, error) {
	if err := gfa.CheckID(segmentID); err != nil {
		return nil, err
	}
	if _, err := gfa.NewReference(external.ID, external.Orientation); err != nil {
		return nil, err
	}
	if err := checkInterval("fragment", segmentStart, segmentEnd); err != nil {
		return nil, err
	}
	if err := checkInterval("fragment", fragmentStart, fragmentEnd); err != nil {
		return nil, err
	}
	return &Fragment{
		SegmentID:     segmentID,
		External:      external,
		SegmentStart:  segmentStart,
		SegmentEnd:    segmentEnd,
		FragmentStart: fragmentStart,
		FragmentEnd:   fragmentEnd,
		Alignment:     alignment,
		Record:        tags,
	}, nil
}

// NewEdge returns an edge. An empty id means the identifier is absent.
func NewEdge(id string, source, target gfa.Reference, sourceStart, sourceEnd, targetStart, targetEnd Position, alignment string, tags annotation.Record) (*Edge, error) {
	if err := checkOptionalID(id); err != nil {
		return nil, err
	}
	if err := checkReferences(source, target); err != nil {
		return nil, err
	}
	if err := checkInterval("edge", sourceStart, sourceEnd); err != nil {
		return nil, err
	}
	if err := checkInterval("edge", targetStart, targetEnd); err != nil {
		return nil, err
	}
	return &Edge{
		ID:          id,
		Source:      source,
		Target:      target,
		SourceStart: sourceStart,
		SourceEnd:   sourceEnd,
		TargetStart: targetStart,
		TargetEnd:   targetEnd,
		Alignment:   alignment,
		Record:      tags,
	}, nil
}

// NewGap returns a gap. The variance, if present, must not be
// negative.
func NewGap(id string, source, target gfa.Reference, distance int64, variance int64, hasVariance bool, tags annotation.Record) (*Gap, error) {
	if err := checkOptionalID(id); err != nil {
		return nil, err
	}
	if err := checkReferences(source, target); err != nil {
		return nil, err
	}
	if hasVariance && variance < 0 {
		return nil, &annotation.ConstraintError{Record: "gap", Reason: fmt.Sprintf("variance must not be negative, found %d", variance)}
	}
	if !hasVariance {
		variance = 0
	}
	return &Gap{ID: id, Source: source, Target: target, Distance: distance, Variance: variance, HasVariance: hasVariance, Record: tags}, nil
}

// NewPath returns a path with at least one reference.
func NewPath(id string, references []gfa.Reference, tags annotation.Record) (*Path, error) {
	if err := checkOptionalID(id); err != nil {
		return nil, err
	}
	if len(references) == 0 {
		return nil, &annotation.ConstraintError{Record: "path", Reason: "a path needs at least one reference"}
	}
	if err := checkReferences(references...); err != nil {
		return nil, err
	}
	return &Path{ID: id, References: append([]gfa.Reference(nil), references...), Record: tags}, nil
}

// NewSet returns a set with at least one identifier.
func NewSet(id string, ids []string, tags annotation.Record) (*Set, error) {
	if err := checkOptionalID(id); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, &annotation.ConstraintError{Record: "set", Reason: "a set needs at least one identifier"}
	}
	for _, member := range ids {
		if err := gfa.CheckID(member); err != nil {
			return nil, err
		}
	}
	return &Set{ID: id, IDs: append([]string(nil), ids...), Record: tags}, nil
}

func checkOptionalID(id string) error {
	if id == "" {
		return nil
	}
	return gfa.CheckID(id)
}

func checkReferences(refs ...gfa.Reference) error {
	for _, ref := range refs {
		if _, err := gfa.NewReference(ref.ID, ref.Orientation); err != nil {
			return err
		}
	}
	return nil
}

func checkInterval(record string, start, end Position) error {
	if start.Offset < 0 || end.Offset < 0 {
		return &annotation.ConstraintError{Record: record, Reason: "positions must not be negative"}
	}
	if start.Offset > end.Offset {
		return &annotation.ConstraintError{
			Record: record,
			Reason: fmt.Sprintf("interval start %v is after its end %v", start, end),
		}
	}
	return nil
}
