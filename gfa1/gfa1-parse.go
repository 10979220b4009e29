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
	"strings"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/gfa"
)

type recordParser func(tokens []string) (Record, error)

var recordParseTable = map[string]recordParser{
	"H": parseHeader,
	"S": parseSegment,
	"L": parseLink,
	"C": parseContainment,
	"P": parsePath,
	"t": parseTraversal,
}

// ParseRecord parses a GFA 1.0 line of any record type.
func ParseRecord(line string) (Record, error) {
	tokens := gfa.Split(line)
	parse, ok := recordParseTable[tokens[0]]
	if !ok {
		return nil, &annotation.FormatError{Column: 1, Token: tokens[0], Reason: "unknown GFA 1.0 record type"}
	}
	return parse(tokens)
}

func parseKind(line string, kind Kind) (Record, error) {
	tokens := gfa.Split(line)
	if err := gfa.CheckKind(tokens, byte(kind)); err != nil {
		return nil, err
	}
	return recordParseTable[tokens[0]](tokens)
}

// ParseHeader parses an H line.
func ParseHeader(line string) (*Header, error) {
	r, err := parseKind(line, HeaderKind)
	if err != nil {
		return nil, err
	}
	return r.(*Header), nil
}

// ParseSegment parses an S line.
func ParseSegment(line string) (*Segment, error) {
	r, err := parseKind(line, SegmentKind)
	if err != nil {
		return nil, err
	}
	return r.(*Segment), nil
}

// ParseLink parses an L line.
func ParseLink(line string) (*Link, error) {
	r, err := parseKind(line, LinkKind)
	if err != nil {
		return nil, err
	}
	return r.(*Link), nil
}

// ParseContainment parses a C line.
func ParseContainment(line string) (*Containment, error) {
	r, err := parseKind(line, ContainmentKind)
	if err != nil {
		return nil, err
	}
	return r.(*Containment), nil
}

// ParsePath parses a P line.
func ParsePath(line string) (*Path, error) {
	r, err := parseKind(line, PathKind)
	if err != nil {
		return nil, err
	}
	return r.(*Path), nil
}

// ParseTraversal parses a t line.
func ParseTraversal(line string) (*Traversal, error) {
	r, err := parseKind(line, TraversalKind)
	if err != nil {
		return nil, err
	}
	return r.(*Traversal), nil
}

func parseHeader(tokens []string) (Record, error) {
	tags, err := gfa.ParseAnnotations(tokens, 2)
	if err != nil {
		return nil, err
	}
	return NewHeader(tags), nil
}

func parseSegment(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 3, "segment"); err != nil {
		return nil, err
	}
	id, err := gfa.ParseID(tokens, 2)
	if err != nil {
		return nil, err
	}
	tags, err := gfa.ParseAnnotations(tokens, 4)
	if err != nil {
		return nil, err
	}
	r, err := NewSegment(id, gfa.Optional(tokens[2]), tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseReference(tokens []string, column int) (ref gfa.Reference, err error) {
	if ref.ID, err = gfa.ParseID(tokens, column); err != nil {
		return
	}
	ref.Orientation, err = gfa.ParseOrientationAt(tokens, column+1)
	return
}

func parseLink(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 6, "link"); err != nil {
		return nil, err
	}
	source, err := parseReference(tokens, 2)
	if err != nil {
		return nil, err
	}
	target, err := parseReference(tokens, 4)
	if err != nil {
		return nil, err
	}
	tags, err := gfa.ParseAnnotations(tokens, 7)
	if err != nil {
		return nil, err
	}
	r, err := NewLink(source, target, gfa.Optional(tokens[5]), tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseContainment(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 7, "containment"); err != nil {
		return nil, err
	}
	container, err := parseReference(tokens, 2)
	if err != nil {
		return nil, err
	}
	contained, err := parseReference(tokens, 4)
	if err != nil {
		return nil, err
	}
	position, err := gfa.ParseCount(tokens, 6, "containment", "position")
	if err != nil {
		return nil, err
	}
	tags, err := gfa.ParseAnnotations(tokens, 8)
	if err != nil {
		return nil, err
	}
	r, err := NewContainment(container, contained, position, gfa.Optional(tokens[6]), tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parsePath(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 4, "path"); err != nil {
		return nil, err
	}
	name, err := gfa.ParseID(tokens, 2)
	if err != nil {
		return nil, err
	}
	segments, err := gfa.ParseReferences(gfa.Optional(tokens[2]), ",")
	if err != nil {
		return nil, annotation.AtColumn(err, 3, tokens[2])
	}
	var overlaps []string
	if token := gfa.Optional(tokens[3]); token != "" {
		overlaps = strings.Split(token, ",")
	}
	tags, err := gfa.ParseAnnotations(tokens, 5)
	if err != nil {
		return nil, err
	}
	r, err := NewPath(name, segments, overlaps, tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseTraversal(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 8, "traversal"); err != nil {
		return nil, err
	}
	pathName, err := gfa.ParseID(tokens, 2)
	if err != nil {
		return nil, err
	}
	ordinal, err := gfa.ParseCount(tokens, 3, "traversal", "ordinal")
	if err != nil {
		return nil, err
	}
	source, err := parseReference(tokens, 4)
	if err != nil {
		return nil, err
	}
	target, err := parseReference(tokens, 6)
	if err != nil {
		return nil, err
	}
	tags, err := gfa.ParseAnnotations(tokens, 9)
	if err != nil {
		return nil, err
	}
	r, err := NewTraversal(pathName, ordinal, source, target, gfa.Optional(tokens[7]), tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}
