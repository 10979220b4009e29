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

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/gfa"
)

type recordParser func(tokens []string) (Record, error)

var recordParseTable = map[string]recordParser{
	"H": parseHeader,
	"S": parseSegment,
	"F": parseFragment,
	"E": parseEdge,
	"G": parseGap,
	"O": parsePath,
	"U": parseSet,
}

// ParseRecord parses a GFA 2.0 line of any record type.
func ParseRecord(line string) (Record, error) {
	tokens := gfa.Split(line)
	parse, ok := recordParseTable[tokens[0]]
	if !ok {
		return nil, &annotation.FormatError{Column: 1, Token: tokens[0], Reason: "unknown GFA 2.0 record type"}
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

// ParseSegment parses an S line.
func ParseSegment(line string) (*Segment, error) {
	r, err := parseKind(line, SegmentKind)
	if err != nil {
		return nil, err
	}
	return r.(*Segment), nil
}

// ParseFragment parses an F line.
func ParseFragment(line string) (*Fragment, error) {
	r, err := parseKind(line, FragmentKind)
	if err != nil {
		return nil, err
	}
	return r.(*Fragment), nil
}

// ParseEdge parses an E line.
func ParseEdge(line string) (*Edge, error) {
	r, err := parseKind(line, EdgeKind)
	if err != nil {
		return nil, err
	}
	return r.(*Edge), nil
}

// ParseGap parses a G line.
func ParseGap(line string) (*Gap, error) {
	r, err := parseKind(line, GapKind)
	if err != nil {
		return nil, err
	}
	return r.(*Gap), nil
}

// ParsePath parses an O line.
func ParsePath(line string) (*Path, error) {
	r, err := parseKind(line, PathKind)
	if err != nil {
		return nil, err
	}
	return r.(*Path), nil
}

// ParseSet parses a U line.
func ParseSet(line string) (*Set, error) {
	r, err := parseKind(line, SetKind)
	if err != nil {
		return nil, err
	}
	return r.(*Set), nil
}

func parseOptionalID(tokens []string, column int) (string, error) {
	if tokens[column-1] == gfa.Absent {
		return "", nil
	}
	return gfa.ParseID(tokens, column)
}

func parseReferenceAt(tokens []string, column int) (gfa.Reference, error) {
	token := tokens[column-1]
	ref, err := gfa.ParseReference(token)
	return ref, annotation.AtColumn(err, column, token)
}

func parsePositionAt(tokens []string, column int) (Position, error) {
	token := tokens[column-1]
	p, err := ParsePosition(token)
	if _, ok := err.(*annotation.FormatError); ok {
		return p, annotation.AtColumn(err, column, token)
	}
	return p, err
}

func parsePositions(tokens []string, column int, positions ...*Position) (err error) {
	for i, p := range positions {
		if *p, err = parsePositionAt(tokens, column+i); err != nil {
			return err
		}
	}
	return nil
}

func parseHeader(tokens []string) (Record, error) {
	tags, err := gfa.ParseAnnotations(tokens, 2)
	if err != nil {
		return nil, err
	}
	return NewHeader(tags), nil
}

func parseSegment(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 4, "segment"); err != nil {
		return nil, err
	}
	id, err := gfa.ParseID(tokens, 2)
	if err != nil {
		return nil, err
	}
	length, err := gfa.ParseCount(tokens, 3, "segment", "length")
	if err != nil {
		return nil, err
	}
	tags, err := gfa.ParseAnnotations(tokens, 5)
	if err != nil {
		return nil, err
	}
	r, err := NewSegment(id, length, gfa.Optional(tokens[3]), tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseFragment(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 8, "fragment"); err != nil {
		return nil, err
	}
	segmentID, err := gfa.ParseID(tokens, 2)
	if err != nil {
		return nil, err
	}
	external, err := parseReferenceAt(tokens, 3)
	if err != nil {
		return nil, err
	}
	var sbeg, send, fbeg, fend Position
	if err := parsePositions(tokens, 4, &sbeg, &send, &fbeg, &fend); err != nil {
		return nil, err
	}
	tags, err := gfa.ParseAnnotations(tokens, 9)
	if err != nil {
		return nil, err
	}
	r, err := NewFragment(segmentID, external, sbeg, send, fbeg, fend, gfa.Optional(tokens[7]), tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseEdge(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 9, "edge"); err != nil {
		return nil, err
	}
	id, err := parseOptionalID(tokens, 2)
	if err != nil {
		return nil, err
	}
	source, err := parseReferenceAt(tokens, 3)
	if err != nil {
		return nil, err
	}
	target, err := parseReferenceAt(tokens, 4)
	if err != nil {
		return nil, err
	}
	var beg1, end1, beg2, end2 Position
	if err := parsePositions(tokens, 5, &beg1, &end1, &beg2, &end2); err != nil {
		return nil, err
	}
	tags, err := gfa.ParseAnnotations(tokens, 10)
	if err != nil {
		return nil, err
	}
	r, err := NewEdge(id, source, target, beg1, end1, beg2, end2, gfa.Optional(tokens[8]), tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseGap(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 6, "gap"); err != nil {
		return nil, err
	}
	id, err := parseOptionalID(tokens, 2)
	if err != nil {
		return nil, err
	}
	source, err := parseReferenceAt(tokens, 3)
	if err != nil {
		return nil, err
	}
	target, err := parseReferenceAt(tokens, 4)
	if err != nil {
		return nil, err
	}
	distance, err := strconv.ParseInt(tokens[4], 10, 64)
	if err != nil {
		return nil, &annotation.FormatError{Column: 5, Token: tokens[4], Reason: "invalid distance", Err: err}
	}
	var variance int64
	hasVariance := tokens[5] != gfa.Absent
	if hasVariance {
		if variance, err = gfa.ParseCount(tokens, 6, "gap", "variance"); err != nil {
			return nil, err
		}
	}
	tags, err := gfa.ParseAnnotations(tokens, 7)
	if err != nil {
		return nil, err
	}
	r, err := NewGap(id, source, target, distance, variance, hasVariance, tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parsePath(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 3, "path"); err != nil {
		return nil, err
	}
	id, err := parseOptionalID(tokens, 2)
	if err != nil {
		return nil, err
	}
	refs, err := gfa.ParseReferences(tokens[2], " ")
	if err != nil {
		return nil, annotation.AtColumn(err, 3, tokens[2])
	}
	tags, err := gfa.ParseAnnotations(tokens, 4)
	if err != nil {
		return nil, err
	}
	r, err := NewPath(id, refs, tags)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func parseSet(tokens []string) (Record, error) {
	if err := gfa.CheckColumns(tokens, 3, "set"); err != nil {
		return nil, err
	}
	id, err := parseOptionalID(tokens, 2)
	if err != nil {
		return nil, err
	}
	var ids []string
	if tokens[2] != "" {
		ids = strings.Split(tokens[2], " ")
	}
	tags, err := gfa.ParseAnnotations(tokens, 4)
	if err != nil {
		return nil, err
	}
	r, err := NewSet(id, ids, tags)
	if err != nil {
		return nil, annotation.AtColumn(err, 3, tokens[2])
	}
	return r, nil
}
