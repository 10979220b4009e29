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

package paf

import (
	"fmt"

	"github.com/exascience/dshbio/annotation"
)

// Strand is the relative strand of query and target.
type Strand byte

// The two strands.
const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

// ParseStrand parses "+" or "-".
func ParseStrand(s string) (Strand, error) {
	if len(s) == 1 {
		switch st := Strand(s[0]); st {
		case Forward, Reverse:
			return st, nil
		}
	}
	return 0, &annotation.FormatError{Token: s, Reason: "invalid strand"}
}

// Valid reports whether s is Forward or Reverse.
func (s Strand) Valid() bool {
	return s == Forward || s == Reverse
}

func (s Strand) String() string {
	return string(rune(s))
}

// MissingMappingQuality is the mapping quality of a mapping whose
// quality is not available.
const MissingMappingQuality = 255

// A Record is one PAF line.
type Record struct {
	QueryName            string
	QueryLength          int64
	QueryStart           int64 // 0-based, inclusive
	QueryEnd             int64 // 0-based, exclusive
	Strand               Strand
	TargetName           string
	TargetLength         int64
	TargetStart          int64
	TargetEnd            int64
	Matches              int64 // number of matching residues
	AlignmentBlockLength int64 // number of residues in the mapping, including gaps
	MappingQuality       int64
	annotation.Fields
}

func (r *Record) check() error {
	if r.QueryName == "" {
		return &annotation.FormatError{Reason: "empty query name"}
	}
	if r.TargetName == "" {
		return &annotation.FormatError{Reason: "empty target name"}
	}
	if !r.Strand.Valid() {
		return &annotation.FormatError{Token: string(rune(r.Strand)), Reason: "invalid strand"}
	}
	for _, column := range []struct {
		name  string
		value int64
	}{
		{"query length", r.QueryLength},
		{"query start", r.QueryStart},
		{"query end", r.QueryEnd},
		{"target length", r.TargetLength},
		{"target start", r.TargetStart},
		{"target end", r.TargetEnd},
		{"number of matches", r.Matches},
		{"alignment block length", r.AlignmentBlockLength},
		{"mapping quality", r.MappingQuality},
	} {
		if column.value < 0 {
			return &annotation.ConstraintError{Record: "PAF", Reason: fmt.Sprintf("%v must not be negative, found %d", column.name, column.value)}
		}
	}
	return nil
}

// AlignmentType returns the tp:A field: P for primary, S for
// secondary, I or i for inversions.
func (r *Record) AlignmentType() (byte, bool, error) { return r.FieldCharacterOpt("tp") }

// Cigar returns the cg:Z field.
func (r *Record) Cigar() (string, bool, error) { return r.FieldStringOpt("cg") }

// EditDistance returns the NM:i field.
func (r *Record) EditDistance() (int64, bool, error) { return r.FieldIntegerOpt("NM") }

// IsPrimary reports whether the tp:A field marks r as a primary
// mapping. Records without tp:A count as primary.
func (r *Record) IsPrimary() bool {
	tp, ok, err := r.AlignmentType()
	return err == nil && (!ok || tp == 'P')
}

// Equal reports whether r and other have equal columns and fields.
func (r *Record) Equal(other *Record) bool {
	return r.QueryName == other.QueryName && r.QueryLength == other.QueryLength &&
		r.QueryStart == other.QueryStart && r.QueryEnd == other.QueryEnd &&
		r.Strand == other.Strand && r.TargetName == other.TargetName &&
		r.TargetLength == other.TargetLength && r.TargetStart == other.TargetStart &&
		r.TargetEnd == other.TargetEnd && r.Matches == other.Matches &&
		r.AlignmentBlockLength == other.AlignmentBlockLength &&
		r.MappingQuality == other.MappingQuality && r.Fields.Equal(other.Fields)
}

// A Builder assembles a Record column by column. Errors in optional
// fields are remembered and returned by Build. The zero Builder is
// ready to use.
type Builder struct {
	record Record
	fields annotation.FieldsBuilder
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return new(Builder)
}

func (b *Builder) WithQueryName(name string) *Builder     { b.record.QueryName = name; return b }
func (b *Builder) WithQueryLength(length int64) *Builder  { b.record.QueryLength = length; return b }
func (b *Builder) WithQueryStart(start int64) *Builder    { b.record.QueryStart = start; return b }
func (b *Builder) WithQueryEnd(end int64) *Builder        { b.record.QueryEnd = end; return b }
func (b *Builder) WithStrand(strand Strand) *Builder      { b.record.Strand = strand; return b }
func (b *Builder) WithTargetName(name string) *Builder    { b.record.TargetName = name; return b }
func (b *Builder) WithTargetLength(length int64) *Builder { b.record.TargetLength = length; return b }
func (b *Builder) WithTargetStart(start int64) *Builder   { b.record.TargetStart = start; return b }
func (b *Builder) WithTargetEnd(end int64) *Builder       { b.record.TargetEnd = end; return b }
func (b *Builder) WithMatches(matches int64) *Builder     { b.record.Matches = matches; return b }
func (b *Builder) WithAlignmentBlockLength(length int64) *Builder {
	b.record.AlignmentBlockLength = length
	return b
}

func (b *Builder) WithMappingQuality(mapq int64) *Builder { b.record.MappingQuality = mapq; return b }

// WithField adds a scalar optional field.
func (b *Builder) WithField(tag string, t annotation.Type, value string) *Builder {
	b.fields.WithField(tag, t, value)
	return b
}

// WithArrayField adds elements to an array optional field.
func (b *Builder) WithArrayField(tag string, at annotation.ArrayType, values ...string) *Builder {
	b.fields.WithArrayField(tag, at, values...)
	return b
}

// WithAnnotation adds the values of a.
func (b *Builder) WithAnnotation(a annotation.Annotation) *Builder {
	b.fields.WithAnnotation(a)
	return b
}

// ReplaceField replaces all values of an optional field.
func (b *Builder) ReplaceField(tag string, t annotation.Type, value string) *Builder {
	b.fields.ReplaceField(tag, t, value)
	return b
}

// Reset clears b to the state of a new Builder.
func (b *Builder) Reset() *Builder {
	b.record = Record{}
	b.fields.Reset()
	return b
}

// Build returns the record. It fails if a column is invalid or an
// optional field could not be added. b may be reused afterwards.
func (b *Builder) Build() (*Record, error) {
	fields, err := b.fields.Build()
	if err != nil {
		return nil, err
	}
	record := b.record
	record.Fields = fields
	if err := record.check(); err != nil {
		return nil, err
	}
	return &record, nil
}
