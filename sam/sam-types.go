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

package sam

import (
	"fmt"
	"strconv"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/utils"
)

// The version of the SAM format written into new @HD lines.
const (
	FileFormatVersion = "1.6"
	FileFormatDate    = "22 May 2018"
)

// IsHeaderUserTag reports whether a header record type code is
// reserved for users, that is whether it contains a lowercase letter.
func IsHeaderUserTag(code string) bool {
	for _, c := range code {
		if ('a' <= c) && (c <= 'z') {
			return true
		}
	}
	return false
}

// A HeaderLine is one line of a SAM header. Code is the record type
// including the @, such as "@SQ". Comment lines (@CO) have a Comment
// and no Fields.
type HeaderLine struct {
	Code    string
	Fields  utils.StringMap
	Comment string
}

// A Header holds the header lines of a SAM file in their original
// order.
type Header struct {
	Lines []HeaderLine
}

// NewHeader returns an empty header.
func NewHeader() *Header { return &Header{} }

// HD returns the fields of the @HD line, or nil if there is none.
func (hdr *Header) HD() utils.StringMap {
	if len(hdr.Lines) > 0 && hdr.Lines[0].Code == "@HD" {
		return hdr.Lines[0].Fields
	}
	return nil
}

// EnsureHD returns the fields of the @HD line, first adding an @HD
// line with the current format version if there is none.
func (hdr *Header) EnsureHD() *utils.StringMap {
	if len(hdr.Lines) == 0 || hdr.Lines[0].Code != "@HD" {
		hd := HeaderLine{Code: "@HD", Fields: utils.StringMap{{Key: "VN", Value: FileFormatVersion}}}
		hdr.Lines = append([]HeaderLine{hd}, hdr.Lines...)
	}
	return &hdr.Lines[0].Fields
}

// HD_SO returns the sorting order of the header, "unknown" if absent.
func (hdr *Header) HD_SO() string {
	if sortingOrder, found := hdr.HD().Get("SO"); found {
		return sortingOrder
	}
	return "unknown"
}

// SetHD_SO sets the sorting order and removes any grouping order.
func (hdr *Header) SetHD_SO(value string) {
	hd := hdr.EnsureHD()
	hd.Delete("GO")
	hd.Set("SO", value)
}

// HD_GO returns the grouping order of the header, "none" if absent.
func (hdr *Header) HD_GO() string {
	if groupingOrder, found := hdr.HD().Get("GO"); found {
		return groupingOrder
	}
	return "none"
}

// SetHD_GO sets the grouping order and removes any sorting order.
func (hdr *Header) SetHD_GO(value string) {
	hd := hdr.EnsureHD()
	hd.Delete("SO")
	hd.Set("GO", value)
}

// Records returns the fields of all lines with the given code, in
// order.
func (hdr *Header) Records(code string) []utils.StringMap {
	var records []utils.StringMap
	for _, line := range hdr.Lines {
		if line.Code == code {
			records = append(records, line.Fields)
		}
	}
	return records
}

// SQ returns the reference sequence dictionary.
func (hdr *Header) SQ() []utils.StringMap { return hdr.Records("@SQ") }

// RG returns the read groups.
func (hdr *Header) RG() []utils.StringMap { return hdr.Records("@RG") }

// PG returns the program lines.
func (hdr *Header) PG() []utils.StringMap { return hdr.Records("@PG") }

// CO returns the comments.
func (hdr *Header) CO() []string {
	var comments []string
	for _, line := range hdr.Lines {
		if line.Code == "@CO" {
			comments = append(comments, line.Comment)
		}
	}
	return comments
}

// AddRecord appends a header line with the given code and fields.
// An @HD line can only be added through EnsureHD.
func (hdr *Header) AddRecord(code string, fields utils.StringMap) error {
	switch {
	case code == "@SQ", code == "@RG", code == "@PG":
	case len(code) == 3 && code[0] == '@' && IsHeaderUserTag(code):
	default:
		return &annotation.FormatError{Token: code, Reason: "invalid header record type code"}
	}
	hdr.Lines = append(hdr.Lines, HeaderLine{Code: code, Fields: fields})
	return nil
}

// AddComment appends an @CO line.
func (hdr *Header) AddComment(comment string) {
	hdr.Lines = append(hdr.Lines, HeaderLine{Code: "@CO", Comment: comment})
}

// SQ_LN returns the LN field of an @SQ line.
func SQ_LN(record utils.StringMap) (int32, error) {
	ln, found := record.Get("LN")
	if !found {
		return 0x7FFFFFFF, &annotation.MissingKeyError{Key: "LN"}
	}
	val, err := strconv.ParseInt(ln, 10, 32)
	if err != nil {
		return 0x7FFFFFFF, &annotation.FormatError{Token: ln, Reason: "invalid LN field", Err: err}
	}
	return int32(val), nil
}

// SetSQ_LN sets the LN field of an @SQ line.
func SetSQ_LN(record *utils.StringMap, value int32) {
	record.Set("LN", strconv.FormatInt(int64(value), 10))
}

// An Alignment is one alignment line of a SAM file.
type Alignment struct {
	QNAME string
	FLAG  uint16
	RNAME string
	POS   int32
	MAPQ  byte
	CIGAR string
	RNEXT string
	PNEXT int32
	TLEN  int32
	SEQ   string
	QUAL  string
	annotation.Fields
}

// NewAlignment returns an alignment with the default values of all
// mandatory columns: * for strings, 0 for numbers, and 255 (not
// available) for MAPQ.
func NewAlignment() *Alignment {
	return &Alignment{
		QNAME: "*",
		RNAME: "*",
		MAPQ:  255,
		CIGAR: "*",
		RNEXT: "*",
		SEQ:   "*",
		QUAL:  "*",
	}
}

func (aln *Alignment) check() error {
	for _, column := range []struct {
		name, value string
	}{
		{"QNAME", aln.QNAME}, {"RNAME", aln.RNAME}, {"CIGAR", aln.CIGAR},
		{"RNEXT", aln.RNEXT}, {"SEQ", aln.SEQ}, {"QUAL", aln.QUAL},
	} {
		if column.value == "" {
			return &annotation.FormatError{Reason: "empty " + column.name}
		}
	}
	if aln.POS < 0 {
		return &annotation.ConstraintError{Record: "SAM alignment", Reason: fmt.Sprintf("POS must not be negative, found %d", aln.POS)}
	}
	if aln.PNEXT < 0 {
		return &annotation.ConstraintError{Record: "SAM alignment", Reason: fmt.Sprintf("PNEXT must not be negative, found %d", aln.PNEXT)}
	}
	return nil
}

// RG returns the read group of the alignment, from its RG:Z field.
func (aln *Alignment) RG() (string, bool, error) {
	return aln.FieldStringOpt("RG")
}

// Equal reports whether aln and other have equal columns and fields.
func (aln *Alignment) Equal(other *Alignment) bool {
	return aln.QNAME == other.QNAME && aln.FLAG == other.FLAG &&
		aln.RNAME == other.RNAME && aln.POS == other.POS &&
		aln.MAPQ == other.MAPQ && aln.CIGAR == other.CIGAR &&
		aln.RNEXT == other.RNEXT && aln.PNEXT == other.PNEXT &&
		aln.TLEN == other.TLEN && aln.SEQ == other.SEQ &&
		aln.QUAL == other.QUAL && aln.Fields.Equal(other.Fields)
}

// Bits of the FLAG column.
const (
	Multiple      = 0x1
	Proper        = 0x2
	Unmapped      = 0x4
	NextUnmapped  = 0x8
	Reversed      = 0x10
	NextReversed  = 0x20
	First         = 0x40
	Last          = 0x80
	Secondary     = 0x100
	QCFailed      = 0x200
	Duplicate     = 0x400
	Supplementary = 0x800
)

func (aln *Alignment) IsMultiple() bool      { return (aln.FLAG & Multiple) != 0 }
func (aln *Alignment) IsProper() bool        { return (aln.FLAG & Proper) != 0 }
func (aln *Alignment) IsUnmapped() bool      { return (aln.FLAG & Unmapped) != 0 }
func (aln *Alignment) IsNextUnmapped() bool  { return (aln.FLAG & NextUnmapped) != 0 }
func (aln *Alignment) IsReversed() bool      { return (aln.FLAG & Reversed) != 0 }
func (aln *Alignment) IsNextReversed() bool  { return (aln.FLAG & NextReversed) != 0 }
func (aln *Alignment) IsFirst() bool         { return (aln.FLAG & First) != 0 }
func (aln *Alignment) IsLast() bool          { return (aln.FLAG & Last) != 0 }
func (aln *Alignment) IsSecondary() bool     { return (aln.FLAG & Secondary) != 0 }
func (aln *Alignment) IsQCFailed() bool      { return (aln.FLAG & QCFailed) != 0 }
func (aln *Alignment) IsDuplicate() bool     { return (aln.FLAG & Duplicate) != 0 }
func (aln *Alignment) IsSupplementary() bool { return (aln.FLAG & Supplementary) != 0 }

func (aln *Alignment) FlagEvery(flag uint16) bool    { return (aln.FLAG & flag) == flag }
func (aln *Alignment) FlagSome(flag uint16) bool     { return (aln.FLAG & flag) != 0 }
func (aln *Alignment) FlagNotEvery(flag uint16) bool { return (aln.FLAG & flag) != flag }
func (aln *Alignment) FlagNotAny(flag uint16) bool   { return (aln.FLAG & flag) == 0 }

// A Builder assembles an Alignment column by column, starting from
// the defaults of NewAlignment. Use NewBuilder to create one.
type Builder struct {
	aln    Alignment
	fields annotation.FieldsBuilder
}

// NewBuilder returns a Builder holding the default columns.
func NewBuilder() *Builder {
	return new(Builder).Reset()
}

func (b *Builder) WithQNAME(qname string) *Builder { b.aln.QNAME = qname; return b }
func (b *Builder) WithFLAG(flag uint16) *Builder   { b.aln.FLAG = flag; return b }
func (b *Builder) WithRNAME(rname string) *Builder { b.aln.RNAME = rname; return b }
func (b *Builder) WithPOS(pos int32) *Builder      { b.aln.POS = pos; return b }
func (b *Builder) WithMAPQ(mapq byte) *Builder     { b.aln.MAPQ = mapq; return b }
func (b *Builder) WithCIGAR(cigar string) *Builder { b.aln.CIGAR = cigar; return b }
func (b *Builder) WithRNEXT(rnext string) *Builder { b.aln.RNEXT = rnext; return b }
func (b *Builder) WithPNEXT(pnext int32) *Builder  { b.aln.PNEXT = pnext; return b }
func (b *Builder) WithTLEN(tlen int32) *Builder    { b.aln.TLEN = tlen; return b }
func (b *Builder) WithSEQ(seq string) *Builder     { b.aln.SEQ = seq; return b }
func (b *Builder) WithQUAL(qual string) *Builder   { b.aln.QUAL = qual; return b }

// WithField adds a scalar optional field.
func (b *Builder) WithField(tag string, t annotation.Type, value string) *Builder {
	b.fields.WithField(tag, t, value)
	return b
}

// WithArrayField adds elements to an array optional field. Repeated
// calls for the same tag extend the same array.
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

// ReplaceArrayField replaces all values of an array optional field.
func (b *Builder) ReplaceArrayField(tag string, at annotation.ArrayType, values ...string) *Builder {
	b.fields.ReplaceArrayField(tag, at, values...)
	return b
}

// Reset restores the default columns and removes all optional fields.
func (b *Builder) Reset() *Builder {
	b.aln = *NewAlignment()
	b.fields.Reset()
	return b
}

// Build returns the alignment. b may be reused afterwards.
func (b *Builder) Build() (*Alignment, error) {
	fields, err := b.fields.Build()
	if err != nil {
		return nil, err
	}
	aln := b.aln
	aln.Fields = fields
	if err := aln.check(); err != nil {
		return nil, err
	}
	return &aln, nil
}

// Sam holds a complete SAM file in memory.
type Sam struct {
	Header     *Header
	Alignments []*Alignment
}

// NewSam returns an empty Sam.
func NewSam() *Sam { return &Sam{Header: NewHeader()} }
