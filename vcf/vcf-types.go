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

// Package vcf parses, represents and writes the header of VCF files:
// the ##fileformat line, the meta-information lines and the #CHROM
// column line.
//
// Structured meta-information lines of the form ##KEY=<A=v,...> keep
// their attributes in input order, including whether a value was
// quoted, so that formatting a parsed line reproduces it. INFO, FORMAT,
// FILTER, ALT, contig, META, SAMPLE and PEDIGREE lines additionally
// expose their typed attributes.
package vcf

import (
	"strconv"

	"github.com/exascience/dshbio/annotation"
)

// The supported VCF file format version.
const (
	FileFormatVersion = "VCFv4.3"
	fileFormatPrefix  = "VCFv4."
)

// DefaultHeaderColumns are the mandatory columns of the #CHROM line.
var DefaultHeaderColumns = []string{"CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

// Type is an enumeration type for the Type attribute of INFO and
// FORMAT lines.
type Type uint

// The different VCF field types
const (
	InvalidType Type = iota
	Integer
	Float
	Flag
	Character
	String
)

var typeNames = [...]string{"", "Integer", "Float", "Flag", "Character", "String"}

func (t Type) String() string {
	if t > String {
		return ""
	}
	return typeNames[t]
}

// ParseType parses the Type attribute of an INFO or FORMAT line.
func ParseType(s string) (Type, error) {
	for t := Integer; t <= String; t++ {
		if typeNames[t] == s {
			return t, nil
		}
	}
	return InvalidType, &annotation.FormatError{Token: s, Reason: "invalid Type"}
}

// Constants for the Number attribute of INFO and FORMAT lines that
// are not a fixed count.
const (
	NumberA int32 = -1 * (1 + iota) // one value per alternate allele
	NumberR                         // one value per allele, including the reference
	NumberG                         // one value per genotype
	NumberDot                       // unknown or unbounded
	InvalidNumber
)

// ParseNumber parses the Number attribute of an INFO or FORMAT line.
func ParseNumber(s string) (int32, error) {
	switch s {
	case "A":
		return NumberA, nil
	case "R":
		return NumberR, nil
	case "G":
		return NumberG, nil
	case ".":
		return NumberDot, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return InvalidNumber, &annotation.FormatError{Token: s, Reason: "invalid Number", Err: err}
	}
	if n < 0 {
		return InvalidNumber, &annotation.FormatError{Token: s, Reason: "negative Number"}
	}
	return int32(n), nil
}

// FormatNumber returns the textual form of a Number attribute.
func FormatNumber(n int32) string {
	switch n {
	case NumberA:
		return "A"
	case NumberR:
		return "R"
	case NumberG:
		return "G"
	case NumberDot:
		return "."
	}
	return strconv.FormatInt(int64(n), 10)
}

// A HeaderLine is one meta-information line of a VCF header.
type HeaderLine interface {
	Key() string
	AppendFormat(out []byte) []byte
	String() string
}

// An Attribute is one KEY=value pair of a structured line.
type Attribute struct {
	Key, Value string
	Quoted     bool
}

// Unstructured is a ##key=value line.
type Unstructured struct {
	Name, Value string
}

// Structured is a ##KEY=<A=v,...> line. Attributes are kept in input
// order.
type Structured struct {
	Name       string
	Attributes []Attribute
}

// FieldInfo is an INFO or FORMAT line.
type FieldInfo struct {
	Structured
	ID          string
	Number      int32
	Type        Type
	Description string
}

// Definition is a FILTER or ALT line.
type Definition struct {
	Structured
	ID, Description string
}

// Contig is a contig line. Length is only meaningful if HasLength.
type Contig struct {
	Structured
	ID        string
	Length    int64
	HasLength bool
}

// Identified is a META, SAMPLE or PEDIGREE line, or any other
// structured line, identified by its ID.
type Identified struct {
	Structured
	ID string
}

// Key returns the key of the line.
func (line *Unstructured) Key() string { return line.Name }

// Key returns the key of the line.
func (line Structured) Key() string { return line.Name }

// Get returns the value of the attribute with the given key.
func (line Structured) Get(key string) (string, bool) {
	for _, a := range line.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// IsInfo reports whether info is an INFO line rather than a FORMAT
// line.
func (info *FieldInfo) IsInfo() bool { return info.Name == "INFO" }

// Header is the header of a VCF file.
type Header struct {
	FileFormat string
	Lines      []HeaderLine
	Columns    []string
}

// NewHeader returns a header for the current format version with the
// default columns and no meta-information lines.
func NewHeader() *Header {
	return &Header{
		FileFormat: FileFormatVersion,
		Columns:    append([]string(nil), DefaultHeaderColumns...),
	}
}

// Add appends a meta-information line.
func (hdr *Header) Add(line HeaderLine) {
	hdr.Lines = append(hdr.Lines, line)
}

// Infos returns the INFO lines in order.
func (hdr *Header) Infos() (infos []*FieldInfo) {
	for _, line := range hdr.Lines {
		if info, ok := line.(*FieldInfo); ok && info.IsInfo() {
			infos = append(infos, info)
		}
	}
	return infos
}

// Formats returns the FORMAT lines in order.
func (hdr *Header) Formats() (formats []*FieldInfo) {
	for _, line := range hdr.Lines {
		if format, ok := line.(*FieldInfo); ok && !format.IsInfo() {
			formats = append(formats, format)
		}
	}
	return formats
}

// Filters returns the FILTER lines in order.
func (hdr *Header) Filters() (filters []*Definition) {
	for _, line := range hdr.Lines {
		if filter, ok := line.(*Definition); ok && filter.Name == "FILTER" {
			filters = append(filters, filter)
		}
	}
	return filters
}

// Contigs returns the contig lines in order.
func (hdr *Header) Contigs() (contigs []*Contig) {
	for _, line := range hdr.Lines {
		if contig, ok := line.(*Contig); ok {
			contigs = append(contigs, contig)
		}
	}
	return contigs
}

// Info returns the INFO line with the given ID.
func (hdr *Header) Info(id string) (*FieldInfo, bool) {
	for _, info := range hdr.Infos() {
		if info.ID == id {
			return info, true
		}
	}
	return nil, false
}

// Format returns the FORMAT line with the given ID.
func (hdr *Header) Format(id string) (*FieldInfo, bool) {
	for _, format := range hdr.Formats() {
		if format.ID == id {
			return format, true
		}
	}
	return nil, false
}

// Samples returns the sample names of the #CHROM line.
func (hdr *Header) Samples() []string {
	if len(hdr.Columns) <= len(DefaultHeaderColumns)+1 {
		return nil
	}
	return hdr.Columns[len(DefaultHeaderColumns)+1:]
}
