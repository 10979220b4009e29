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

package vcf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/exascience/dshbio/annotation"
)

var (
	structuredLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "List", Pattern: `\[[^\]"]*\]`},
		{Name: "Punct", Pattern: `[<>,=]`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Word", Pattern: `[^<>,="\s]([^<>,="]*[^<>,="\s])?`},
	})
	structuredParser = participle.MustBuild[structuredGrammar](
		participle.Lexer(structuredLexer),
		participle.Elide("Whitespace"),
	)
)

type structuredGrammar struct {
	Attributes []*attributeGrammar `"<" ( @@ ( "," @@ )* )? ">"`
}

type attributeGrammar struct {
	Key    string  `@Word "="`
	Quoted *string `( @String`
	Plain  *string `| @( List | Word ) )?`
}

func unquote(s string) string {
	s = s[1 : len(s)-1]
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		buf.WriteByte(s[i])
	}
	return buf.String()
}

func appendQuoted(out []byte, s string) []byte {
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		if b := s[i]; b == '"' || b == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return append(out, '"')
}

func needsQuotes(s string) bool {
	return strings.ContainsAny(s, "\" ,<>=\\")
}

// ParseStructured parses the <A=v,...> part of a structured line with
// the given key. A key that occurs twice is an error.
func ParseStructured(name, value string) (*Structured, error) {
	grammar, err := structuredParser.ParseString("", value)
	if err != nil {
		return nil, &annotation.FormatError{Token: value, Reason: "invalid structured meta-information line", Err: err}
	}
	line := &Structured{Name: name, Attributes: make([]Attribute, 0, len(grammar.Attributes))}
	for _, a := range grammar.Attributes {
		if _, found := line.Get(a.Key); found {
			return nil, &annotation.FormatError{Token: a.Key, Reason: "duplicate attribute key in a VCF meta-information line"}
		}
		attribute := Attribute{Key: a.Key}
		switch {
		case a.Quoted != nil:
			attribute.Value, attribute.Quoted = unquote(*a.Quoted), true
		case a.Plain != nil:
			attribute.Value = *a.Plain
		}
		line.Attributes = append(line.Attributes, attribute)
	}
	return line, nil
}

// NewStructured returns a structured line with the given attributes.
// Values that contain delimiters are quoted.
func NewStructured(name string, attributes ...Attribute) (*Structured, error) {
	if !validKey(name) {
		return nil, &annotation.FormatError{Token: name, Reason: "invalid VCF meta-information key"}
	}
	line := &Structured{Name: name}
	for _, a := range attributes {
		if !validKey(a.Key) {
			return nil, &annotation.FormatError{Token: a.Key, Reason: "invalid attribute key"}
		}
		if _, found := line.Get(a.Key); found {
			return nil, &annotation.FormatError{Token: a.Key, Reason: "duplicate attribute key in a VCF meta-information line"}
		}
		if strings.ContainsAny(a.Value, "\t\n\r") {
			return nil, &annotation.FormatError{Token: a.Value, Reason: "invalid attribute value"}
		}
		if needsQuotes(a.Value) {
			a.Quoted = true
		}
		line.Attributes = append(line.Attributes, a)
	}
	return line, nil
}

func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, "<>,=\" \t\n\r")
}

func required(line *Structured, key string) (string, error) {
	if value, found := line.Get(key); found {
		return value, nil
	}
	return "", &annotation.FormatError{
		Token:  line.Name,
		Reason: "missing attribute in a VCF meta-information line",
		Err:    &annotation.MissingKeyError{Key: key},
	}
}

func decodeFieldInfo(line *Structured) (HeaderLine, error) {
	info := &FieldInfo{Structured: *line}
	var err error
	if info.ID, err = required(line, "ID"); err != nil {
		return nil, err
	}
	number, err := required(line, "Number")
	if err != nil {
		return nil, err
	}
	if info.Number, err = ParseNumber(number); err != nil {
		return nil, err
	}
	typ, err := required(line, "Type")
	if err != nil {
		return nil, err
	}
	if info.Type, err = ParseType(typ); err != nil {
		return nil, err
	}
	if info.Description, err = required(line, "Description"); err != nil {
		return nil, err
	}
	if info.Type == Flag {
		if !info.IsInfo() {
			return nil, &annotation.ConstraintError{Record: "FORMAT " + info.ID, Reason: "FORMAT fields cannot have Type Flag"}
		}
		if info.Number != 0 {
			return nil, &annotation.ConstraintError{Record: "INFO " + info.ID, Reason: "Flag fields must have Number 0"}
		}
	}
	return info, nil
}

func decodeDefinition(line *Structured) (HeaderLine, error) {
	def := &Definition{Structured: *line}
	var err error
	if def.ID, err = required(line, "ID"); err != nil {
		return nil, err
	}
	if def.Description, err = required(line, "Description"); err != nil {
		return nil, err
	}
	return def, nil
}

func decodeContig(line *Structured) (HeaderLine, error) {
	contig := &Contig{Structured: *line}
	var err error
	if contig.ID, err = required(line, "ID"); err != nil {
		return nil, err
	}
	if length, found := line.Get("length"); found {
		if contig.Length, err = strconv.ParseInt(length, 10, 64); err != nil {
			return nil, &annotation.FormatError{Token: length, Reason: "invalid contig length", Err: err}
		}
		if contig.Length < 0 {
			return nil, &annotation.ConstraintError{Record: "contig " + contig.ID, Reason: fmt.Sprintf("length must not be negative, found %d", contig.Length)}
		}
		contig.HasLength = true
	}
	return contig, nil
}

func decodeIdentified(line *Structured) (HeaderLine, error) {
	id, err := required(line, "ID")
	if err != nil {
		return nil, err
	}
	return &Identified{Structured: *line, ID: id}, nil
}

var structuredDecodeTable = map[string]func(*Structured) (HeaderLine, error){
	"INFO":   decodeFieldInfo,
	"FORMAT": decodeFieldInfo,
	"FILTER": decodeDefinition,
	"ALT":    decodeDefinition,
	"contig": decodeContig,
}

// Decode returns the typed form of a structured line. Lines with
// unknown keys, and META, SAMPLE and PEDIGREE lines, are returned as
// *Identified.
func Decode(line *Structured) (HeaderLine, error) {
	if decode, ok := structuredDecodeTable[line.Name]; ok {
		return decode(line)
	}
	return decodeIdentified(line)
}

// ParseHeaderLine parses one ##KEY=value or ##KEY=<A=v,...>
// meta-information line.
func ParseHeaderLine(line string) (HeaderLine, error) {
	if !strings.HasPrefix(line, "##") {
		return nil, &annotation.FormatError{Token: line, Reason: "VCF meta-information line does not start with ##"}
	}
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return nil, &annotation.FormatError{Token: line, Reason: "missing = in a VCF meta-information line"}
	}
	key, value := line[2:eq], line[eq+1:]
	if !validKey(key) {
		return nil, &annotation.FormatError{Token: key, Reason: "invalid VCF meta-information key"}
	}
	if !strings.HasPrefix(value, "<") {
		return &Unstructured{Name: key, Value: value}, nil
	}
	structured, err := ParseStructured(key, value)
	if err != nil {
		return nil, err
	}
	return Decode(structured)
}

// NewInfo returns an INFO line.
func NewInfo(id string, number int32, t Type, description string) (*FieldInfo, error) {
	return newFieldInfo("INFO", id, number, t, description)
}

// NewFormat returns a FORMAT line.
func NewFormat(id string, number int32, t Type, description string) (*FieldInfo, error) {
	return newFieldInfo("FORMAT", id, number, t, description)
}

func newFieldInfo(name, id string, number int32, t Type, description string) (*FieldInfo, error) {
	if number <= InvalidNumber {
		return nil, &annotation.FormatError{Token: FormatNumber(number), Reason: "invalid Number"}
	}
	if t == InvalidType || t > String {
		return nil, &annotation.FormatError{Reason: "invalid Type"}
	}
	line, err := NewStructured(name,
		Attribute{Key: "ID", Value: id},
		Attribute{Key: "Number", Value: FormatNumber(number)},
		Attribute{Key: "Type", Value: t.String()},
		Attribute{Key: "Description", Value: description, Quoted: true},
	)
	if err != nil {
		return nil, err
	}
	info, err := decodeFieldInfo(line)
	if err != nil {
		return nil, err
	}
	return info.(*FieldInfo), nil
}

// NewFilter returns a FILTER line.
func NewFilter(id, description string) (*Definition, error) {
	line, err := NewStructured("FILTER",
		Attribute{Key: "ID", Value: id},
		Attribute{Key: "Description", Value: description, Quoted: true},
	)
	if err != nil {
		return nil, err
	}
	def, err := decodeDefinition(line)
	if err != nil {
		return nil, err
	}
	return def.(*Definition), nil
}

// NewContig returns a contig line. A negative length is omitted.
func NewContig(id string, length int64) (*Contig, error) {
	attributes := []Attribute{{Key: "ID", Value: id}}
	if length >= 0 {
		attributes = append(attributes, Attribute{Key: "length", Value: strconv.FormatInt(length, 10)})
	}
	line, err := NewStructured("contig", attributes...)
	if err != nil {
		return nil, err
	}
	contig, err := decodeContig(line)
	if err != nil {
		return nil, err
	}
	return contig.(*Contig), nil
}

// AppendFormat appends the line, without line terminator.
func (line *Unstructured) AppendFormat(out []byte) []byte {
	out = append(append(out, "##"...), line.Name...)
	return append(append(out, '='), line.Value...)
}

func (line *Unstructured) String() string {
	return string(line.AppendFormat(nil))
}

// AppendFormat appends the line, without line terminator. Attributes
// are written in order, quoted if they were quoted.
func (line Structured) AppendFormat(out []byte) []byte {
	out = append(append(out, "##"...), line.Name...)
	out = append(out, '=', '<')
	for i, a := range line.Attributes {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(append(out, a.Key...), '=')
		if a.Quoted {
			out = appendQuoted(out, a.Value)
		} else {
			out = append(out, a.Value...)
		}
	}
	return append(out, '>')
}

func (line Structured) String() string {
	return string(line.AppendFormat(nil))
}
