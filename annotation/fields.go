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

package annotation

import (
	"github.com/exascience/dshbio/utils"
)

// field holds every value collected for one tag of a Fields value.
type field struct {
	typ       Type
	arrayType ArrayType
	values    []string
	tokens    []int // number of values contributed by each token
}

// Fields is an ordered multimap from tags to raw values. Unlike a
// Record, a tag may be given by several tokens on the same line;
// their values accumulate in order. All tokens for a tag share the
// same type (and array type).
//
// The zero Fields is valid and empty.
type Fields struct {
	entries utils.SmallMap
	order   []utils.Symbol // tag of each token, in input order
}

// ParseFields parses the given annotation tokens into Fields.
func ParseFields(tokens ...string) (Fields, error) {
	return ParseFieldColumns(tokens, 1)
}

// ParseFieldColumns parses the optional columns of a line,
// tokens[first-1:], into Fields. Errors carry the 1-based column of
// the offending token within the whole line.
func ParseFieldColumns(tokens []string, first int) (Fields, error) {
	var b FieldsBuilder
	for i := first - 1; i < len(tokens); i++ {
		a, err := Parse(tokens[i])
		if err != nil {
			return Fields{}, AtColumn(err, i+1, tokens[i])
		}
		if b.WithAnnotation(a); b.Err() != nil {
			return Fields{}, AtColumn(b.Err(), i+1, tokens[i])
		}
	}
	return b.Build()
}

func (f Fields) lookup(tag string) (field, bool) {
	sym, ok := utils.Lookup(tag)
	if !ok {
		return field{}, false
	}
	value, ok := f.entries.Get(sym)
	if !ok {
		return field{}, false
	}
	return value.(field), true
}

// Len returns the number of distinct tags in f.
func (f Fields) Len() int { return len(f.entries) }

// ContainsKey reports whether f holds values for the given tag.
func (f Fields) ContainsKey(tag string) bool {
	_, ok := f.lookup(tag)
	return ok
}

// Tags returns the distinct tags of f in order of first appearance.
func (f Fields) Tags() []string {
	tags := make([]string, len(f.entries))
	for i, entry := range f.entries {
		tags[i] = *entry.Key
	}
	return tags
}

// Type returns the type and array type of the given tag.
func (f Fields) Type(tag string) (t Type, at ArrayType, ok bool) {
	e, ok := f.lookup(tag)
	return e.typ, e.arrayType, ok
}

// Values returns a copy of all raw values collected for tag.
func (f Fields) Values(tag string) []string {
	e, _ := f.lookup(tag)
	return append([]string(nil), e.values...)
}

// Annotations returns one annotation per token that contributed to f,
// in the order in which the tokens were added.
func (f Fields) Annotations() []Annotation {
	type cursor struct{ token, start int }
	cursors := make(map[utils.Symbol]cursor, len(f.entries))
	result := make([]Annotation, 0, len(f.order))
	for _, sym := range f.order {
		value, _ := f.entries.Get(sym)
		e := value.(field)
		c := cursors[sym]
		n := e.tokens[c.token]
		result = append(result, Annotation{
			name:      *sym,
			typ:       e.typ,
			arrayType: e.arrayType,
			values:    e.values[c.start : c.start+n : c.start+n],
		})
		cursors[sym] = cursor{c.token + 1, c.start + n}
	}
	return result
}

// Equal reports whether f and other hold the same tags, types and
// values, given by the same tokens in the same order.
func (f Fields) Equal(other Fields) bool {
	if len(f.entries) != len(other.entries) || len(f.order) != len(other.order) {
		return false
	}
	for i, sym := range f.order {
		if other.order[i] != sym {
			return false
		}
	}
	for i, entry := range f.entries {
		o := other.entries[i]
		if entry.Key != o.Key {
			return false
		}
		e, oe := entry.Value.(field), o.Value.(field)
		if e.typ != oe.typ || e.arrayType != oe.arrayType ||
			!equalStrings(e.values, oe.values) || !equalInts(e.tokens, oe.tokens) {
			return false
		}
	}
	return true
}

// AppendFormat appends every token of f to out, each preceded by a
// tab.
func (f Fields) AppendFormat(out []byte) []byte {
	for _, a := range f.Annotations() {
		out = a.AppendFormat(append(out, '\t'))
	}
	return out
}

// FieldCharacter is ParseCharacter(tag, f).
func (f Fields) FieldCharacter(tag string) (byte, error) { return ParseCharacter(tag, f) }

// FieldCharacterOpt is ParseCharacterOpt(tag, f).
func (f Fields) FieldCharacterOpt(tag string) (byte, bool, error) { return ParseCharacterOpt(tag, f) }

// FieldInteger is ParseInteger(tag, f).
func (f Fields) FieldInteger(tag string) (int64, error) { return ParseInteger(tag, f) }

// FieldIntegerOpt is ParseIntegerOpt(tag, f).
func (f Fields) FieldIntegerOpt(tag string) (int64, bool, error) { return ParseIntegerOpt(tag, f) }

// FieldFloat is ParseFloat(tag, f).
func (f Fields) FieldFloat(tag string) (float64, error) { return ParseFloat(tag, f) }

// FieldFloatOpt is ParseFloatOpt(tag, f).
func (f Fields) FieldFloatOpt(tag string) (float64, bool, error) { return ParseFloatOpt(tag, f) }

// FieldString is ParseString(tag, f).
func (f Fields) FieldString(tag string) (string, error) { return ParseString(tag, f) }

// FieldStringOpt is ParseStringOpt(tag, f).
func (f Fields) FieldStringOpt(tag string) (string, bool, error) { return ParseStringOpt(tag, f) }

// FieldByteArray is ParseByteArray(tag, f).
func (f Fields) FieldByteArray(tag string) ([]byte, error) { return ParseByteArray(tag, f) }

// FieldByteArrayOpt is ParseByteArrayOpt(tag, f).
func (f Fields) FieldByteArrayOpt(tag string) ([]byte, bool, error) { return ParseByteArrayOpt(tag, f) }

// FieldIntegers is ParseIntegers(tag, f).
func (f Fields) FieldIntegers(tag string) ([]int64, error) { return ParseIntegers(tag, f) }

// FieldIntegersOpt is ParseIntegersOpt(tag, f).
func (f Fields) FieldIntegersOpt(tag string) ([]int64, bool, error) { return ParseIntegersOpt(tag, f) }

// FieldIntegersN is ParseIntegersN(tag, n, f).
func (f Fields) FieldIntegersN(tag string, n int) ([]int64, error) { return ParseIntegersN(tag, n, f) }

// FieldFloats is ParseFloats(tag, f).
func (f Fields) FieldFloats(tag string) ([]float64, error) { return ParseFloats(tag, f) }

// FieldFloatsOpt is ParseFloatsOpt(tag, f).
func (f Fields) FieldFloatsOpt(tag string) ([]float64, bool, error) { return ParseFloatsOpt(tag, f) }

// FieldFloatsN is ParseFloatsN(tag, n, f).
func (f Fields) FieldFloatsN(tag string, n int) ([]float64, error) { return ParseFloatsN(tag, n, f) }

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
