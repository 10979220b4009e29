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

// A FieldsBuilder accumulates tokens into a Fields value.
//
// Errors are sticky: the first invalid tag, value or type conflict is
// remembered, later calls are ignored, and Build returns the error.
// The zero FieldsBuilder is ready to use.
type FieldsBuilder struct {
	entries utils.SmallMap // values are *field
	order   []utils.Symbol // tag of each token
	err     error
}

// Err returns the first error encountered by b, if any.
func (b *FieldsBuilder) Err() error { return b.err }

func (b *FieldsBuilder) add(a Annotation) {
	sym := utils.Intern(a.name)
	if value, found := b.entries.Get(sym); found {
		e := value.(*field)
		if e.typ != a.typ || e.arrayType != a.arrayType {
			requested := a.typ.describe()
			if a.typ == Array {
				requested = "B:" + a.arrayType.String()
			}
			b.err = typeMismatch(a.name, requested, e.typ, e.arrayType)
			return
		}
		e.values = append(e.values, a.values...)
		e.tokens = append(e.tokens, len(a.values))
		b.order = append(b.order, sym)
		return
	}
	b.order = append(b.order, sym)
	b.entries = append(b.entries, utils.SmallMapEntry{Key: sym, Value: &field{
		typ:       a.typ,
		arrayType: a.arrayType,
		values:    append([]string(nil), a.values...),
		tokens:    []int{len(a.values)},
	}})
}

// WithAnnotation adds the values of a under its tag.
func (b *FieldsBuilder) WithAnnotation(a Annotation) *FieldsBuilder {
	if b.err == nil {
		b.add(a)
	}
	return b
}

// WithField adds a scalar value in textual form under tag. If tag
// already has values, they must have the same type.
func (b *FieldsBuilder) WithField(tag string, t Type, value string) *FieldsBuilder {
	if b.err != nil {
		return b
	}
	a, err := New(tag, t, value)
	if err != nil {
		b.err = formatError(tag, "invalid field", err)
		return b
	}
	b.add(a)
	return b
}

// WithArrayField adds array elements in textual form under tag. Calls
// for the same tag extend one array, so an array may be built one
// element at a time.
func (b *FieldsBuilder) WithArrayField(tag string, at ArrayType, values ...string) *FieldsBuilder {
	if b.err != nil {
		return b
	}
	a, err := NewArray(tag, at, values...)
	if err != nil {
		b.err = formatError(tag, "invalid array field", err)
		return b
	}
	b.add(a)
	return b
}

// ReplaceField removes all values of tag and then adds value. This
// rebuilds the ordered entries, so it costs time proportional to the
// number of tags; prefer WithField when tag is known to be new.
func (b *FieldsBuilder) ReplaceField(tag string, t Type, value string) *FieldsBuilder {
	if b.err != nil {
		return b
	}
	b.remove(tag)
	return b.WithField(tag, t, value)
}

// ReplaceArrayField removes all values of tag and then adds values as
// one array. Like ReplaceField, it rebuilds the ordered entries.
func (b *FieldsBuilder) ReplaceArrayField(tag string, at ArrayType, values ...string) *FieldsBuilder {
	if b.err != nil {
		return b
	}
	b.remove(tag)
	return b.WithArrayField(tag, at, values...)
}

func (b *FieldsBuilder) remove(tag string) {
	if sym, ok := utils.Lookup(tag); ok {
		b.entries = b.entries.Without(sym)
		order := make([]utils.Symbol, 0, len(b.order))
		for _, s := range b.order {
			if s != sym {
				order = append(order, s)
			}
		}
		b.order = order
	}
}

// Reset clears b to the state of a freshly declared FieldsBuilder.
func (b *FieldsBuilder) Reset() *FieldsBuilder {
	b.entries = nil
	b.order = nil
	b.err = nil
	return b
}

// Build returns the accumulated fields. The result shares no memory
// with b, which may be reused.
func (b *FieldsBuilder) Build() (Fields, error) {
	if b.err != nil {
		return Fields{}, b.err
	}
	entries := make(utils.SmallMap, len(b.entries))
	for i, entry := range b.entries {
		e := entry.Value.(*field)
		entries[i] = utils.SmallMapEntry{Key: entry.Key, Value: field{
			typ:       e.typ,
			arrayType: e.arrayType,
			values:    append([]string(nil), e.values...),
			tokens:    append([]int(nil), e.tokens...),
		}}
	}
	return Fields{entries: entries, order: append([]utils.Symbol(nil), b.order...)}, nil
}

// A RecordBuilder accumulates annotations into a Record. Like
// FieldsBuilder, it remembers the first error, which Build returns.
// The zero RecordBuilder is ready to use.
type RecordBuilder struct {
	entries utils.SmallMap
	err     error
}

// Err returns the first error encountered by b, if any.
func (b *RecordBuilder) Err() error { return b.err }

// WithAnnotation adds a. A second annotation with the same tag is an
// error; use ReplaceAnnotation to overwrite.
func (b *RecordBuilder) WithAnnotation(a Annotation) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if !b.entries.SetUniqueEntry(utils.Intern(a.name), a) {
		b.err = formatError(a.Format(), "duplicate tag "+a.name+" in annotation", nil)
	}
	return b
}

// WithField adds a scalar annotation given in textual form.
func (b *RecordBuilder) WithField(tag string, t Type, value string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	a, err := New(tag, t, value)
	if err != nil {
		b.err = formatError(tag, "invalid field", err)
		return b
	}
	return b.WithAnnotation(a)
}

// WithArrayField adds an array annotation given in textual form.
func (b *RecordBuilder) WithArrayField(tag string, at ArrayType, values ...string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	a, err := NewArray(tag, at, values...)
	if err != nil {
		b.err = formatError(tag, "invalid array field", err)
		return b
	}
	return b.WithAnnotation(a)
}

// ReplaceAnnotation removes any annotation with the tag of a and then
// appends a. It rebuilds the ordered entries.
func (b *RecordBuilder) ReplaceAnnotation(a Annotation) *RecordBuilder {
	if b.err != nil {
		return b
	}
	sym := utils.Intern(a.name)
	b.entries = append(b.entries.Without(sym), utils.SmallMapEntry{Key: sym, Value: a})
	return b
}

// Reset clears b to the state of a freshly declared RecordBuilder.
func (b *RecordBuilder) Reset() *RecordBuilder {
	b.entries = nil
	b.err = nil
	return b
}

// Build returns the accumulated record. The result shares no memory
// with b, which may be reused.
func (b *RecordBuilder) Build() (Record, error) {
	if b.err != nil {
		return Record{}, b.err
	}
	return Record{entries: append(utils.SmallMap(nil), b.entries...)}, nil
}
