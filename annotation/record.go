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

// A Record maps tags to annotations. Each tag occurs at most once,
// and annotations keep the order in which they were added.
//
// Format-specific records embed a Record to expose its accessors.
// The zero Record is valid and empty.
type Record struct {
	entries utils.SmallMap
}

// NewRecord returns a record holding the given annotations in order.
// It fails if two annotations share a tag.
func NewRecord(annotations ...Annotation) (Record, error) {
	var b RecordBuilder
	for _, a := range annotations {
		b.WithAnnotation(a)
	}
	return b.Build()
}

func (r Record) lookup(tag string) (Annotation, bool) {
	sym, ok := utils.Lookup(tag)
	if !ok {
		return Annotation{}, false
	}
	value, ok := r.entries.Get(sym)
	if !ok {
		return Annotation{}, false
	}
	return value.(Annotation), true
}

// Len returns the number of annotations in r.
func (r Record) Len() int { return len(r.entries) }

// ContainsKey reports whether r has an annotation with the given tag.
func (r Record) ContainsKey(tag string) bool {
	_, ok := r.lookup(tag)
	return ok
}

// Get returns the annotation with the given tag, if present.
func (r Record) Get(tag string) (Annotation, bool) {
	return r.lookup(tag)
}

// Tags returns the tags of r in order.
func (r Record) Tags() []string {
	tags := make([]string, len(r.entries))
	for i, entry := range r.entries {
		tags[i] = *entry.Key
	}
	return tags
}

// Annotations returns the annotations of r in order.
func (r Record) Annotations() []Annotation {
	result := make([]Annotation, len(r.entries))
	for i, entry := range r.entries {
		result[i] = entry.Value.(Annotation)
	}
	return result
}

// Equal reports whether r and other hold equal annotations in the
// same order.
func (r Record) Equal(other Record) bool {
	if len(r.entries) != len(other.entries) {
		return false
	}
	for i, entry := range r.entries {
		if !entry.Value.(Annotation).Equal(other.entries[i].Value.(Annotation)) {
			return false
		}
	}
	return true
}

// AppendFormat appends every annotation of r to out, each preceded
// by a tab.
func (r Record) AppendFormat(out []byte) []byte {
	for _, entry := range r.entries {
		out = entry.Value.(Annotation).AppendFormat(append(out, '\t'))
	}
	return out
}

func (r Record) get(tag string) (Annotation, error) {
	a, ok := r.lookup(tag)
	if !ok {
		return Annotation{}, missingKey(tag)
	}
	return a, nil
}

// FieldCharacter returns the value of the type A annotation tag.
func (r Record) FieldCharacter(tag string) (byte, error) {
	a, err := r.get(tag)
	if err != nil {
		return 0, err
	}
	return a.AsCharacter()
}

// FieldCharacterOpt is like FieldCharacter, but reports ok == false
// instead of failing when tag is absent.
func (r Record) FieldCharacterOpt(tag string) (value byte, ok bool, err error) {
	a, ok := r.lookup(tag)
	if !ok {
		return 0, false, nil
	}
	value, err = a.AsCharacter()
	return value, err == nil, err
}

// FieldInteger returns the value of the type i annotation tag.
func (r Record) FieldInteger(tag string) (int64, error) {
	a, err := r.get(tag)
	if err != nil {
		return 0, err
	}
	return a.AsInteger()
}

// FieldIntegerOpt is like FieldInteger, but reports ok == false
// instead of failing when tag is absent.
func (r Record) FieldIntegerOpt(tag string) (value int64, ok bool, err error) {
	a, ok := r.lookup(tag)
	if !ok {
		return 0, false, nil
	}
	value, err = a.AsInteger()
	return value, err == nil, err
}

// FieldFloat returns the value of the type f annotation tag.
func (r Record) FieldFloat(tag string) (float64, error) {
	a, err := r.get(tag)
	if err != nil {
		return 0, err
	}
	return a.AsFloat()
}

// FieldFloatOpt is like FieldFloat, but reports ok == false instead
// of failing when tag is absent.
func (r Record) FieldFloatOpt(tag string) (value float64, ok bool, err error) {
	a, ok := r.lookup(tag)
	if !ok {
		return 0, false, nil
	}
	value, err = a.AsFloat()
	return value, err == nil, err
}

// FieldString returns the value of the type Z annotation tag.
func (r Record) FieldString(tag string) (string, error) {
	a, err := r.get(tag)
	if err != nil {
		return "", err
	}
	return a.AsString()
}

// FieldStringOpt is like FieldString, but reports ok == false instead
// of failing when tag is absent.
func (r Record) FieldStringOpt(tag string) (value string, ok bool, err error) {
	a, ok := r.lookup(tag)
	if !ok {
		return "", false, nil
	}
	value, err = a.AsString()
	return value, err == nil, err
}

// FieldByteArray returns the decoded value of the type H annotation
// tag.
func (r Record) FieldByteArray(tag string) ([]byte, error) {
	a, err := r.get(tag)
	if err != nil {
		return nil, err
	}
	return a.AsByteArray()
}

// FieldByteArrayOpt is like FieldByteArray, but reports ok == false
// instead of failing when tag is absent.
func (r Record) FieldByteArrayOpt(tag string) (value []byte, ok bool, err error) {
	a, ok := r.lookup(tag)
	if !ok {
		return nil, false, nil
	}
	value, err = a.AsByteArray()
	return value, err == nil, err
}

// FieldIntegers returns the elements of the integer array annotation
// tag.
func (r Record) FieldIntegers(tag string) ([]int64, error) {
	a, err := r.get(tag)
	if err != nil {
		return nil, err
	}
	return a.AsIntegers()
}

// FieldIntegersOpt is like FieldIntegers, but reports ok == false
// instead of failing when tag is absent.
func (r Record) FieldIntegersOpt(tag string) (value []int64, ok bool, err error) {
	a, ok := r.lookup(tag)
	if !ok {
		return nil, false, nil
	}
	value, err = a.AsIntegers()
	return value, err == nil, err
}

// FieldFloats returns the elements of the float array annotation tag.
func (r Record) FieldFloats(tag string) ([]float64, error) {
	a, err := r.get(tag)
	if err != nil {
		return nil, err
	}
	return a.AsFloats()
}

// FieldFloatsOpt is like FieldFloats, but reports ok == false instead
// of failing when tag is absent.
func (r Record) FieldFloatsOpt(tag string) (value []float64, ok bool, err error) {
	a, ok := r.lookup(tag)
	if !ok {
		return nil, false, nil
	}
	value, err = a.AsFloats()
	return value, err == nil, err
}
