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
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// An Annotation is a single TAG:TYPE:VALUE optional field.
//
// The zero Annotation is not valid; use Parse or one of the New
// functions.
type Annotation struct {
	name      string
	typ       Type
	arrayType ArrayType
	values    []string
}

// Parse parses an annotation from its textual form
// "TAG:TYPE:VALUE". For type B the value is the array type letter
// followed by zero or more comma-prefixed elements, as in
// "ZB:B:i,1,2". For all other types everything after the second ':'
// is the value, so strings and hex arrays may contain ':'.
//
// Tags follow the SAM grammar [A-Za-z][A-Za-z0-9].
func Parse(raw string) (Annotation, error) {
	return parse(raw, checkName)
}

// ParseAlphanumeric is like Parse, but accepts tags of the GFA grammar
// [A-Za-z0-9][A-Za-z0-9].
func ParseAlphanumeric(raw string) (Annotation, error) {
	return parse(raw, checkAlphanumericName)
}

func parse(raw string, check func(string) error) (Annotation, error) {
	tokens := strings.SplitN(raw, ":", 3)
	if len(tokens) < 3 {
		return Annotation{}, formatError(raw, "annotation not of the form tag:type:value", nil)
	}
	name, typeToken, value := tokens[0], tokens[1], tokens[2]
	if len(typeToken) != 1 {
		return Annotation{}, formatError(raw, "invalid annotation type", nil)
	}
	t := Type(typeToken[0])
	if t != Array {
		a, err := newScalar(name, t, value, check)
		if err != nil {
			return Annotation{}, formatError(raw, "invalid annotation", err)
		}
		return a, nil
	}
	if value == "" {
		return Annotation{}, formatError(raw, "missing array type in annotation", nil)
	}
	at := ArrayType(value[0])
	var values []string
	if rest := value[1:]; rest != "" {
		if rest[0] != ',' {
			return Annotation{}, formatError(raw, "array type not followed by a comma in annotation", nil)
		}
		values = strings.Split(rest[1:], ",")
	}
	a, err := newArray(name, at, values, check)
	if err != nil {
		return Annotation{}, formatError(raw, "invalid annotation", err)
	}
	return a, nil
}

// New returns a scalar annotation of the given type. The value must be
// in the textual form of that type.
func New(name string, t Type, value string) (Annotation, error) {
	return newScalar(name, t, value, checkName)
}

func newScalar(name string, t Type, value string, check func(string) error) (Annotation, error) {
	if err := check(name); err != nil {
		return Annotation{}, err
	}
	if t == Array {
		return Annotation{}, fmt.Errorf("use NewArray for array annotation %v", name)
	}
	if !t.Valid() {
		return Annotation{}, fmt.Errorf("invalid annotation type %q for %v", byte(t), name)
	}
	if err := checkValue(t, value); err != nil {
		return Annotation{}, err
	}
	return Annotation{name: name, typ: t, values: []string{value}}, nil
}

// NewArray returns an annotation of type B with the given element type
// and elements in textual form.
func NewArray(name string, at ArrayType, values ...string) (Annotation, error) {
	return newArray(name, at, values, checkName)
}

func newArray(name string, at ArrayType, values []string, check func(string) error) (Annotation, error) {
	if err := check(name); err != nil {
		return Annotation{}, err
	}
	if !at.Valid() {
		return Annotation{}, fmt.Errorf("invalid array type %q for %v", byte(at), name)
	}
	for _, value := range values {
		if err := checkElement(at, value); err != nil {
			return Annotation{}, err
		}
	}
	return Annotation{name: name, typ: Array, arrayType: at, values: append([]string(nil), values...)}, nil
}

// NewCharacter returns an annotation of type A.
func NewCharacter(name string, value byte) (Annotation, error) {
	return New(name, Character, string([]byte{value}))
}

// NewInteger returns an annotation of type i.
func NewInteger(name string, value int64) (Annotation, error) {
	return New(name, Integer, strconv.FormatInt(value, 10))
}

// NewFloat returns an annotation of type f.
func NewFloat(name string, value float64) (Annotation, error) {
	return New(name, Float, strconv.FormatFloat(value, 'g', -1, 64))
}

// NewString returns an annotation of type Z.
func NewString(name, value string) (Annotation, error) {
	return New(name, String, value)
}

// NewByteArray returns an annotation of type H.
func NewByteArray(name string, value []byte) (Annotation, error) {
	return New(name, ByteArray, strings.ToUpper(hex.EncodeToString(value)))
}

// NewIntegers returns an annotation of type B with an integer element
// type.
func NewIntegers(name string, at ArrayType, values ...int64) (Annotation, error) {
	if at.Kind() != Integer {
		return Annotation{}, fmt.Errorf("array type %q is not an integer type", byte(at))
	}
	elements := make([]string, len(values))
	for i, v := range values {
		elements[i] = strconv.FormatInt(v, 10)
	}
	return NewArray(name, at, elements...)
}

// NewFloats returns an annotation of type B:f.
func NewFloats(name string, values ...float64) (Annotation, error) {
	elements := make([]string, len(values))
	for i, v := range values {
		elements[i] = strconv.FormatFloat(v, 'g', -1, 32)
	}
	return NewArray(name, Float32, elements...)
}

// Name returns the tag of a.
func (a Annotation) Name() string { return a.name }

// Type returns the type of a.
func (a Annotation) Type() Type { return a.typ }

// ArrayType returns the element type of a if it has type B, and
// NoArrayType otherwise.
func (a Annotation) ArrayType() ArrayType { return a.arrayType }

// Values returns a copy of the values of a in textual form.
func (a Annotation) Values() []string { return append([]string(nil), a.values...) }

// Len returns the number of values of a.
func (a Annotation) Len() int { return len(a.values) }

// Equal reports whether a and b have the same tag, type and values.
func (a Annotation) Equal(b Annotation) bool {
	if a.name != b.name || a.typ != b.typ || a.arrayType != b.arrayType || len(a.values) != len(b.values) {
		return false
	}
	for i, v := range a.values {
		if b.values[i] != v {
			return false
		}
	}
	return true
}

// AppendFormat appends the textual form of a to out.
func (a Annotation) AppendFormat(out []byte) []byte {
	out = append(out, a.name...)
	out = append(out, ':', byte(a.typ), ':')
	if a.typ == Array {
		out = append(out, byte(a.arrayType))
		for _, v := range a.values {
			out = append(append(out, ','), v...)
		}
		return out
	}
	if len(a.values) > 0 {
		out = append(out, a.values[0]...)
	}
	return out
}

// Format returns the textual form of a. Format(Parse(s)) == s for any
// well-formed s.
func (a Annotation) Format() string {
	return string(a.AppendFormat(nil))
}

func (a Annotation) String() string { return a.Format() }

// scalar returns the single value of a if a has type t, and the
// appropriate error otherwise.
func (a Annotation) scalar(t Type) (string, error) {
	switch {
	case a.typ == t:
		return a.values[0], nil
	case a.typ == Array && a.arrayType.Kind() == t:
		return "", &ArityError{Tag: a.name, Expected: 1, Actual: len(a.values),
			Reason: fmt.Sprintf("%v requested from an array of %d values", t.describe(), len(a.values))}
	default:
		return "", typeMismatch(a.name, t.describe(), a.typ, a.arrayType)
	}
}

// array returns the values of a if a is an array whose elements are of
// kind t, and the appropriate error otherwise.
func (a Annotation) array(t Type) ([]string, error) {
	switch {
	case a.typ == Array && a.arrayType.Kind() == t:
		return a.values, nil
	case a.typ == t:
		return nil, &ArityError{Tag: a.name, Expected: -1, Actual: 1,
			Reason: fmt.Sprintf("%v array requested from a single %v", t.describe(), t.describe())}
	default:
		return nil, typeMismatch(a.name, t.describe()+" array", a.typ, a.arrayType)
	}
}

// AsCharacter returns the value of an annotation of type A.
func (a Annotation) AsCharacter() (byte, error) {
	value, err := a.scalar(Character)
	if err != nil {
		return 0, err
	}
	return value[0], nil
}

// AsInteger returns the value of an annotation of type i.
func (a Annotation) AsInteger() (int64, error) {
	value, err := a.scalar(Integer)
	if err != nil {
		return 0, err
	}
	return decodeInteger(a.name, value)
}

// AsFloat returns the value of an annotation of type f.
func (a Annotation) AsFloat() (float64, error) {
	value, err := a.scalar(Float)
	if err != nil {
		return 0, err
	}
	return decodeFloat(a.name, value)
}

// AsString returns the value of an annotation of type Z.
func (a Annotation) AsString() (string, error) {
	return a.scalar(String)
}

// AsByteArray returns the decoded value of an annotation of type H.
func (a Annotation) AsByteArray() ([]byte, error) {
	value, err := a.scalar(ByteArray)
	if err != nil {
		return nil, err
	}
	return decodeByteArray(a.name, value)
}

// AsIntegers returns the elements of an annotation of type B with an
// integer element type.
func (a Annotation) AsIntegers() ([]int64, error) {
	values, err := a.array(Integer)
	if err != nil {
		return nil, err
	}
	return decodeIntegers(a.name, values)
}

// AsFloats returns the elements of an annotation of type B:f.
func (a Annotation) AsFloats() ([]float64, error) {
	values, err := a.array(Float)
	if err != nil {
		return nil, err
	}
	return decodeFloats(a.name, values)
}

func decodeInteger(tag, value string) (int64, error) {
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, formatError(value, "invalid integer value for "+tag, err)
	}
	return v, nil
}

func decodeFloat(tag, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, formatError(value, "invalid float value for "+tag, err)
	}
	return v, nil
}

func decodeByteArray(tag, value string) ([]byte, error) {
	v, err := hex.DecodeString(value)
	if err != nil {
		return nil, formatError(value, "invalid hex value for "+tag, err)
	}
	return v, nil
}

func decodeIntegers(tag string, values []string) ([]int64, error) {
	result := make([]int64, len(values))
	for i, value := range values {
		v, err := decodeInteger(tag, value)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func decodeFloats(tag string, values []string) ([]float64, error) {
	result := make([]float64, len(values))
	for i, value := range values {
		v, err := decodeFloat(tag, value)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}
