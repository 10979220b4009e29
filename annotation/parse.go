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

import "fmt"

// The functions in this file decode the values collected in a Fields
// multimap. They validate type and arity across all values collected
// for a tag, regardless of how many tokens contributed them.

func lookupScalar(tag string, fields Fields, t Type) (value string, found bool, err error) {
	e, ok := fields.lookup(tag)
	if !ok {
		return "", false, nil
	}
	switch {
	case e.typ == t:
		if len(e.values) != 1 {
			return "", true, &ArityError{Tag: tag, Expected: 1, Actual: len(e.values),
				Reason: fmt.Sprintf("expected a single %v, found %d values", t.describe(), len(e.values))}
		}
		return e.values[0], true, nil
	case e.typ == Array && e.arrayType.Kind() == t:
		return "", true, &ArityError{Tag: tag, Expected: 1, Actual: len(e.values),
			Reason: fmt.Sprintf("%v requested from an array of %d values", t.describe(), len(e.values))}
	default:
		return "", true, typeMismatch(tag, t.describe(), e.typ, e.arrayType)
	}
}

func lookupArray(tag string, fields Fields, t Type, expected int) (values []string, found bool, err error) {
	e, ok := fields.lookup(tag)
	if !ok {
		return nil, false, nil
	}
	switch {
	case e.typ == Array && e.arrayType.Kind() == t:
		if expected >= 0 && len(e.values) != expected {
			return nil, true, &ArityError{Tag: tag, Expected: expected, Actual: len(e.values),
				Reason: fmt.Sprintf("expected %d values, found %d", expected, len(e.values))}
		}
		return e.values, true, nil
	case e.typ == t:
		return nil, true, &ArityError{Tag: tag, Expected: expected, Actual: len(e.values),
			Reason: fmt.Sprintf("%v array requested from a scalar field", t.describe())}
	default:
		return nil, true, typeMismatch(tag, t.describe()+" array", e.typ, e.arrayType)
	}
}

func requireScalar(tag string, fields Fields, t Type) (string, error) {
	value, found, err := lookupScalar(tag, fields, t)
	if err == nil && !found {
		err = missingKey(tag)
	}
	return value, err
}

func requireArray(tag string, fields Fields, t Type, expected int) ([]string, error) {
	values, found, err := lookupArray(tag, fields, t, expected)
	if err == nil && !found {
		err = missingKey(tag)
	}
	return values, err
}

// ParseCharacter returns the value of the type A field tag.
func ParseCharacter(tag string, fields Fields) (byte, error) {
	value, err := requireScalar(tag, fields, Character)
	if err != nil {
		return 0, err
	}
	return value[0], nil
}

// ParseCharacterOpt is like ParseCharacter, but reports ok == false
// instead of failing when tag is absent.
func ParseCharacterOpt(tag string, fields Fields) (byte, bool, error) {
	value, found, err := lookupScalar(tag, fields, Character)
	if !found || err != nil {
		return 0, false, err
	}
	return value[0], true, nil
}

// ParseInteger returns the value of the type i field tag.
func ParseInteger(tag string, fields Fields) (int64, error) {
	value, err := requireScalar(tag, fields, Integer)
	if err != nil {
		return 0, err
	}
	return decodeInteger(tag, value)
}

// ParseIntegerOpt is like ParseInteger, but reports ok == false
// instead of failing when tag is absent.
func ParseIntegerOpt(tag string, fields Fields) (int64, bool, error) {
	value, found, err := lookupScalar(tag, fields, Integer)
	if !found || err != nil {
		return 0, false, err
	}
	v, err := decodeInteger(tag, value)
	return v, err == nil, err
}

// ParseFloat returns the value of the type f field tag.
func ParseFloat(tag string, fields Fields) (float64, error) {
	value, err := requireScalar(tag, fields, Float)
	if err != nil {
		return 0, err
	}
	return decodeFloat(tag, value)
}

// ParseFloatOpt is like ParseFloat, but reports ok == false instead
// of failing when tag is absent.
func ParseFloatOpt(tag string, fields Fields) (float64, bool, error) {
	value, found, err := lookupScalar(tag, fields, Float)
	if !found || err != nil {
		return 0, false, err
	}
	v, err := decodeFloat(tag, value)
	return v, err == nil, err
}

// ParseString returns the value of the type Z field tag.
func ParseString(tag string, fields Fields) (string, error) {
	return requireScalar(tag, fields, String)
}

// ParseStringOpt is like ParseString, but reports ok == false instead
// of failing when tag is absent.
func ParseStringOpt(tag string, fields Fields) (string, bool, error) {
	value, found, err := lookupScalar(tag, fields, String)
	if !found || err != nil {
		return "", false, err
	}
	return value, true, nil
}

// ParseByteArray returns the decoded value of the type H field tag.
func ParseByteArray(tag string, fields Fields) ([]byte, error) {
	value, err := requireScalar(tag, fields, ByteArray)
	if err != nil {
		return nil, err
	}
	return decodeByteArray(tag, value)
}

// ParseByteArrayOpt is like ParseByteArray, but reports ok == false
// instead of failing when tag is absent.
func ParseByteArrayOpt(tag string, fields Fields) ([]byte, bool, error) {
	value, found, err := lookupScalar(tag, fields, ByteArray)
	if !found || err != nil {
		return nil, false, err
	}
	v, err := decodeByteArray(tag, value)
	return v, err == nil, err
}

// ParseIntegers returns all elements of the integer array field tag.
func ParseIntegers(tag string, fields Fields) ([]int64, error) {
	return ParseIntegersN(tag, -1, fields)
}

// ParseIntegersN is like ParseIntegers, but fails with an ArityError
// unless the field holds exactly n elements. A negative n accepts any
// number of elements.
func ParseIntegersN(tag string, n int, fields Fields) ([]int64, error) {
	values, err := requireArray(tag, fields, Integer, n)
	if err != nil {
		return nil, err
	}
	return decodeIntegers(tag, values)
}

// ParseIntegersOpt is like ParseIntegers, but reports ok == false
// instead of failing when tag is absent.
func ParseIntegersOpt(tag string, fields Fields) ([]int64, bool, error) {
	values, found, err := lookupArray(tag, fields, Integer, -1)
	if !found || err != nil {
		return nil, false, err
	}
	v, err := decodeIntegers(tag, values)
	return v, err == nil, err
}

// ParseFloats returns all elements of the float array field tag.
func ParseFloats(tag string, fields Fields) ([]float64, error) {
	return ParseFloatsN(tag, -1, fields)
}

// ParseFloatsN is like ParseFloats, but fails with an ArityError
// unless the field holds exactly n elements. A negative n accepts any
// number of elements.
func ParseFloatsN(tag string, n int, fields Fields) ([]float64, error) {
	values, err := requireArray(tag, fields, Float, n)
	if err != nil {
		return nil, err
	}
	return decodeFloats(tag, values)
}

// ParseFloatsOpt is like ParseFloats, but reports ok == false instead
// of failing when tag is absent.
func ParseFloatsOpt(tag string, fields Fields) ([]float64, bool, error) {
	values, found, err := lookupArray(tag, fields, Float, -1)
	if !found || err != nil {
		return nil, false, err
	}
	v, err := decodeFloats(tag, values)
	return v, err == nil, err
}
