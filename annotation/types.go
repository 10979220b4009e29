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
)

// Type is the single-letter value type of an annotation.
type Type byte

// The recognized annotation types.
const (
	Character Type = 'A' // printable character
	Integer   Type = 'i' // signed decimal integer
	Float     Type = 'f' // decimal floating point number
	String    Type = 'Z' // printable string, may contain ':'
	ByteArray Type = 'H' // hex-encoded byte array
	Array     Type = 'B' // numeric array, see ArrayType
)

// Valid reports whether t is one of the recognized types.
func (t Type) Valid() bool {
	switch t {
	case Character, Integer, Float, String, ByteArray, Array:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	return string(rune(t))
}

func (t Type) describe() string {
	switch t {
	case Character:
		return "character"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case ByteArray:
		return "byte array"
	case Array:
		return "array"
	default:
		return fmt.Sprintf("unknown type %q", byte(t))
	}
}

// ArrayType is the element type of an annotation of type Array.
type ArrayType byte

// The recognized array element types.
const (
	NoArrayType ArrayType = 0
	Int8        ArrayType = 'c'
	Uint8       ArrayType = 'C'
	Int16       ArrayType = 's'
	Uint16      ArrayType = 'S'
	Int32       ArrayType = 'i'
	Uint32      ArrayType = 'I'
	Float32     ArrayType = 'f'
)

// Valid reports whether at is one of the recognized array types.
func (at ArrayType) Valid() bool {
	switch at {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32, Float32:
		return true
	default:
		return false
	}
}

func (at ArrayType) String() string {
	if at == NoArrayType {
		return ""
	}
	return string(rune(at))
}

// Kind returns the scalar type of the elements of an array with this
// element type: Integer for c, C, s, S, i and I, and Float for f.
func (at ArrayType) Kind() Type {
	switch at {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32:
		return Integer
	case Float32:
		return Float
	default:
		return 0
	}
}

func (at ArrayType) bitSize() int {
	switch at {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	default:
		return 32
	}
}

func isDecimalFloat(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case '0' <= c && c <= '9':
		case c == '+', c == '-', c == '.', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

// checkValue verifies that value is well-formed for a scalar type.
func checkValue(t Type, value string) error {
	switch t {
	case Character:
		if len(value) != 1 || value[0] < '!' || value[0] > '~' {
			return fmt.Errorf("%q is not a single printable character", value)
		}
	case Integer:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return err
		}
	case Float:
		if !isDecimalFloat(value) {
			return fmt.Errorf("%q is not a decimal number", value)
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return err
		}
	case String:
		for i := 0; i < len(value); i++ {
			if c := value[i]; c == '\t' || c == '\n' || c == '\r' {
				return fmt.Errorf("string value contains control character %q", c)
			}
		}
	case ByteArray:
		if len(value)%2 != 0 {
			return fmt.Errorf("hex value %q has odd length", value)
		}
		if _, err := hex.DecodeString(value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid annotation type %q", byte(t))
	}
	return nil
}

// checkElement verifies that value is well-formed for an array
// element of the given type.
func checkElement(at ArrayType, value string) (err error) {
	switch at {
	case Int8, Int16, Int32:
		_, err = strconv.ParseInt(value, 10, at.bitSize())
	case Uint8, Uint16, Uint32:
		_, err = strconv.ParseUint(value, 10, at.bitSize())
	case Float32:
		if !isDecimalFloat(value) {
			return fmt.Errorf("%q is not a decimal number", value)
		}
		_, err = strconv.ParseFloat(value, 32)
	default:
		err = fmt.Errorf("invalid array type %q", byte(at))
	}
	return
}

// checkName verifies that name is a two-character tag whose first
// character is a letter.
func checkName(name string) error {
	if len(name) != 2 || !isLetter(name[0]) || !(isLetter(name[1]) || isDigit(name[1])) {
		return fmt.Errorf("invalid tag %q", name)
	}
	return nil
}

// checkAlphanumericName verifies that name is a two-character tag of
// letters and digits.
func checkAlphanumericName(name string) error {
	if len(name) != 2 || !(isLetter(name[0]) || isDigit(name[0])) || !(isLetter(name[1]) || isDigit(name[1])) {
		return fmt.Errorf("invalid tag %q", name)
	}
	return nil
}

func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
