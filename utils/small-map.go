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

package utils

// SmallMapEntry is an entry in a SmallMap.
type SmallMapEntry struct {
	Key   Symbol
	Value interface{}
}

// A SmallMap is an ordered association list. Keys are unique, and
// entries keep the order in which their keys were first added.
type SmallMap []SmallMapEntry

// Get returns the value for the given key, if present.
func (m SmallMap) Get(key Symbol) (interface{}, bool) {
	for _, entry := range m {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Set sets the value for the given key. A new key is appended at
// the end; an existing key keeps its position.
func (m *SmallMap) Set(key Symbol, value interface{}) {
	for index := range *m {
		if (*m)[index].Key == key {
			(*m)[index].Value = value
			return
		}
	}
	*m = append(*m, SmallMapEntry{key, value})
}

// SetUniqueEntry adds the given key and value only if the key is not
// present yet, and reports whether it did so.
func (m *SmallMap) SetUniqueEntry(key Symbol, value interface{}) bool {
	if _, found := m.Get(key); found {
		return false
	}
	*m = append(*m, SmallMapEntry{key, value})
	return true
}

// Without returns a fresh SmallMap holding every entry of m except
// the one for key. m itself is left untouched.
func (m SmallMap) Without(key Symbol) SmallMap {
	result := make(SmallMap, 0, len(m))
	for _, entry := range m {
		if entry.Key != key {
			result = append(result, entry)
		}
	}
	return result
}
