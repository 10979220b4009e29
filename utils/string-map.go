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

// StringMapEntry is a key/value pair in a StringMap.
type StringMapEntry struct {
	Key, Value string
}

// A StringMap maps keys to values, and remembers the order in which
// entries were added, so that header lines are written back exactly
// as they were read.
type StringMap []StringMapEntry

// Get returns the value for the given key, if present.
func (record StringMap) Get(key string) (string, bool) {
	for _, entry := range record {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return "", false
}

// Set sets the value for the given key, appending it if it is new.
func (record *StringMap) Set(key, value string) {
	for index := range *record {
		if (*record)[index].Key == key {
			(*record)[index].Value = value
			return
		}
	}
	*record = append(*record, StringMapEntry{key, value})
}

// SetUniqueEntry adds the key/value pair only if key is not present
// yet, and reports whether it did so.
func (record *StringMap) SetUniqueEntry(key, value string) bool {
	if _, found := record.Get(key); found {
		return false
	}
	*record = append(*record, StringMapEntry{key, value})
	return true
}

// Delete removes the entry for key, if present.
func (record *StringMap) Delete(key string) {
	for index, entry := range *record {
		if entry.Key == key {
			*record = append((*record)[:index:index], (*record)[index+1:]...)
			return
		}
	}
}

// Find returns the index of the first record that satisfies the
// predicate, or -1.
func Find(dict []StringMap, predicate func(record StringMap) bool) int {
	for index, record := range dict {
		if predicate(record) {
			return index
		}
	}
	return -1
}
