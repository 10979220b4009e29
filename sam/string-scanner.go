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

package sam

import (
	"strconv"

	"github.com/exascience/dshbio/annotation"
)

// A StringScanner parses the tab-separated columns of one SAM line.
//
// Errors are sticky: once an error has occurred, all further parse
// operations do nothing, and Err reports the first error together
// with its 1-based column.
type StringScanner struct {
	index  int
	column int
	data   string
	err    error
}

/*
Returns the error that occurred during scanning/parsing.
*/
func (sc *StringScanner) Err() error {
	return sc.err
}

/*
Resets the scanner, and initializes it with the given string.
*/
func (sc *StringScanner) Reset(s string) {
	sc.index = 0
	sc.column = 0
	sc.data = s
	sc.err = nil
}

/*
Returns the number of ASCII characters that still need to be
scanned/parsed. Returns 0 if Err() would return a non-nil value.
*/
func (sc *StringScanner) Len() int {
	if sc.err != nil {
		return 0
	}
	return len(sc.data) - sc.index
}

func (sc *StringScanner) setErr(token, reason string, err error) {
	if sc.err == nil {
		sc.err = &annotation.FormatError{Column: sc.column, Token: token, Reason: reason, Err: err}
	}
}

func (sc *StringScanner) readUntil(c byte) (s string, found bool) {
	if sc.err != nil {
		return "", false
	}
	start := sc.index
	for end := sc.index; end < len(sc.data); end++ {
		if sc.data[end] == c {
			sc.index = end + 1
			return sc.data[start:end], true
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:], false
}

// readColumn returns the next column and whether it was followed by
// a tab.
func (sc *StringScanner) readColumn() (s string, found bool) {
	if sc.err != nil {
		return "", false
	}
	sc.column++
	return sc.readUntil('\t')
}

// ParseHeaderField parses one TAG:VALUE field of a header line.
func (sc *StringScanner) ParseHeaderField() (tag, value string) {
	field, _ := sc.readColumn()
	if sc.err != nil {
		return "", ""
	}
	if len(field) < 3 || field[2] != ':' {
		sc.setErr(field, "invalid header field", nil)
		return "", ""
	}
	tag = field[:2]
	if !isLetter(tag[0]) || !(isLetter(tag[1]) || isDigit(tag[1])) {
		sc.setErr(field, "invalid header field tag", nil)
		return "", ""
	}
	return tag, field[3:]
}

// ParseHeaderFields parses the remaining TAG:VALUE fields of a header
// line. A tag that occurs twice is an error.
func (sc *StringScanner) ParseHeaderFields() (record HeaderLine) {
	for sc.Len() > 0 {
		tag, value := sc.ParseHeaderField()
		if sc.err != nil {
			break
		}
		if !record.Fields.SetUniqueEntry(tag, value) {
			sc.setErr(tag, "duplicate field tag in a SAM header line", nil)
			break
		}
	}
	return record
}

func (sc *StringScanner) doString() string {
	value, ok := sc.readColumn()
	if !ok && sc.err == nil {
		sc.setErr(value, "missing tabulator in SAM alignment line", nil)
	}
	return value
}

func (sc *StringScanner) doInt32() int32 {
	s := sc.doString()
	if sc.err != nil {
		return 0
	}
	value, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		sc.setErr(s, "invalid integer", err)
	}
	return int32(value)
}

func (sc *StringScanner) doUint(bitSize int) uint64 {
	s := sc.doString()
	if sc.err != nil {
		return 0
	}
	value, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		sc.setErr(s, "invalid unsigned integer", err)
	}
	return value
}

// ParseOptionalFields parses the remaining TAG:TYPE:VALUE columns.
// Repeated tags contribute to the same field.
func (sc *StringScanner) ParseOptionalFields() annotation.Fields {
	var b annotation.FieldsBuilder
	for sc.Len() > 0 {
		token, _ := sc.readColumn()
		a, err := annotation.Parse(token)
		if err != nil {
			sc.err = annotation.AtColumn(err, sc.column, token)
			break
		}
		if b.WithAnnotation(a); b.Err() != nil {
			sc.err = annotation.AtColumn(b.Err(), sc.column, token)
			break
		}
	}
	fields, _ := b.Build()
	return fields
}

// ParseAlignment parses the eleven mandatory columns and the optional
// fields of an alignment line.
func (sc *StringScanner) ParseAlignment() *Alignment {
	aln := NewAlignment()

	aln.QNAME = sc.doString()
	aln.FLAG = uint16(sc.doUint(16))
	aln.RNAME = sc.doString()
	aln.POS = sc.doInt32()
	aln.MAPQ = byte(sc.doUint(8))
	aln.CIGAR = sc.doString()
	aln.RNEXT = sc.doString()
	aln.PNEXT = sc.doInt32()
	aln.TLEN = sc.doInt32()
	aln.SEQ = sc.doString()
	aln.QUAL, _ = sc.readColumn()

	aln.Fields = sc.ParseOptionalFields()

	if sc.err == nil {
		sc.err = aln.check()
	}
	return aln
}

func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
