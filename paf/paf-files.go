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

package paf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/internal"
)

const positionalColumns = 12

func parseCount(tokens []string, column int, what string) (int64, error) {
	token := tokens[column-1]
	value, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, &annotation.FormatError{Column: column, Token: token, Reason: "invalid " + what, Err: err}
	}
	if value < 0 {
		return 0, &annotation.ConstraintError{Record: "PAF", Reason: fmt.Sprintf("%v must not be negative, found %d", what, value)}
	}
	return value, nil
}

// ParseRecord parses a PAF line.
func ParseRecord(line string) (*Record, error) {
	tokens := strings.Split(line, "\t")
	if len(tokens) < positionalColumns {
		return nil, &annotation.FormatError{
			Column: len(tokens),
			Reason: fmt.Sprintf("PAF line has %d columns, expected at least %d", len(tokens), positionalColumns),
		}
	}
	var r Record
	var err error
	r.QueryName = tokens[0]
	counts := []struct {
		column int
		what   string
		value  *int64
	}{
		{2, "query length", &r.QueryLength},
		{3, "query start", &r.QueryStart},
		{4, "query end", &r.QueryEnd},
		{7, "target length", &r.TargetLength},
		{8, "target start", &r.TargetStart},
		{9, "target end", &r.TargetEnd},
		{10, "number of matches", &r.Matches},
		{11, "alignment block length", &r.AlignmentBlockLength},
		{12, "mapping quality", &r.MappingQuality},
	}
	for _, c := range counts {
		if *c.value, err = parseCount(tokens, c.column, c.what); err != nil {
			return nil, err
		}
	}
	if r.Strand, err = ParseStrand(tokens[4]); err != nil {
		return nil, annotation.AtColumn(err, 5, tokens[4])
	}
	r.TargetName = tokens[5]
	if r.Fields, err = annotation.ParseFieldColumns(tokens, positionalColumns+1); err != nil {
		return nil, err
	}
	if err := r.check(); err != nil {
		return nil, err
	}
	return &r, nil
}

// AppendFormat appends r as a PAF line, without line terminator.
func (r *Record) AppendFormat(out []byte) []byte {
	out = append(append(out, r.QueryName...), '\t')
	out = append(strconv.AppendInt(out, r.QueryLength, 10), '\t')
	out = append(strconv.AppendInt(out, r.QueryStart, 10), '\t')
	out = append(strconv.AppendInt(out, r.QueryEnd, 10), '\t')
	out = append(out, byte(r.Strand), '\t')
	out = append(append(out, r.TargetName...), '\t')
	out = append(strconv.AppendInt(out, r.TargetLength, 10), '\t')
	out = append(strconv.AppendInt(out, r.TargetStart, 10), '\t')
	out = append(strconv.AppendInt(out, r.TargetEnd, 10), '\t')
	out = append(strconv.AppendInt(out, r.Matches, 10), '\t')
	out = append(strconv.AppendInt(out, r.AlignmentBlockLength, 10), '\t')
	out = strconv.AppendInt(out, r.MappingQuality, 10)
	return r.Fields.AppendFormat(out)
}

func (r *Record) String() string {
	return string(r.AppendFormat(nil))
}

// A Listener receives the records of a stream one at a time. It
// returns false to stop the stream early.
type Listener func(*Record) bool

// Stream parses r line by line and calls listener for each record.
// Blank lines are ignored. A malformed line ends the stream with a
// *annotation.LineError.
func Stream(r io.Reader, listener Listener) error {
	lines := internal.NewLineReader(r)
	for {
		line, err := lines.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := ParseRecord(line)
		if err != nil {
			return &annotation.LineError{Line: lines.Line(), Err: err}
		}
		if !listener(record) {
			return nil
		}
	}
}

// StreamFile opens the named file and streams its records. The file
// is closed on every exit path.
func StreamFile(name string, listener Listener) (err error) {
	file, err := internal.Open(name)
	if err != nil {
		return err
	}
	defer internal.Close(file, &err)
	return Stream(file, listener)
}

// Read returns all records of r. It holds the whole input in memory.
func Read(r io.Reader) (records []*Record, err error) {
	err = Stream(r, func(record *Record) bool {
		records = append(records, record)
		return true
	})
	return records, err
}

// ReadFile returns all records of the named file.
func ReadFile(name string) (records []*Record, err error) {
	err = StreamFile(name, func(record *Record) bool {
		records = append(records, record)
		return true
	})
	return records, err
}

// A Writer writes records as PAF lines.
type Writer struct {
	out *bufio.Writer
}

// NewWriter returns a Writer that buffers its output to w. Call
// Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// Write writes record followed by a newline.
func (w *Writer) Write(record *Record) error {
	buf := append(record.AppendFormat(internal.ReserveByteBuffer()), '\n')
	_, err := w.out.Write(buf)
	internal.ReleaseByteBuffer(buf)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.out.Flush()
}
