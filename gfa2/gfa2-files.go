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

package gfa2

import (
	"bufio"
	"io"

	"github.com/exascience/dshbio/gfa"
	"github.com/exascience/dshbio/internal"
)

// A Listener receives the records of a stream one at a time. It
// returns false to stop the stream early.
type Listener func(Record) bool

// Stream parses r line by line and calls listener for each record.
// Blank lines are ignored. Lines that do not start with a GFA 2.0
// record type, such as comments, are skipped and logged.
//
// A malformed line ends the stream with a *annotation.LineError.
func Stream(r io.Reader, listener Listener) error {
	return StreamKinds(r, AllKinds(), listener)
}

// StreamKinds is like Stream, but only parses lines whose record type
// is in kinds. Other lines are skipped without being parsed.
func StreamKinds(r io.Reader, kinds gfa.Kinds, listener Listener) error {
	return gfa.Scan(r, "GFA 2.0", kindCodes, kinds, func(line string) (bool, error) {
		record, err := ParseRecord(line)
		if err != nil {
			return false, err
		}
		return listener(record), nil
	})
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
func Read(r io.Reader) (records []Record, err error) {
	err = Stream(r, func(record Record) bool {
		records = append(records, record)
		return true
	})
	return records, err
}

// ReadFile returns all records of the named file.
func ReadFile(name string) (records []Record, err error) {
	err = StreamFile(name, func(record Record) bool {
		records = append(records, record)
		return true
	})
	return records, err
}

// ReadHeaders returns the header records of r, skipping all others.
func ReadHeaders(r io.Reader) (headers []*Header, err error) {
	err = StreamKinds(r, gfa.NewKinds(byte(HeaderKind)), func(record Record) bool {
		headers = append(headers, record.(*Header))
		return true
	})
	return headers, err
}

// ReadSegments returns the segment records of r, skipping all others.
func ReadSegments(r io.Reader) (segments []*Segment, err error) {
	err = StreamKinds(r, gfa.NewKinds(byte(SegmentKind)), func(record Record) bool {
		segments = append(segments, record.(*Segment))
		return true
	})
	return segments, err
}

// ReadEdges returns the edge records of r, skipping all others.
func ReadEdges(r io.Reader) (edges []*Edge, err error) {
	err = StreamKinds(r, gfa.NewKinds(byte(EdgeKind)), func(record Record) bool {
		edges = append(edges, record.(*Edge))
		return true
	})
	return edges, err
}

// ReadPaths returns the path records of r, skipping all others.
func ReadPaths(r io.Reader) (paths []*Path, err error) {
	err = StreamKinds(r, gfa.NewKinds(byte(PathKind)), func(record Record) bool {
		paths = append(paths, record.(*Path))
		return true
	})
	return paths, err
}

// A Writer writes records as GFA 2.0 lines.
type Writer struct {
	out *bufio.Writer
}

// NewWriter returns a Writer that buffers its output to w. Call
// Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// Write writes record followed by a newline.
func (w *Writer) Write(record Record) error {
	buf := append(record.AppendFormat(internal.ReserveByteBuffer()), '\n')
	_, err := w.out.Write(buf)
	internal.ReleaseByteBuffer(buf)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.out.Flush()
}
