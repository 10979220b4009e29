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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/internal"
	"github.com/exascience/dshbio/utils"
)

// ParseHeaderLine parses one header line, including its @ code.
func ParseHeaderLine(line string) (HeaderLine, error) {
	if len(line) < 3 || line[0] != '@' {
		return HeaderLine{}, &annotation.FormatError{Column: 1, Token: line, Reason: "invalid SAM header line"}
	}
	code := line[:3]
	if len(line) > 3 && line[3] != '\t' {
		return HeaderLine{}, &annotation.FormatError{Column: 1, Token: code, Reason: "header code not followed by a tab"}
	}
	switch {
	case code == "@CO":
		if len(line) > 4 {
			return HeaderLine{Code: code, Comment: line[4:]}, nil
		}
		return HeaderLine{Code: code}, nil
	case code == "@HD", code == "@SQ", code == "@RG", code == "@PG", IsHeaderUserTag(code):
	default:
		return HeaderLine{}, &annotation.FormatError{Column: 1, Token: code, Reason: "unknown SAM record type code"}
	}
	var sc StringScanner
	if len(line) > 4 {
		sc.Reset(line[4:])
	}
	sc.column = 1
	record := sc.ParseHeaderFields()
	if err := sc.Err(); err != nil {
		return HeaderLine{}, err
	}
	record.Code = code
	return record, nil
}

// ParseHeaderLineFromString parses whitespace-separated TAG:VALUE
// fields, such as "ID:group1 SM:sample", as given on a command line.
func ParseHeaderLineFromString(line string) (utils.StringMap, error) {
	var sc StringScanner
	sc.Reset(strings.Join(strings.Fields(line), "\t"))
	record := sc.ParseHeaderFields()
	return record.Fields, sc.Err()
}

func parseHeader(lines *internal.LineReader) (*Header, error) {
	hdr := NewHeader()
	for {
		switch c, err := lines.Peek(); {
		case err == io.EOF:
			return hdr, nil
		case err != nil:
			return hdr, err
		case c != '@':
			return hdr, nil
		}
		line, err := lines.ReadLine()
		if err != nil {
			return hdr, err
		}
		record, err := ParseHeaderLine(line)
		if err != nil {
			return hdr, &annotation.LineError{Line: lines.Line(), Err: err}
		}
		if record.Code == "@HD" && len(hdr.Lines) > 0 {
			return hdr, &annotation.LineError{
				Line: lines.Line(),
				Err:  &annotation.FormatError{Column: 1, Token: record.Code, Reason: "@HD line not in first line when parsing a SAM header"},
			}
		}
		hdr.Lines = append(hdr.Lines, record)
	}
}

// ParseHeader parses the header lines at the start of reader and
// leaves reader positioned at the first alignment. It also returns
// the number of header lines.
func ParseHeader(reader *bufio.Reader) (hdr *Header, lines int, err error) {
	lr := internal.NewLineReader(reader)
	hdr, err = parseHeader(lr)
	return hdr, lr.Line(), err
}

// ParseAlignment parses one alignment line.
func ParseAlignment(line string) (*Alignment, error) {
	var sc StringScanner
	sc.Reset(line)
	aln := sc.ParseAlignment()
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return aln, nil
}

// AppendFormat appends the header line, without line terminator.
func (line HeaderLine) AppendFormat(out []byte) []byte {
	out = append(out, line.Code...)
	if line.Code == "@CO" {
		if line.Comment == "" {
			return out
		}
		return append(append(out, '\t'), line.Comment...)
	}
	for _, entry := range line.Fields {
		out = append(out, '\t')
		out = append(out, entry.Key...)
		out = append(out, ':')
		out = append(out, entry.Value...)
	}
	return out
}

func (line HeaderLine) String() string {
	return string(line.AppendFormat(nil))
}

// AppendFormat appends all header lines, each followed by a newline.
func (hdr *Header) AppendFormat(out []byte) []byte {
	for _, line := range hdr.Lines {
		out = append(line.AppendFormat(out), '\n')
	}
	return out
}

func (hdr *Header) String() string {
	return string(hdr.AppendFormat(nil))
}

// AppendFormat appends the alignment, without line terminator.
func (aln *Alignment) AppendFormat(out []byte) []byte {
	out = append(append(out, aln.QNAME...), '\t')
	out = append(strconv.AppendUint(out, uint64(aln.FLAG), 10), '\t')
	out = append(append(out, aln.RNAME...), '\t')
	out = append(strconv.AppendInt(out, int64(aln.POS), 10), '\t')
	out = append(strconv.AppendUint(out, uint64(aln.MAPQ), 10), '\t')
	out = append(append(out, aln.CIGAR...), '\t')
	out = append(append(out, aln.RNEXT...), '\t')
	out = append(strconv.AppendInt(out, int64(aln.PNEXT), 10), '\t')
	out = append(strconv.AppendInt(out, int64(aln.TLEN), 10), '\t')
	out = append(append(out, aln.SEQ...), '\t')
	out = append(out, aln.QUAL...)
	return aln.Fields.AppendFormat(out)
}

func (aln *Alignment) String() string {
	return string(aln.AppendFormat(nil))
}

// Format writes the header and all alignments to out.
func (sam *Sam) Format(out *bufio.Writer) error {
	buf := internal.ReserveByteBuffer()
	defer func() { internal.ReleaseByteBuffer(buf) }()
	buf = sam.Header.AppendFormat(buf)
	if _, err := out.Write(buf); err != nil {
		return err
	}
	for _, aln := range sam.Alignments {
		buf = append(aln.AppendFormat(buf[:0]), '\n')
		if _, err := out.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// A Listener receives the alignments of a stream one at a time. It
// returns false to stop the stream early.
type Listener func(*Alignment) bool

// Stream parses the header of r, and then parses the remaining lines
// one by one as alignments and passes them to listener. It returns the
// header. Blank lines are ignored. A malformed line ends the stream
// with a *annotation.LineError.
func Stream(r io.Reader, listener Listener) (*Header, error) {
	lines := internal.NewLineReader(r)
	hdr, err := parseHeader(lines)
	if err != nil {
		return hdr, err
	}
	var sc StringScanner
	for {
		line, err := lines.ReadLine()
		if err == io.EOF {
			return hdr, nil
		} else if err != nil {
			return hdr, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		sc.Reset(line)
		aln := sc.ParseAlignment()
		if err := sc.Err(); err != nil {
			return hdr, &annotation.LineError{Line: lines.Line(), Err: err}
		}
		if !listener(aln) {
			return hdr, nil
		}
	}
}

// StreamFile opens the named file and streams its alignments. The
// file is closed on every exit path.
func StreamFile(name string, listener Listener) (hdr *Header, err error) {
	file, err := internal.Open(name)
	if err != nil {
		return nil, err
	}
	defer internal.Close(file, &err)
	return Stream(file, listener)
}

// Read returns the header and all alignments of r. It holds the whole
// input in memory.
func Read(r io.Reader) (*Sam, error) {
	sam := NewSam()
	hdr, err := Stream(r, func(aln *Alignment) bool {
		sam.Alignments = append(sam.Alignments, aln)
		return true
	})
	sam.Header = hdr
	return sam, err
}

// ReadFile returns the header and all alignments of the named file.
func ReadFile(name string) (sam *Sam, err error) {
	file, err := internal.Open(name)
	if err != nil {
		return nil, err
	}
	defer internal.Close(file, &err)
	return Read(file)
}

// A Writer writes a SAM header and alignments.
type Writer struct {
	out *bufio.Writer
}

// NewWriter returns a Writer that buffers its output to w. Call
// Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// WriteHeader writes all header lines.
func (w *Writer) WriteHeader(hdr *Header) error {
	buf := hdr.AppendFormat(internal.ReserveByteBuffer())
	_, err := w.out.Write(buf)
	internal.ReleaseByteBuffer(buf)
	return err
}

// Write writes aln followed by a newline.
func (w *Writer) Write(aln *Alignment) error {
	buf := append(aln.AppendFormat(internal.ReserveByteBuffer()), '\n')
	_, err := w.out.Write(buf)
	internal.ReleaseByteBuffer(buf)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.out.Flush()
}
