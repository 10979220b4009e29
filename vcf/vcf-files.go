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

package vcf

import (
	"bufio"
	"io"
	"strings"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/internal"
)

func lineError(line int, token, reason string) error {
	return &annotation.LineError{Line: line, Err: &annotation.FormatError{Token: token, Reason: reason}}
}

// ParseHeader parses a VCF header: the ##fileformat line, the
// meta-information lines, and the #CHROM column line. It leaves
// reader positioned at the first data line, and also returns the
// number of header lines.
func ParseHeader(reader *bufio.Reader) (hdr *Header, lines int, err error) {
	lr := internal.NewLineReader(reader)
	hdr, err = parseHeader(lr)
	return hdr, lr.Line(), err
}

func parseHeader(lr *internal.LineReader) (*Header, error) {
	line, err := lr.ReadLine()
	if err == io.EOF {
		return nil, lineError(1, "", "empty VCF file")
	} else if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "##fileformat="+fileFormatPrefix) {
		return nil, lineError(lr.Line(), line, "invalid first line in a VCF file")
	}
	hdr := &Header{FileFormat: line[len("##fileformat="):]}
	for {
		line, err = lr.ReadLine()
		if err == io.EOF {
			return nil, lineError(lr.Line()+1, "", "unexpected end of VCF header")
		} else if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(line, "##") {
			break
		}
		meta, err := ParseHeaderLine(line)
		if err != nil {
			return nil, &annotation.LineError{Line: lr.Line(), Err: err}
		}
		if meta.Key() == "fileformat" {
			return nil, lineError(lr.Line(), line, "multiple file format meta-information lines in a VCF file")
		}
		hdr.Lines = append(hdr.Lines, meta)
	}
	if !strings.HasPrefix(line, "#") {
		return nil, lineError(lr.Line(), line, "missing #CHROM line in a VCF header")
	}
	hdr.Columns = strings.Split(line[1:], "\t")
	if len(hdr.Columns) < len(DefaultHeaderColumns) {
		return nil, lineError(lr.Line(), line, "too few columns in a VCF #CHROM line")
	}
	for i, column := range DefaultHeaderColumns {
		if hdr.Columns[i] != column {
			return nil, &annotation.LineError{Line: lr.Line(), Err: &annotation.FormatError{
				Column: i + 1,
				Token:  hdr.Columns[i],
				Reason: "unexpected column in a VCF #CHROM line",
			}}
		}
	}
	if len(hdr.Columns) > len(DefaultHeaderColumns) && hdr.Columns[len(DefaultHeaderColumns)] != "FORMAT" {
		return nil, &annotation.LineError{Line: lr.Line(), Err: &annotation.FormatError{
			Column: len(DefaultHeaderColumns) + 1,
			Token:  hdr.Columns[len(DefaultHeaderColumns)],
			Reason: "sample columns must follow a FORMAT column",
		}}
	}
	return hdr, nil
}

// ReadHeader parses the header at the start of r.
func ReadHeader(r io.Reader) (*Header, error) {
	return parseHeader(internal.NewLineReader(r))
}

// ReadHeaderFile parses the header of the named file.
func ReadHeaderFile(name string) (hdr *Header, err error) {
	file, err := internal.Open(name)
	if err != nil {
		return nil, err
	}
	defer internal.Close(file, &err)
	return ReadHeader(file)
}

// AppendFormat appends the header, each line followed by a newline.
func (hdr *Header) AppendFormat(out []byte) []byte {
	out = append(append(out, "##fileformat="...), hdr.FileFormat...)
	out = append(out, '\n')
	for _, line := range hdr.Lines {
		out = append(line.AppendFormat(out), '\n')
	}
	out = append(out, '#')
	for i, column := range hdr.Columns {
		if i > 0 {
			out = append(out, '\t')
		}
		out = append(out, column...)
	}
	return append(out, '\n')
}

func (hdr *Header) String() string {
	return string(hdr.AppendFormat(nil))
}

// A Writer writes VCF headers.
type Writer struct {
	out *bufio.Writer
}

// NewWriter returns a Writer that buffers its output to w. Call
// Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// WriteHeader writes hdr.
func (w *Writer) WriteHeader(hdr *Header) error {
	buf := hdr.AppendFormat(internal.ReserveByteBuffer())
	_, err := w.out.Write(buf)
	internal.ReleaseByteBuffer(buf)
	return err
}

// WriteLine writes a single meta-information line followed by a
// newline.
func (w *Writer) WriteLine(line HeaderLine) error {
	buf := append(line.AppendFormat(internal.ReserveByteBuffer()), '\n')
	_, err := w.out.Write(buf)
	internal.ReleaseByteBuffer(buf)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.out.Flush()
}
