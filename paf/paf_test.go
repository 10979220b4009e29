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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/exascience/dshbio/annotation"
)

const line = "query\t100\t10\t20\t-\ttarget\t200\t20\t30\t42\t10\t32"

func TestParseRecord(t *testing.T) {
	r, err := ParseRecord(line)
	if err != nil {
		t.Fatal(err)
	}
	if r.Strand != Reverse || r.Matches != 42 || r.Len() != 0 {
		t.Errorf("record = %+v", r)
	}
	if r.QueryName != "query" || r.QueryLength != 100 || r.TargetEnd != 30 || r.MappingQuality != 32 {
		t.Errorf("record = %+v", r)
	}
	if got := r.String(); got != line {
		t.Errorf("String = %q, want %q", got, line)
	}
	if n := len(strings.Split(r.String(), "\t")); n != 12 {
		t.Errorf("formatted record has %d tokens", n)
	}
}

func TestRoundTripWithFields(t *testing.T) {
	const full = line + "\ttp:A:P\tcm:i:12\tcg:Z:10M\tZB:B:i,1,2"
	r, err := ParseRecord(full)
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != full {
		t.Errorf("String = %q", r.String())
	}
	again, err := ParseRecord(r.String())
	if err != nil || !again.Equal(r) {
		t.Errorf("reparsed record differs: %v", err)
	}
	if tp, ok, _ := r.AlignmentType(); !ok || tp != 'P' || !r.IsPrimary() {
		t.Errorf("AlignmentType = %c", tp)
	}
	if cg, ok, _ := r.Cigar(); !ok || cg != "10M" {
		t.Errorf("Cigar = %q", cg)
	}
	if _, ok, err := r.EditDistance(); ok || err != nil {
		t.Errorf("absent EditDistance = %v, %v", ok, err)
	}
	if values, err := r.FieldIntegers("ZB"); err != nil || len(values) != 2 {
		t.Errorf("FieldIntegers = %v, %v", values, err)
	}
}

func TestParseErrors(t *testing.T) {
	var fe *annotation.FormatError
	if _, err := ParseRecord("query\t100\t10"); !errors.As(err, &fe) {
		t.Errorf("short line = %v, want FormatError", err)
	}
	bad := strings.Replace(line, "\t-\t", "\t?\t", 1)
	if _, err := ParseRecord(bad); !errors.As(err, &fe) || fe.Column != 5 {
		t.Errorf("bad strand = %v, want FormatError at column 5", err)
	}
	bad = strings.Replace(line, "\t200\t", "\tlots\t", 1)
	if _, err := ParseRecord(bad); !errors.As(err, &fe) || fe.Column != 7 {
		t.Errorf("bad target length = %v, want FormatError at column 7", err)
	}
	var ce *annotation.ConstraintError
	bad = strings.Replace(line, "\t42\t", "\t-42\t", 1)
	if _, err := ParseRecord(bad); !errors.As(err, &ce) {
		t.Errorf("negative matches = %v, want ConstraintError", err)
	}
	if _, err := ParseRecord(line + "\tNM:i:x"); !errors.As(err, &fe) || fe.Column != 13 {
		t.Errorf("bad field = %v, want FormatError at column 13", err)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	r, err := b.WithQueryName("query").WithQueryLength(100).WithQueryStart(10).WithQueryEnd(20).
		WithStrand(Reverse).WithTargetName("target").WithTargetLength(200).WithTargetStart(20).
		WithTargetEnd(30).WithMatches(42).WithAlignmentBlockLength(10).WithMappingQuality(32).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != line {
		t.Errorf("built %q", r.String())
	}

	r2, err := b.WithField("NM", annotation.Integer, "3").Build()
	if err != nil {
		t.Fatal(err)
	}
	if d, ok, _ := r2.EditDistance(); !ok || d != 3 {
		t.Errorf("EditDistance = %v", d)
	}
	if r.Len() != 0 {
		t.Error("earlier build changed by later builder calls")
	}

	if _, err := b.Reset().Build(); err == nil {
		t.Error("Build after Reset produced a record without names")
	}
	if _, err := b.Reset().WithQueryName("q").WithTargetName("t").WithStrand(Forward).WithQueryLength(-1).Build(); err == nil {
		t.Error("negative query length accepted")
	}
}

func TestStream(t *testing.T) {
	input := line + "\n\n" + line + "\ttp:A:S\n"
	records, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[1].IsPrimary() {
		t.Errorf("Read = %v", records)
	}
	count := 0
	if err := Stream(strings.NewReader(input), func(*Record) bool { count++; return false }); err != nil || count != 1 {
		t.Errorf("early stop after %d records, %v", count, err)
	}
	err = Stream(strings.NewReader(line+"\nbroken\n"), func(*Record) bool { return true })
	var le *annotation.LineError
	if !errors.As(err, &le) || le.Line != 2 {
		t.Errorf("Stream = %v, want LineError at line 2", err)
	}
}

func TestWriter(t *testing.T) {
	r, err := ParseRecord(line + "\tNM:i:1")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	w := NewWriter(&out)
	if err := w.Write(r); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != line+"\tNM:i:1\n" {
		t.Errorf("written %q", out.String())
	}
}
