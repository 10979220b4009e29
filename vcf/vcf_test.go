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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/exascience/dshbio/annotation"
)

const (
	dpLine     = `##INFO=<ID=DP,Number=1,Type=Integer,Description="Total Depth">`
	contigLine = `##contig=<ID=20,length=62435964,assembly=B36,species="Homo sapiens",taxonomy=x>`
)

func TestParseInfo(t *testing.T) {
	line, err := ParseHeaderLine(dpLine)
	if err != nil {
		t.Fatal(err)
	}
	info, ok := line.(*FieldInfo)
	if !ok {
		t.Fatalf("line is a %T", line)
	}
	if info.ID != "DP" || info.Number != 1 || info.Type != Integer || info.Description != "Total Depth" || !info.IsInfo() {
		t.Errorf("info = %+v", info)
	}
	if info.String() != dpLine {
		t.Errorf("String = %q", info.String())
	}

	for number, want := range map[string]int32{"A": NumberA, "R": NumberR, "G": NumberG, ".": NumberDot, "2": 2} {
		line, err := ParseHeaderLine(`##FORMAT=<ID=AD,Number=` + number + `,Type=Integer,Description="x">`)
		if err != nil {
			t.Errorf("Number=%v: %v", number, err)
			continue
		}
		if got := line.(*FieldInfo).Number; got != want {
			t.Errorf("Number=%v parsed as %v", number, got)
		}
		if FormatNumber(want) != number {
			t.Errorf("FormatNumber(%v) = %q", want, FormatNumber(want))
		}
	}
}

func TestFlags(t *testing.T) {
	if _, err := ParseHeaderLine(`##INFO=<ID=DB,Number=0,Type=Flag,Description="dbSNP membership, build 129">`); err != nil {
		t.Error(err)
	}
	var ce *annotation.ConstraintError
	if _, err := ParseHeaderLine(`##INFO=<ID=DB,Number=1,Type=Flag,Description="x">`); !errors.As(err, &ce) {
		t.Errorf("Flag with Number 1 = %v, want ConstraintError", err)
	}
	if _, err := ParseHeaderLine(`##FORMAT=<ID=F,Number=0,Type=Flag,Description="x">`); !errors.As(err, &ce) {
		t.Errorf("FORMAT Flag = %v, want ConstraintError", err)
	}
}

func TestParseErrors(t *testing.T) {
	var fe *annotation.FormatError
	var mk *annotation.MissingKeyError
	if _, err := ParseHeaderLine(`##FILTER=<Description="x">`); !errors.As(err, &fe) || !errors.As(err, &mk) || mk.Key != "ID" {
		t.Errorf("missing ID = %v, want FormatError for missing ID", err)
	}
	if _, err := ParseHeaderLine(`##foo=<A=1>`); !errors.As(err, &mk) || mk.Key != "ID" {
		t.Errorf("generic line without ID = %v", err)
	}
	if _, err := ParseHeaderLine(`##INFO=<ID=DP,Type=Integer,Description="x">`); !errors.As(err, &mk) || mk.Key != "Number" {
		t.Errorf("missing Number = %v", err)
	}
	for _, line := range []string{
		`##INFO=<ID=DP,Number=x,Type=Integer,Description="x">`,
		`##INFO=<ID=DP,Number=-1,Type=Integer,Description="x">`,
		`##INFO=<ID=DP,Number=1,Type=Int,Description="x">`,
		`##contig=<ID=1,ID=2>`,
		`##contig=<ID=1,length=long>`,
		`##INFO=<ID=DP,Number=1`,
		`##INFO=<ID=DP,Description="unterminated>`,
		`#INFO=<ID=DP>`,
		`##INFO`,
	} {
		if _, err := ParseHeaderLine(line); !errors.As(err, &fe) {
			t.Errorf("%v: error = %v, want FormatError", line, err)
		}
	}
}

func TestQuoting(t *testing.T) {
	const escaped = `##INFO=<ID=X,Number=.,Type=String,Description="say \"hi\" \\ there">`
	line, err := ParseHeaderLine(escaped)
	if err != nil {
		t.Fatal(err)
	}
	if d := line.(*FieldInfo).Description; d != `say "hi" \ there` {
		t.Errorf("Description = %q", d)
	}
	if line.String() != escaped {
		t.Errorf("String = %q", line.String())
	}

	line, err = ParseHeaderLine(contigLine)
	if err != nil {
		t.Fatal(err)
	}
	contig := line.(*Contig)
	if contig.ID != "20" || !contig.HasLength || contig.Length != 62435964 {
		t.Errorf("contig = %+v", contig)
	}
	if species, _ := contig.Get("species"); species != "Homo sapiens" {
		t.Errorf("species = %q", species)
	}
	if contig.String() != contigLine {
		t.Errorf("String = %q", contig.String())
	}
}

func TestOtherLines(t *testing.T) {
	line, err := ParseHeaderLine("##source=myImputationProgramV3.1")
	if err != nil {
		t.Fatal(err)
	}
	if u, ok := line.(*Unstructured); !ok || u.Key() != "source" || u.Value != "myImputationProgramV3.1" {
		t.Errorf("line = %#v", line)
	}
	if line.String() != "##source=myImputationProgramV3.1" {
		t.Errorf("String = %q", line.String())
	}

	for _, s := range []string{
		`##PEDIGREE=<ID=TumourSample,Original=GermlineID>`,
		`##SAMPLE=<ID=S1,Genomes=Germline,Description="Patient germline genome">`,
		`##META=<ID=Assay,Type=String,Number=.,Values=[WholeGenome, Exome]>`,
	} {
		line, err := ParseHeaderLine(s)
		if err != nil {
			t.Errorf("%v: %v", s, err)
			continue
		}
		if _, ok := line.(*Identified); !ok {
			t.Errorf("%v parsed as %T", s, line)
		}
		if line.String() != s {
			t.Errorf("String = %q", line.String())
		}
	}

	line, err = ParseHeaderLine(`##ALT=<ID=DEL,Description="Deletion">`)
	if err != nil {
		t.Fatal(err)
	}
	if def, ok := line.(*Definition); !ok || def.ID != "DEL" || def.Description != "Deletion" {
		t.Errorf("ALT = %#v", line)
	}
}

func TestConstructors(t *testing.T) {
	info, err := NewInfo("DP", 1, Integer, "Total Depth")
	if err != nil {
		t.Fatal(err)
	}
	if info.String() != dpLine {
		t.Errorf("NewInfo = %q", info.String())
	}
	filter, err := NewFilter("q10", "Quality below 10")
	if err != nil {
		t.Fatal(err)
	}
	if filter.String() != `##FILTER=<ID=q10,Description="Quality below 10">` {
		t.Errorf("NewFilter = %q", filter.String())
	}
	contig, err := NewContig("20", 100)
	if err != nil {
		t.Fatal(err)
	}
	if contig.String() != `##contig=<ID=20,length=100>` || contig.Length != 100 {
		t.Errorf("NewContig = %q", contig.String())
	}
	if _, err := NewFormat("GQ", 0, Flag, "x"); err == nil {
		t.Error("FORMAT Flag accepted")
	}
	s, err := NewStructured("foo", Attribute{Key: "ID", Value: "a b"})
	if err != nil {
		t.Fatal(err)
	}
	if s.String() != `##foo=<ID="a b">` {
		t.Errorf("NewStructured = %q", s.String())
	}
	if _, err := NewStructured("foo", Attribute{Key: "ID"}, Attribute{Key: "ID"}); err == nil {
		t.Error("duplicate attribute accepted")
	}
}

const header = "##fileformat=VCFv4.3\n" +
	"##source=test\n" +
	dpLine + "\n" +
	`##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">` + "\n" +
	contigLine + "\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tNA00001\tNA00002\n"

const data = "20\t14370\trs6054257\tG\tA\t29\tPASS\tDP=14\tGT\t0|0\t1|0\n"

func TestParseHeader(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(header + data))
	hdr, lines, err := ParseHeader(reader)
	if err != nil {
		t.Fatal(err)
	}
	if lines != 6 || hdr.FileFormat != "VCFv4.3" {
		t.Errorf("lines = %v, file format = %q", lines, hdr.FileFormat)
	}
	if len(hdr.Infos()) != 1 || len(hdr.Formats()) != 1 || len(hdr.Contigs()) != 1 || len(hdr.Filters()) != 0 {
		t.Errorf("header lines = %v", hdr.Lines)
	}
	if _, ok := hdr.Info("DP"); !ok {
		t.Error("no DP info")
	}
	if _, ok := hdr.Format("GT"); !ok {
		t.Error("no GT format")
	}
	if samples := hdr.Samples(); len(samples) != 2 || samples[1] != "NA00002" {
		t.Errorf("samples = %v", samples)
	}
	if hdr.String() != header {
		t.Errorf("String = %q", hdr.String())
	}
	if rest, _ := reader.ReadString('\n'); rest != data {
		t.Errorf("remaining = %q", rest)
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteHeader(hdr); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != header {
		t.Errorf("written = %q", buf.String())
	}
}

func TestHeaderErrors(t *testing.T) {
	var le *annotation.LineError
	for _, c := range []struct {
		input string
		line  int
	}{
		{"##source=test\n", 1},
		{"##fileformat=VCFv4.3\n##source=x\n##INFO=<ID=DP>\n", 3},
		{"##fileformat=VCFv4.3\n##fileformat=VCFv4.2\n", 2},
		{"##fileformat=VCFv4.3\n##source=x\n", 3},
		{"##fileformat=VCFv4.3\n#CHROM\tPOS\n", 2},
		{"##fileformat=VCFv4.3\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tNA1\n", 2},
	} {
		if _, err := ReadHeader(strings.NewReader(c.input)); !errors.As(err, &le) || le.Line != c.line {
			t.Errorf("%q: error = %v, want LineError at line %v", c.input, err, c.line)
		}
	}

	hdr := NewHeader()
	info, _ := NewInfo("DP", 1, Integer, "Total Depth")
	hdr.Add(info)
	want := "##fileformat=VCFv4.3\n" + dpLine + "\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"
	if hdr.String() != want {
		t.Errorf("new header = %q", hdr.String())
	}
}
