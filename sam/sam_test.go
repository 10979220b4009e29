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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/utils"
)

const (
	header = "@HD\tVN:1.6\tSO:coordinate\n" +
		"@SQ\tSN:chr1\tLN:1000\n" +
		"@CO\thello world\n" +
		"@SQ\tSN:chr2\tLN:500\n" +
		"@xy\tAB:user\n"
	aln1 = "r1\t0\tchr1\t1\t60\t4M\t*\t0\t0\tACGT\tIIII\tNM:i:0"
	aln2 = "r2\t4\t*\t0\t0\t*\t*\t0\t0\tACGT\tIIII"
	aln3 = "r3\t1024\tchr2\t7\t30\t2M1I1M\t=\t20\t17\tACGT\tIIII\tRG:Z:grp"
	file = header + aln1 + "\n" + aln2 + "\n" + aln3 + "\n"
)

func TestParseHeader(t *testing.T) {
	hdr, lines, err := ParseHeader(bufio.NewReader(strings.NewReader(file)))
	if err != nil {
		t.Fatal(err)
	}
	if lines != 5 {
		t.Errorf("header lines = %v", lines)
	}
	if hdr.String() != header {
		t.Errorf("header = %q", hdr.String())
	}
	if so := hdr.HD_SO(); so != "coordinate" {
		t.Errorf("HD_SO = %q", so)
	}
	if grouping := hdr.HD_GO(); grouping != "none" {
		t.Errorf("HD_GO = %q", grouping)
	}
	sq := hdr.SQ()
	if len(sq) != 2 {
		t.Fatalf("SQ = %v", sq)
	}
	if ln, err := SQ_LN(sq[1]); err != nil || ln != 500 {
		t.Errorf("SQ_LN = %v, %v", ln, err)
	}
	if co := hdr.CO(); len(co) != 1 || co[0] != "hello world" {
		t.Errorf("CO = %v", co)
	}
	if user := hdr.Records("@xy"); len(user) != 1 {
		t.Errorf("user records = %v", user)
	}
}

func TestCommentLines(t *testing.T) {
	for _, line := range []string{"@CO", "@CO\tfree text: with\ttabs"} {
		hl, err := ParseHeaderLine(line)
		if err != nil {
			t.Fatal(err)
		}
		if hl.String() != line {
			t.Errorf("String = %q, want %q", hl.String(), line)
		}
	}
}

func TestHeaderErrors(t *testing.T) {
	var fe *annotation.FormatError
	if _, err := ParseHeaderLine("@SQ\tSN:a\tSN:b"); !errors.As(err, &fe) || fe.Column != 3 {
		t.Errorf("duplicate tag = %v, want FormatError at column 3", err)
	}
	if _, err := ParseHeaderLine("@SQ\tSN"); !errors.As(err, &fe) || fe.Column != 2 {
		t.Errorf("missing colon = %v, want FormatError at column 2", err)
	}
	if _, err := ParseHeaderLine("@XX\tSN:a"); !errors.As(err, &fe) || fe.Column != 1 {
		t.Errorf("unknown code = %v, want FormatError at column 1", err)
	}

	var le *annotation.LineError
	_, err := Stream(strings.NewReader("@SQ\tSN:a\tLN:1\n@HD\tVN:1.6\n"), func(*Alignment) bool { return true })
	if !errors.As(err, &le) || le.Line != 2 {
		t.Errorf("late @HD = %v, want LineError at line 2", err)
	}

	if _, err := SQ_LN(utils.StringMap{{Key: "SN", Value: "a"}}); err == nil {
		t.Error("SQ_LN without LN succeeded")
	}
}

func TestEnsureHD(t *testing.T) {
	hdr := NewHeader()
	if err := hdr.AddRecord("@SQ", utils.StringMap{{Key: "SN", Value: "chr1"}}); err != nil {
		t.Fatal(err)
	}
	if err := hdr.AddRecord("@HD", nil); err == nil {
		t.Error("AddRecord accepted @HD")
	}
	hdr.SetHD_SO("queryname")
	hdr.AddComment("done")
	const want = "@HD\tVN:1.6\tSO:queryname\n@SQ\tSN:chr1\n@CO\tdone\n"
	if hdr.String() != want {
		t.Errorf("header = %q", hdr.String())
	}
	hdr.SetHD_GO("query")
	if hdr.HD_SO() != "unknown" || hdr.HD_GO() != "query" {
		t.Errorf("HD = %v", hdr.HD())
	}
}

func TestParseAlignment(t *testing.T) {
	aln, err := ParseAlignment(aln3)
	if err != nil {
		t.Fatal(err)
	}
	if aln.QNAME != "r3" || aln.FLAG != 1024 || aln.RNAME != "chr2" || aln.POS != 7 || aln.MAPQ != 30 ||
		aln.CIGAR != "2M1I1M" || aln.RNEXT != "=" || aln.PNEXT != 20 || aln.TLEN != 17 {
		t.Errorf("alignment = %+v", aln)
	}
	if rg, ok, err := aln.RG(); err != nil || !ok || rg != "grp" {
		t.Errorf("RG = %q, %v, %v", rg, ok, err)
	}
	if aln.String() != aln3 {
		t.Errorf("String = %q", aln.String())
	}
	if !aln.IsDuplicate() || aln.IsUnmapped() || !aln.FlagNotAny(Unmapped|Secondary) {
		t.Errorf("FLAG predicates wrong for %v", aln.FLAG)
	}
}

func TestArrayFields(t *testing.T) {
	line := aln1 + "\tZB:B:i,1,2\tZT:B:f,3.4,4.5"
	aln, err := ParseAlignment(line)
	if err != nil {
		t.Fatal(err)
	}
	ints, err := aln.FieldIntegers("ZB")
	if err != nil || len(ints) != 2 || ints[0] != 1 || ints[1] != 2 {
		t.Errorf("FieldIntegers = %v, %v", ints, err)
	}
	floats, err := aln.FieldFloats("ZT")
	if err != nil || len(floats) != 2 || floats[0] != 3.4 || floats[1] != 4.5 {
		t.Errorf("FieldFloats = %v, %v", floats, err)
	}
	if aln.String() != line {
		t.Errorf("String = %q", aln.String())
	}
}

func TestRepeatedFields(t *testing.T) {
	aln, err := ParseAlignment(aln2 + "\tXA:Z:a\tXA:Z:b")
	if err != nil {
		t.Fatal(err)
	}
	if values := aln.Values("XA"); len(values) != 2 || values[0] != "a" || values[1] != "b" {
		t.Errorf("Values = %v", values)
	}
	interleaved := "r1\t0\tchr1\t1\t60\t4M\t*\t0\t0\tACGT\tIIII\tXA:Z:a\tNM:i:1\tXA:Z:b"
	aln, err = ParseAlignment(interleaved)
	if err != nil {
		t.Fatal(err)
	}
	if aln.String() != interleaved {
		t.Errorf("String = %q, want %q", aln.String(), interleaved)
	}
	var fe *annotation.FormatError
	if _, err := ParseAlignment(aln2 + "\tXA:Z:a\tXA:i:1"); !errors.As(err, &fe) || fe.Column != 13 {
		t.Errorf("conflicting types = %v, want FormatError at column 13", err)
	}
}

func TestAlignmentErrors(t *testing.T) {
	var fe *annotation.FormatError
	if _, err := ParseAlignment(strings.Replace(aln2, "\t4\t", "\tfour\t", 1)); !errors.As(err, &fe) || fe.Column != 2 {
		t.Errorf("bad FLAG = %v, want FormatError at column 2", err)
	}
	if _, err := ParseAlignment("r1\t0\tchr1"); !errors.As(err, &fe) || fe.Column != 3 {
		t.Errorf("short line = %v, want FormatError at column 3", err)
	}
	if _, err := ParseAlignment(aln2 + "\tNM:i:x"); !errors.As(err, &fe) || fe.Column != 12 {
		t.Errorf("bad field = %v, want FormatError at column 12", err)
	}
	var ce *annotation.ConstraintError
	if _, err := ParseAlignment(strings.Replace(aln1, "chr1\t1\t", "chr1\t-1\t", 1)); !errors.As(err, &ce) {
		t.Errorf("negative POS = %v, want ConstraintError", err)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder()
	aln, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := aln.String(); got != "*\t0\t*\t0\t255\t*\t*\t0\t0\t*\t*" {
		t.Errorf("default alignment = %q", got)
	}
	aln, err = b.WithQNAME("r1").WithRNAME("chr1").WithPOS(1).WithMAPQ(60).WithCIGAR("4M").
		WithSEQ("ACGT").WithQUAL("IIII").WithField("NM", annotation.Integer, "0").Build()
	if err != nil {
		t.Fatal(err)
	}
	if aln.String() != aln1 {
		t.Errorf("built %q", aln.String())
	}
	parsed, _ := ParseAlignment(aln1)
	if !aln.Equal(parsed) {
		t.Error("built and parsed alignments differ")
	}
	aln, err = b.ReplaceField("NM", annotation.Integer, "2").Build()
	if err != nil {
		t.Fatal(err)
	}
	if nm, err := aln.FieldInteger("NM"); err != nil || nm != 2 {
		t.Errorf("NM = %v, %v", nm, err)
	}
	if _, err := b.Reset().WithQNAME("").Build(); err == nil {
		t.Error("empty QNAME accepted")
	}
}

func TestStream(t *testing.T) {
	var names []string
	hdr, err := Stream(strings.NewReader(file+"\n"), func(aln *Alignment) bool {
		names = append(names, aln.QNAME)
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(hdr.Lines) != 5 || strings.Join(names, ",") != "r1,r2,r3" {
		t.Errorf("streamed %v", names)
	}

	names = nil
	if _, err := Stream(strings.NewReader(file), func(aln *Alignment) bool {
		names = append(names, aln.QNAME)
		return false
	}); err != nil || len(names) != 1 {
		t.Errorf("early stop = %v, %v", names, err)
	}

	var le *annotation.LineError
	bad := header + aln1 + "\nr2\t0\n"
	if _, err := Stream(strings.NewReader(bad), func(*Alignment) bool { return true }); !errors.As(err, &le) || le.Line != 7 {
		t.Errorf("bad line = %v, want LineError at line 7", err)
	}
}

func TestReadWrite(t *testing.T) {
	sam, err := Read(strings.NewReader(file))
	if err != nil {
		t.Fatal(err)
	}
	if len(sam.Alignments) != 3 {
		t.Fatalf("read %v alignments", len(sam.Alignments))
	}

	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	if err := sam.Format(out); err != nil {
		t.Fatal(err)
	}
	if err := out.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != file {
		t.Errorf("Format = %q", buf.String())
	}

	buf.Reset()
	w := NewWriter(&buf)
	if err := w.WriteHeader(sam.Header); err != nil {
		t.Fatal(err)
	}
	for _, aln := range sam.Alignments {
		if err := w.Write(aln); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != file {
		t.Errorf("Writer = %q", buf.String())
	}
}

func TestFilters(t *testing.T) {
	sam, err := Read(strings.NewReader(file))
	if err != nil {
		t.Fatal(err)
	}
	sam.Filter(FilterUnmappedReads, FilterDuplicateReads)
	if len(sam.Alignments) != 1 || sam.Alignments[0].QNAME != "r1" {
		t.Errorf("filtered = %v", sam.Alignments)
	}

	sam, _ = Read(strings.NewReader(file))
	sam.Filter(FilterMappingQuality(30))
	if len(sam.Alignments) != 2 || sam.Alignments[1].QNAME != "r3" {
		t.Errorf("mapping quality filter kept %v", len(sam.Alignments))
	}

	sam, _ = Read(strings.NewReader(file))
	sam.Filter(FilterNonExactMappingReads, RenameChromosomes)
	if len(sam.Alignments) != 2 {
		t.Fatalf("filtered = %v", sam.Alignments)
	}
	if sam.Alignments[0].RNAME != "chrchr1" || sam.Alignments[1].RNAME != "*" {
		t.Errorf("renamed = %q, %q", sam.Alignments[0].RNAME, sam.Alignments[1].RNAME)
	}
	if sn, _ := sam.Header.SQ()[0].Get("SN"); sn != "chrchr1" {
		t.Errorf("renamed SN = %q", sn)
	}
}

func TestReadGroupAndOptionalFields(t *testing.T) {
	sam, err := Read(strings.NewReader(file))
	if err != nil {
		t.Fatal(err)
	}
	rg, err := AddOrReplaceReadGroup(utils.StringMap{{Key: "ID", Value: "new"}, {Key: "SM", Value: "sample"}})
	if err != nil {
		t.Fatal(err)
	}
	sam.Filter(rg, RemoveOptionalFields([]string{"NM"}))
	for _, aln := range sam.Alignments {
		if id, ok, _ := aln.RG(); !ok || id != "new" {
			t.Errorf("%v has RG %q", aln.QNAME, id)
		}
		if aln.ContainsKey("NM") {
			t.Errorf("%v still has NM", aln.QNAME)
		}
	}
	if rgs := sam.Header.RG(); len(rgs) != 1 {
		t.Errorf("RG = %v", rgs)
	}
	if _, err := AddOrReplaceReadGroup(utils.StringMap{{Key: "SM", Value: "sample"}}); err == nil {
		t.Error("read group without ID accepted")
	}

	sam.Filter(KeepOptionalFields(nil))
	if sam.Alignments[0].Len() != 0 {
		t.Errorf("fields left: %v", sam.Alignments[0].Tags())
	}
}

func TestReplaceReferenceSequenceDictionary(t *testing.T) {
	sam, err := Read(strings.NewReader(file))
	if err != nil {
		t.Fatal(err)
	}
	sam.Filter(ReplaceReferenceSequenceDictionary([]utils.StringMap{{{Key: "SN", Value: "chr2"}, {Key: "LN", Value: "500"}}}))
	if len(sam.Alignments) != 1 || sam.Alignments[0].QNAME != "r3" {
		t.Errorf("filtered = %v", sam.Alignments)
	}
	const want = "@HD\tVN:1.6\tSO:coordinate\n@SQ\tSN:chr2\tLN:500\n@CO\thello world\n@xy\tAB:user\n"
	if sam.Header.String() != want {
		t.Errorf("header = %q", sam.Header.String())
	}
}

func TestAddPGLine(t *testing.T) {
	hdr := NewHeader()
	AddPGLine(utils.StringMap{{Key: "ID", Value: "a"}})(hdr)
	AddPGLine(utils.StringMap{{Key: "ID", Value: "b"}})(hdr)
	pgs := hdr.PG()
	if len(pgs) != 2 {
		t.Fatalf("PG = %v", pgs)
	}
	if pp, _ := pgs[1].Get("PP"); pp != "a" {
		t.Errorf("PP = %q", pp)
	}
	AddPGLine(utils.StringMap{{Key: "ID", Value: "a"}})(hdr)
	if id, _ := hdr.PG()[2].Get("ID"); id == "a" {
		t.Error("duplicate @PG ID")
	}
}

func TestRunPipeline(t *testing.T) {
	var buf bytes.Buffer
	filters := []Filter{FilterUnmappedReads, AddPGLine(utils.StringMap{{Key: "ID", Value: "dshbio"}})}
	if err := RunPipeline(strings.NewReader(file), &buf, filters); err != nil {
		t.Fatal(err)
	}
	want := header + "@PG\tID:dshbio\n" + aln1 + "\n" + aln3 + "\n"
	if buf.String() != want {
		t.Errorf("output = %q", buf.String())
	}

	var le *annotation.LineError
	bad := file + "r4\t0\tchr1\tx\n"
	if err := RunPipeline(strings.NewReader(bad), &buf, nil); !errors.As(err, &le) || le.Line != 9 {
		t.Errorf("bad line = %v, want LineError at line 9", err)
	}
}

func TestParseHeaderLineFromString(t *testing.T) {
	record, err := ParseHeaderLineFromString("ID:g1  SM:sample\tPL:illumina")
	if err != nil {
		t.Fatal(err)
	}
	if len(record) != 3 {
		t.Fatalf("record = %v", record)
	}
	if sm, _ := record.Get("SM"); sm != "sample" {
		t.Errorf("SM = %q", sm)
	}
	if _, err := ParseHeaderLineFromString("ID:g1 ID:g2"); err == nil {
		t.Error("duplicate tag accepted")
	}
}
