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

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/gfa1"
	"github.com/exascience/dshbio/gfa2"
	"github.com/exascience/dshbio/paf"
	"github.com/exascience/dshbio/sam"
	"github.com/exascience/dshbio/vcf"
)

const (
	paf1 = "q1\t100\t10\t20\t+\tt1\t200\t20\t30\t9\t10\t60\ttp:A:P"
	paf2 = "q2\t100\t10\t20\t-\tt1\t200\t20\t30\t9\t10\t5"
	paf3 = "q1\t100\t30\t40\t-\tt2\t200\t20\t30\t9\t10\t40"
)

func TestFilterPaf(t *testing.T) {
	input := paf1 + "\n" + paf2 + "\n\n" + paf3 + "\n"
	for _, c := range []struct {
		name    string
		options pafOptions
		want    string
	}{
		{"all", pafOptions{}, paf1 + "\n" + paf2 + "\n" + paf3 + "\n"},
		{"min-mapq", pafOptions{minMapQ: 40}, paf1 + "\n" + paf3 + "\n"},
		{"strand", pafOptions{strand: "-"}, paf2 + "\n" + paf3 + "\n"},
		{"query", pafOptions{query: "q1", strand: "+"}, paf1 + "\n"},
	} {
		t.Run(c.name, func(t *testing.T) {
			var out bytes.Buffer
			options := c.options
			if err := filterPaf(strings.NewReader(input), &out, options.keep); err != nil {
				t.Fatal(err)
			}
			if out.String() != c.want {
				t.Errorf("output = %q", out.String())
			}
		})
	}

	var le *annotation.LineError
	var out bytes.Buffer
	bad := paf1 + "\n" + paf2 + "\nq3\t100\n"
	if err := filterPaf(strings.NewReader(bad), &out, func(*paf.Record) bool { return true }); !errors.As(err, &le) || le.Line != 3 {
		t.Errorf("bad line = %v, want LineError at line 3", err)
	}
}

func TestFilterGfa(t *testing.T) {
	const input = "H\tVN:Z:1.0\nS\t11\tACCTT\nS\t12\t*\tLN:i:5\nL\t11\t+\t12\t-\t4M\n"
	kinds, err := gfa1.ParseKinds("S")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := filterGfa1(strings.NewReader(input), &out, kinds); err != nil {
		t.Fatal(err)
	}
	if want := "S\t11\tACCTT\nS\t12\t*\tLN:i:5\n"; out.String() != want {
		t.Errorf("gfa1 output = %q", out.String())
	}

	const input2 = "H\tVN:Z:2.0\nS\ts1\t100\tACGT\nE\t*\ts1+\ts1-\t0\t10$\t40\t50$\t10M\nU\t*\ts1\n"
	kinds, err = gfa2.ParseKinds("H,E")
	if err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := filterGfa2(strings.NewReader(input2), &out, kinds); err != nil {
		t.Fatal(err)
	}
	if want := "H\tVN:Z:2.0\nE\t*\ts1+\ts1-\t0\t10$\t40\t50$\t10M\n"; out.String() != want {
		t.Errorf("gfa2 output = %q", out.String())
	}

	if _, err := gfa1.ParseKinds("S,X"); err == nil {
		t.Error("unknown kind accepted")
	}
}

const samFile = "@HD\tVN:1.6\n" +
	"@SQ\tSN:1\tLN:1000\n" +
	"r1\t0\t1\t1\t60\t4M\t*\t0\t0\tACGT\tIIII\tNM:i:0\n" +
	"r2\t4\t*\t0\t0\t*\t*\t0\t0\tACGT\tIIII\n" +
	"r3\t1024\t1\t7\t20\t4M\t*\t0\t0\tACGT\tIIII\n"

func TestFilterSam(t *testing.T) {
	options := samOptions{
		dropUnmapped:         true,
		minMapQ:              10,
		removeDuplicates:     true,
		replaceReadGroup:     "ID:g1 SM:s1",
		removeOptionalFields: "NM",
		renameChromosomes:    true,
	}
	filters, err := options.filters()
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := sam.RunPipeline(strings.NewReader(samFile), &out, filters); err != nil {
		t.Fatal(err)
	}
	result, err := sam.Read(&out)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Alignments) != 1 {
		t.Fatalf("alignments = %v", result.Alignments)
	}
	aln := result.Alignments[0]
	if aln.QNAME != "r1" || aln.RNAME != "chr1" || aln.ContainsKey("NM") {
		t.Errorf("alignment = %v", aln)
	}
	if rg, _, _ := aln.RG(); rg != "g1" {
		t.Errorf("RG = %q", rg)
	}
	pg := result.Header.PG()
	if len(pg) != 1 {
		t.Fatalf("PG = %v", pg)
	}
	if cl, _ := pg[0].Get("CL"); !strings.Contains(cl, "--min-mapq 10") || !strings.Contains(cl, "--rename-chromosomes") {
		t.Errorf("CL = %q", cl)
	}
	if sn, _ := result.Header.SQ()[0].Get("SN"); sn != "chr1" {
		t.Errorf("SN = %q", sn)
	}

	options = samOptions{replaceReadGroup: "SM:s1"}
	if _, err := options.filters(); err == nil {
		t.Error("read group without ID accepted")
	}
}

func TestCountFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.paf":  paf1 + "\n" + paf2 + "\n",
		"b.gfa":  "H\tVN:Z:1.0\nS\t11\tACCTT\n",
		"c.gfa2": "H\tVN:Z:2.0\nS\ts1\t100\tACGT\nU\t*\ts1\n",
		"d.sam":  samFile,
		"e.vcf":  "##fileformat=VCFv4.3\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n1\t10\t.\tA\tG\t.\tPASS\t.\n",
	}
	var names []string
	for _, name := range []string{"a.paf", "b.gfa", "c.gfa2", "d.sam", "e.vcf"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(files[name]), 0666); err != nil {
			t.Fatal(err)
		}
		names = append(names, path)
	}
	counts, err := countFiles(context.Background(), names)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{2, 2, 3, 3, 1}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("%v: count = %v, want %v", names[i], counts[i], want[i])
		}
	}

	bad := filepath.Join(dir, "bad.paf")
	if err := os.WriteFile(bad, []byte("q1\tx\n"), 0666); err != nil {
		t.Fatal(err)
	}
	var le *annotation.LineError
	if _, err := countFiles(context.Background(), append(names, bad)); !errors.As(err, &le) {
		t.Errorf("bad file = %v, want LineError", err)
	}
	if _, err := formatOf("x.bam"); err == nil {
		t.Error("unknown extension accepted")
	}
}

func TestPrintFieldDefinitions(t *testing.T) {
	const header = "##fileformat=VCFv4.3\n" +
		`##INFO=<ID=DP,Number=1,Type=Integer,Description="Total Depth">` + "\n" +
		`##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">` + "\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"
	hdr, err := vcf.ReadHeader(strings.NewReader(header))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := printFieldDefinitions(&out, hdr); err != nil {
		t.Fatal(err)
	}
	const want = "KIND\tID\tNumber\tType\tDescription\n" +
		"INFO\tDP\t1\tInteger\tTotal Depth\n" +
		"FORMAT\tGT\t1\tString\tGenotype\n"
	if out.String() != want {
		t.Errorf("output = %q", out.String())
	}
}

func TestApp(t *testing.T) {
	app := NewApp()
	if _, err := app.Parse([]string{"no-such-command"}); err == nil {
		t.Error("unknown command accepted")
	}
	if _, err := app.Parse([]string{"filter-paf", "--strand", "x", "in", "out"}); err == nil {
		t.Error("invalid strand accepted")
	}
}
