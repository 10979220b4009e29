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
	"math/rand"
	"strconv"
	"strings"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/internal"
	"github.com/exascience/dshbio/utils"
)

/*
A filter for replacing the reference sequence dictionary in a Header.
Alignments whose RNAME is not in the new dictionary are removed.
*/
func ReplaceReferenceSequenceDictionary(dict []utils.StringMap) Filter {
	return func(header *Header) AlignmentFilter {
		if header.HD_SO() == "coordinate" {
			previousPos := -1
			oldDict := header.SQ()
			for _, entry := range dict {
				sn, _ := entry.Get("SN")
				pos := utils.Find(oldDict, func(entry utils.StringMap) bool { value, _ := entry.Get("SN"); return value == sn })
				if pos >= 0 {
					if pos > previousPos {
						previousPos = pos
					} else {
						header.SetHD_SO("unknown")
						break
					}
				}
			}
		}
		dictTable := make(map[string]bool)
		var sq []HeaderLine
		for _, entry := range dict {
			sn, _ := entry.Get("SN")
			dictTable[sn] = true
			sq = append(sq, HeaderLine{Code: "@SQ", Fields: entry})
		}
		// the new dictionary goes where the old one started, or after @HD
		insert := -1
		var lines []HeaderLine
		for _, line := range header.Lines {
			if line.Code == "@SQ" {
				if insert < 0 {
					insert = len(lines)
				}
				continue
			}
			lines = append(lines, line)
		}
		if insert < 0 {
			if insert = 0; len(lines) > 0 && lines[0].Code == "@HD" {
				insert = 1
			}
		}
		lines = append(lines[:insert:insert], append(sq, lines[insert:]...)...)
		header.Lines = lines
		return func(aln *Alignment) bool { return dictTable[aln.RNAME] }
	}
}

/*
A filter for replacing the reference sequence dictionary in a Header
with one parsed from the given SAM file.
*/
func ReplaceReferenceSequenceDictionaryFromSamFile(samFile string) (f Filter, err error) {
	input, err := internal.Open(samFile)
	if err != nil {
		return nil, err
	}
	defer internal.Close(input, &err)
	header, _, err := ParseHeader(bufio.NewReader(input))
	if err != nil {
		return nil, err
	}
	return ReplaceReferenceSequenceDictionary(header.SQ()), nil
}

/*
A filter for removing unmapped sam-alignment instances, based on FLAG.
*/
func FilterUnmappedReads(_ *Header) AlignmentFilter {
	return func(aln *Alignment) bool { return (aln.FLAG & Unmapped) == 0 }
}

/*
A filter for removing unmapped sam-alignment instances, based on FLAG,
or POS=0, or RNAME=*.
*/
func FilterUnmappedReadsStrict(_ *Header) AlignmentFilter {
	return func(aln *Alignment) bool {
		return ((aln.FLAG & Unmapped) == 0) && (aln.POS != 0) && (aln.RNAME != "*")
	}
}

/*
A filter for removing duplicate sam-alignment instances, based on
FLAG.
*/
func FilterDuplicateReads(_ *Header) AlignmentFilter {
	return func(aln *Alignment) bool { return (aln.FLAG & Duplicate) == 0 }
}

/*
A filter for removing alignments with a mapping quality below min.
Alignments with MAPQ 255 (not available) are removed as well.
*/
func FilterMappingQuality(min byte) Filter {
	return func(_ *Header) AlignmentFilter {
		return func(aln *Alignment) bool { return aln.MAPQ != 255 && aln.MAPQ >= min }
	}
}

/*
A filter that removes all reads that are not exact matches with the reference (soft-clipping ok),
based on CIGAR string (only M and S allowed).
*/
func FilterNonExactMappingReads(_ *Header) AlignmentFilter {
	return func(aln *Alignment) bool { return !strings.ContainsAny(aln.CIGAR, "IDNHPX=") }
}

func fieldEquals(aln *Alignment, tag string, expected int64) bool {
	value, found, err := aln.FieldIntegerOpt(tag)
	return err == nil && found && value == expected
}

/*
A filter that removes all reads that are not exact matches with the reference,
based on the optional fields X0=1 (unique mapping), X1=0 (no suboptimal hit),
XM=0 (no mismatch), XO=0 (no gap opening), XG=0 (no gap extension).
*/
func FilterNonExactMappingReadsStrict(_ *Header) AlignmentFilter {
	return func(aln *Alignment) bool {
		return fieldEquals(aln, "X0", 1) &&
			fieldEquals(aln, "X1", 0) &&
			fieldEquals(aln, "XM", 0) &&
			fieldEquals(aln, "XO", 0) &&
			fieldEquals(aln, "XG", 0)
	}
}

// rebuildFields replaces the optional fields of aln with those of its
// annotations for which keep returns true.
func rebuildFields(aln *Alignment, keep func(tag string) bool, extra ...annotation.Annotation) {
	var b annotation.FieldsBuilder
	for _, a := range aln.Annotations() {
		if keep(a.Name()) {
			b.WithAnnotation(a)
		}
	}
	for _, a := range extra {
		b.WithAnnotation(a)
	}
	// the annotations were valid before and keep their types
	aln.Fields, _ = b.Build()
}

/*
A filter for adding or replacing the read group both in the Header and
each Alignment.
*/
func AddOrReplaceReadGroup(readGroup utils.StringMap) (Filter, error) {
	id, found := readGroup.Get("ID")
	if !found {
		return nil, &annotation.MissingKeyError{Key: "ID"}
	}
	rg, err := annotation.NewString("RG", id)
	if err != nil {
		return nil, err
	}
	return func(header *Header) AlignmentFilter {
		var lines []HeaderLine
		for _, line := range header.Lines {
			if line.Code != "@RG" {
				lines = append(lines, line)
			}
		}
		header.Lines = append(lines, HeaderLine{Code: "@RG", Fields: readGroup})
		return func(aln *Alignment) bool {
			rebuildFields(aln, func(tag string) bool { return tag != "RG" }, rg)
			return true
		}
	}, nil
}

/*
A filter for adding a @PG tag to a Header, and ensuring that it is the
first one in the chain.
*/
func AddPGLine(newPG utils.StringMap) Filter {
	return func(header *Header) AlignmentFilter {
		PGs := header.PG()
		id, _ := newPG.Get("ID")
		for utils.Find(PGs, func(entry utils.StringMap) bool { value, _ := entry.Get("ID"); return value == id }) >= 0 {
			id += " "
			id += strconv.FormatInt(rand.Int63n(0x10000), 16)
		}
		newPG.Set("ID", id)
		for _, PG := range PGs {
			nextID, _ := PG.Get("ID")
			if pos := utils.Find(PGs, func(entry utils.StringMap) bool { value, _ := entry.Get("PP"); return value == nextID }); pos < 0 {
				newPG.Set("PP", nextID)
				break
			}
		}
		_ = header.AddRecord("@PG", newPG)
		return nil
	}
}

/*
A filter for prepending "chr" to the reference sequence names in a
Header, and in RNAME and RNEXT in each Alignment.
*/
func RenameChromosomes(header *Header) AlignmentFilter {
	for index := range header.Lines {
		if line := &header.Lines[index]; line.Code == "@SQ" {
			if sn, found := line.Fields.Get("SN"); found {
				line.Fields.Set("SN", "chr"+sn)
			}
		}
	}
	return func(aln *Alignment) bool {
		if (aln.RNAME != "=") && (aln.RNAME != "*") {
			aln.RNAME = "chr" + aln.RNAME
		}
		if (aln.RNEXT != "=") && (aln.RNEXT != "*") {
			aln.RNEXT = "chr" + aln.RNEXT
		}
		return true
	}
}

/*
A filter for removing optional fields in an alignment.
*/
func RemoveOptionalFields(tags []string) Filter {
	if len(tags) == 0 {
		return nil
	}
	remove := make(map[string]bool, len(tags))
	for _, tag := range tags {
		remove[tag] = true
	}
	return func(_ *Header) AlignmentFilter {
		return func(aln *Alignment) bool {
			rebuildFields(aln, func(tag string) bool { return !remove[tag] })
			return true
		}
	}
}

/*
A filter for removing all but a list of given optional fields in an alignment.
*/
func KeepOptionalFields(tags []string) Filter {
	keep := make(map[string]bool, len(tags))
	for _, tag := range tags {
		keep[tag] = true
	}
	return func(_ *Header) AlignmentFilter {
		return func(aln *Alignment) bool {
			rebuildFields(aln, func(tag string) bool { return keep[tag] })
			return true
		}
	}
}
