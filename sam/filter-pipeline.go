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
	"fmt"
	"io"
	"strings"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/pargo/pipeline"
)

type (
	// An AlignmentFilter receives an Alignment which it can modify. It
	// returns true if the alignment should be kept, and false if the
	// alignment should be removed.
	AlignmentFilter func(*Alignment) bool

	// A Filter receives a Header, which it can modify, and returns an
	// AlignmentFilter or nil.
	Filter func(*Header) AlignmentFilter
)

// ComposeFilters takes a Header and a slice of Filter functions, and
// successively calls these functions to generate the corresponding
// AlignmentFilter predicates. It returns a single AlignmentFilter that
// keeps an alignment only if all of them do, or nil if all
// AlignmentFilters are nil.
func ComposeFilters(header *Header, hdrFilters []Filter) AlignmentFilter {
	var alnFilters []AlignmentFilter
	for _, f := range hdrFilters {
		if f != nil {
			if alnFilter := f(header); alnFilter != nil {
				alnFilters = append(alnFilters, alnFilter)
			}
		}
	}
	switch len(alnFilters) {
	case 0:
		return nil
	case 1:
		return alnFilters[0]
	}
	return func(aln *Alignment) bool {
		for _, alnFilter := range alnFilters {
			if !alnFilter(aln) {
				return false
			}
		}
		return true
	}
}

// FilterAlignments removes the alignments for which alnFilter returns
// false, in place, and returns the shortened slice.
func FilterAlignments(alns []*Alignment, alnFilter AlignmentFilter) []*Alignment {
	if alnFilter == nil {
		return alns
	}
	for i, aln := range alns {
		if !alnFilter(aln) {
			n := len(alns)
			for j := i + 1; j < n; j++ {
				if aln := alns[j]; alnFilter(aln) {
					alns[i] = aln
					i++
				}
			}
			for j := i; j < n; j++ {
				alns[j] = nil
			}
			return alns[0:i]
		}
	}
	return alns
}

// Filter applies the given filters to the header and alignments of
// sam.
func (sam *Sam) Filter(hdrFilters ...Filter) {
	sam.Alignments = FilterAlignments(sam.Alignments, ComposeFilters(sam.Header, hdrFilters))
}

// The number of lines in each batch of the pipeline. It is fixed so
// that each line number can be derived from the batch sequence number.
const batchSize = 4096

// RunPipeline parses the SAM file in r, applies the given filters, and
// writes the resulting header and alignments to w, in input order.
// Batches of alignment lines are parsed, filtered and formatted in
// parallel. A malformed line stops the pipeline with a
// *annotation.LineError.
func RunPipeline(r io.Reader, w io.Writer, hdrFilters []Filter) error {
	reader := bufio.NewReader(r)
	header, headerLines, err := ParseHeader(reader)
	if err != nil {
		return err
	}
	alnFilter := ComposeFilters(header, hdrFilters)

	out := bufio.NewWriter(w)
	if _, err := out.Write(header.AppendFormat(nil)); err != nil {
		return err
	}

	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(reader))
	p.SetVariableBatchSize(batchSize, batchSize)
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(seqNo int, data interface{}) interface{} {
			lines := data.([]string)
			var buf []byte
			var sc StringScanner
			for index, line := range lines {
				line = strings.TrimSuffix(line, "\r")
				if strings.TrimSpace(line) == "" {
					continue
				}
				sc.Reset(line)
				aln := sc.ParseAlignment()
				if err := sc.Err(); err != nil {
					p.SetErr(&annotation.LineError{Line: headerLines + seqNo*batchSize + index + 1, Err: err})
					return buf
				}
				if alnFilter == nil || alnFilter(aln) {
					buf = append(aln.AppendFormat(buf), '\n')
				}
			}
			return buf
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			if _, err := out.Write(data.([]byte)); err != nil {
				p.SetErr(fmt.Errorf("%v, while writing SAM alignments to output", err))
			}
			return data
		})),
	)
	p.Run()
	if err := p.Err(); err != nil {
		return err
	}
	return out.Flush()
}
