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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/exascience/pargo/pipeline"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/exascience/dshbio/annotation"
	"github.com/exascience/dshbio/paf"
)

type pafOptions struct {
	minMapQ int64
	strand  string
	query   string
}

func (o *pafOptions) keep(record *paf.Record) bool {
	if record.MappingQuality < o.minMapQ {
		return false
	}
	if o.strand != "" && string(rune(record.Strand)) != o.strand {
		return false
	}
	return o.query == "" || record.QueryName == o.query
}

// The number of lines per batch. It is fixed so that line numbers can
// be derived from batch sequence numbers.
const pafBatchSize = 4096

// filterPaf copies the PAF records of r that keep accepts to w, in
// input order. Batches of lines are parsed and formatted in parallel.
func filterPaf(r io.Reader, w io.Writer, keep func(*paf.Record) bool) error {
	out := bufio.NewWriter(w)
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(r))
	p.SetVariableBatchSize(pafBatchSize, pafBatchSize)
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(seqNo int, data interface{}) interface{} {
			var buf []byte
			for index, line := range data.([]string) {
				line = strings.TrimSuffix(line, "\r")
				if strings.TrimSpace(line) == "" {
					continue
				}
				record, err := paf.ParseRecord(line)
				if err != nil {
					p.SetErr(&annotation.LineError{Line: seqNo*pafBatchSize + index + 1, Err: err})
					return buf
				}
				if keep(record) {
					buf = append(record.AppendFormat(buf), '\n')
				}
			}
			return buf
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			if _, err := out.Write(data.([]byte)); err != nil {
				p.SetErr(fmt.Errorf("%v, while writing PAF records to output", err))
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

func registerFilterPaf(app *kingpin.Application, global *globalOptions) {
	var (
		options       pafOptions
		input, output string
	)
	command := app.Command("filter-paf", "Filter PAF records by mapping quality, strand or query name.")
	command.Flag("min-mapq", "Remove records with a lower mapping quality.").Default("0").Int64Var(&options.minMapQ)
	command.Flag("strand", "Keep only records on this relative strand.").EnumVar(&options.strand, "+", "-")
	command.Flag("query", "Keep only records for this query sequence.").StringVar(&options.query)
	command.Arg("input", "Input PAF file, or - for stdin.").Required().StringVar(&input)
	command.Arg("output", "Output PAF file, or - for stdout.").Required().StringVar(&output)
	command.Action(func(*kingpin.ParseContext) error {
		if !checkExist("", input) || !checkCreate("", output) {
			return sanityChecksFailed("filter-paf")
		}
		return timedRun(global.timed, "Filtering PAF records.", func() error {
			return withFiles(input, output, func(in io.Reader, out io.Writer) error {
				return filterPaf(in, out, options.keep)
			})
		})
	})
}
