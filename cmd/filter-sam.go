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
	"fmt"
	"io"
	"log"
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/exascience/dshbio/sam"
	"github.com/exascience/dshbio/utils"
)

type samOptions struct {
	replaceReferenceSequences        string
	dropUnmapped, dropUnmappedStrict bool
	minMapQ                          uint8
	filterNonExactMappingReads       bool
	filterNonExactMappingReadsStrict bool
	replaceReadGroup                 string
	removeDuplicates                 bool
	removeOptionalFields             string
	keepOptionalFields               string
	renameChromosomes                bool
}

// filters returns the SAM filters selected by o, in the order in which
// they are applied, followed by a filter that adds a @PG line for
// dshbio itself.
func (o *samOptions) filters() ([]sam.Filter, error) {
	var (
		filters []sam.Filter
		command bytes.Buffer
	)
	fmt.Fprint(&command, utils.ProgramName, " filter-sam input output")
	if o.replaceReferenceSequences != "" {
		filter, err := sam.ReplaceReferenceSequenceDictionaryFromSamFile(o.replaceReferenceSequences)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
		fmt.Fprint(&command, " --replace-reference-sequences ", o.replaceReferenceSequences)
	}
	if o.dropUnmappedStrict {
		filters = append(filters, sam.FilterUnmappedReadsStrict)
		fmt.Fprint(&command, " --drop-unmapped-strict")
	} else if o.dropUnmapped {
		filters = append(filters, sam.FilterUnmappedReads)
		fmt.Fprint(&command, " --drop-unmapped")
	}
	if o.minMapQ > 0 {
		filters = append(filters, sam.FilterMappingQuality(o.minMapQ))
		fmt.Fprint(&command, " --min-mapq ", o.minMapQ)
	}
	if o.filterNonExactMappingReads {
		filters = append(filters, sam.FilterNonExactMappingReads)
		fmt.Fprint(&command, " --filter-non-exact-mapping-reads")
	}
	if o.filterNonExactMappingReadsStrict {
		filters = append(filters, sam.FilterNonExactMappingReadsStrict)
		fmt.Fprint(&command, " --filter-non-exact-mapping-reads-strict")
	}
	if o.removeDuplicates {
		filters = append(filters, sam.FilterDuplicateReads)
		fmt.Fprint(&command, " --remove-duplicates")
	}
	if o.replaceReadGroup != "" {
		record, err := sam.ParseHeaderLineFromString(o.replaceReadGroup)
		if err != nil {
			return nil, err
		}
		filter, err := sam.AddOrReplaceReadGroup(record)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
		fmt.Fprint(&command, " --replace-read-group \"", o.replaceReadGroup, "\"")
	}
	if o.removeOptionalFields != "" && o.keepOptionalFields != "" {
		log.Println("Warning: both --remove-optional-fields and --keep-optional-fields are set; only --remove-optional-fields is applied.")
	}
	switch {
	case o.removeOptionalFields == "all":
		filters = append(filters, sam.KeepOptionalFields(nil))
		fmt.Fprint(&command, " --remove-optional-fields all")
	case o.removeOptionalFields != "":
		filters = append(filters, sam.RemoveOptionalFields(strings.Split(o.removeOptionalFields, ",")))
		fmt.Fprint(&command, " --remove-optional-fields \"", o.removeOptionalFields, "\"")
	case o.keepOptionalFields == "none":
		filters = append(filters, sam.KeepOptionalFields(nil))
		fmt.Fprint(&command, " --keep-optional-fields none")
	case o.keepOptionalFields != "":
		filters = append(filters, sam.KeepOptionalFields(strings.Split(o.keepOptionalFields, ",")))
		fmt.Fprint(&command, " --keep-optional-fields \"", o.keepOptionalFields, "\"")
	}
	if o.renameChromosomes {
		filters = append(filters, sam.RenameChromosomes)
		fmt.Fprint(&command, " --rename-chromosomes")
	}
	filters = append(filters, sam.AddPGLine(utils.StringMap{
		{Key: "ID", Value: utils.ProgramName},
		{Key: "PN", Value: utils.ProgramName},
		{Key: "VN", Value: utils.ProgramVersion},
		{Key: "CL", Value: command.String()},
	}))
	return filters, nil
}

func registerFilterSam(app *kingpin.Application, global *globalOptions) {
	var (
		options       samOptions
		input, output string
	)
	command := app.Command("filter-sam", "Filter SAM alignments and update the header accordingly.")
	command.Flag("replace-reference-sequences", "Replace the reference sequence dictionary by the one in this SAM file.").StringVar(&options.replaceReferenceSequences)
	command.Flag("drop-unmapped", "Remove unmapped alignments, based on FLAG.").BoolVar(&options.dropUnmapped)
	command.Flag("drop-unmapped-strict", "Remove unmapped alignments, based on FLAG, POS and RNAME.").BoolVar(&options.dropUnmappedStrict)
	command.Flag("min-mapq", "Remove alignments with a lower mapping quality.").Default("0").Uint8Var(&options.minMapQ)
	command.Flag("filter-non-exact-mapping-reads", "Remove alignments whose CIGAR has anything but M and S operations.").BoolVar(&options.filterNonExactMappingReads)
	command.Flag("filter-non-exact-mapping-reads-strict", "Remove alignments that are not unique exact matches according to X0, X1, XM, XO and XG.").BoolVar(&options.filterNonExactMappingReadsStrict)
	command.Flag("remove-duplicates", "Remove alignments flagged as duplicates.").BoolVar(&options.removeDuplicates)
	command.Flag("replace-read-group", "Add or replace the read group, given as \"ID:group SM:sample ...\".").StringVar(&options.replaceReadGroup)
	command.Flag("remove-optional-fields", "Remove the given comma-separated optional fields, or all.").StringVar(&options.removeOptionalFields)
	command.Flag("keep-optional-fields", "Remove all but the given comma-separated optional fields, or none.").StringVar(&options.keepOptionalFields)
	command.Flag("rename-chromosomes", "Prefix reference sequence names with chr.").BoolVar(&options.renameChromosomes)
	command.Arg("input", "Input SAM file, or - for stdin.").Required().StringVar(&input)
	command.Arg("output", "Output SAM file, or - for stdout.").Required().StringVar(&output)
	command.Action(func(*kingpin.ParseContext) error {
		ok := checkExist("", input) && checkCreate("", output)
		if options.replaceReferenceSequences != "" && !checkExist("--replace-reference-sequences", options.replaceReferenceSequences) {
			ok = false
		}
		if !ok {
			return sanityChecksFailed("filter-sam")
		}
		filters, err := options.filters()
		if err != nil {
			return err
		}
		return timedRun(global.timed, "Filtering SAM alignments.", func() error {
			return withFiles(input, output, func(in io.Reader, out io.Writer) error {
				return sam.RunPipeline(in, out, filters)
			})
		})
	})
}
