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
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/exascience/dshbio/vcf"
)

// printFieldDefinitions writes one tab-separated row per INFO and
// FORMAT line of hdr.
func printFieldDefinitions(w io.Writer, hdr *vcf.Header) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "KIND\tID\tNumber\tType\tDescription")
	for _, infos := range [][]*vcf.FieldInfo{hdr.Infos(), hdr.Formats()} {
		for _, info := range infos {
			fmt.Fprintf(out, "%v\t%v\t%v\t%v\t%v\n", info.Key(), info.ID, vcf.FormatNumber(info.Number), info.Type, info.Description)
		}
	}
	return out.Flush()
}

func registerVcfHeader(app *kingpin.Application, global *globalOptions) {
	var input string
	command := app.Command("vcf-header", "Print the INFO and FORMAT definitions of a VCF header.")
	command.Arg("input", "Input VCF file, or - for stdin.").Required().StringVar(&input)
	command.Action(func(*kingpin.ParseContext) error {
		if !checkExist("", input) {
			return sanityChecksFailed("vcf-header")
		}
		return timedRun(global.timed, "Reading VCF header.", func() error {
			hdr, err := vcf.ReadHeaderFile(input)
			if err != nil {
				return err
			}
			return printFieldDefinitions(os.Stdout, hdr)
		})
	})
}
