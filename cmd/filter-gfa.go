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
	"io"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/exascience/dshbio/gfa"
	"github.com/exascience/dshbio/gfa1"
	"github.com/exascience/dshbio/gfa2"
)

// filterGfa1 copies the GFA 1.0 records of r whose kind is in kinds to
// w.
func filterGfa1(r io.Reader, w io.Writer, kinds gfa.Kinds) error {
	out := gfa1.NewWriter(w)
	var err error
	if serr := gfa1.StreamKinds(r, kinds, func(record gfa1.Record) bool {
		err = out.Write(record)
		return err == nil
	}); serr != nil {
		return serr
	}
	if err != nil {
		return err
	}
	return out.Flush()
}

// filterGfa2 copies the GFA 2.0 records of r whose kind is in kinds to
// w.
func filterGfa2(r io.Reader, w io.Writer, kinds gfa.Kinds) error {
	out := gfa2.NewWriter(w)
	var err error
	if serr := gfa2.StreamKinds(r, kinds, func(record gfa2.Record) bool {
		err = out.Write(record)
		return err == nil
	}); serr != nil {
		return serr
	}
	if err != nil {
		return err
	}
	return out.Flush()
}

func registerFilterGfa1(app *kingpin.Application, global *globalOptions) {
	var kinds, input, output string
	command := app.Command("filter-gfa1", "Keep only the given kinds of GFA 1.0 records.")
	command.Flag("kinds", "Comma-separated record types to keep.").Default(gfa1.AllKinds().String()).StringVar(&kinds)
	command.Arg("input", "Input GFA 1.0 file, or - for stdin.").Required().StringVar(&input)
	command.Arg("output", "Output GFA 1.0 file, or - for stdout.").Required().StringVar(&output)
	command.Action(func(*kingpin.ParseContext) error {
		parsedKinds, err := gfa1.ParseKinds(kinds)
		if err != nil {
			return err
		}
		if !checkExist("", input) || !checkCreate("", output) {
			return sanityChecksFailed("filter-gfa1")
		}
		return timedRun(global.timed, "Filtering GFA 1.0 records.", func() error {
			return withFiles(input, output, func(in io.Reader, out io.Writer) error {
				return filterGfa1(in, out, parsedKinds)
			})
		})
	})
}

func registerFilterGfa2(app *kingpin.Application, global *globalOptions) {
	var kinds, input, output string
	command := app.Command("filter-gfa2", "Keep only the given kinds of GFA 2.0 records.")
	command.Flag("kinds", "Comma-separated record types to keep.").Default(gfa2.AllKinds().String()).StringVar(&kinds)
	command.Arg("input", "Input GFA 2.0 file, or - for stdin.").Required().StringVar(&input)
	command.Arg("output", "Output GFA 2.0 file, or - for stdout.").Required().StringVar(&output)
	command.Action(func(*kingpin.ParseContext) error {
		parsedKinds, err := gfa2.ParseKinds(kinds)
		if err != nil {
			return err
		}
		if !checkExist("", input) || !checkCreate("", output) {
			return sanityChecksFailed("filter-gfa2")
		}
		return timedRun(global.timed, "Filtering GFA 2.0 records.", func() error {
			return withFiles(input, output, func(in io.Reader, out io.Writer) error {
				return filterGfa2(in, out, parsedKinds)
			})
		})
	})
}
