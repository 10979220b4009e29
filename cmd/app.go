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
	"errors"
	"log"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/exascience/dshbio/utils"
)

// Options shared by all commands.
type globalOptions struct {
	logPath string
	timed   bool
}

// NewApp returns the dshbio command line application with all
// commands registered. Each command runs as the action of its clause,
// so app.Parse both parses the command line and executes it.
func NewApp() *kingpin.Application {
	app := kingpin.New(utils.ProgramName, "Filter and inspect annotated tab-delimited genomics files (SAM, PAF, GFA, VCF).")
	app.Version(utils.ProgramVersion)
	app.HelpFlag.Short('h')

	global := &globalOptions{}
	app.Flag("log-path", "Also write the log to a timestamped file under this directory.").StringVar(&global.logPath)
	app.Flag("timed", "Log the time taken by the command.").BoolVar(&global.timed)
	app.PreAction(func(*kingpin.ParseContext) error {
		return setLogOutput(global.logPath)
	})

	registerFilterPaf(app, global)
	registerFilterGfa1(app, global)
	registerFilterGfa2(app, global)
	registerFilterSam(app, global)
	registerCount(app, global)
	registerVcfHeader(app, global)
	return app
}

var errSanityChecks = errors.New("sanity checks failed")

func sanityChecksFailed(command string) error {
	log.Printf("Error: sanity checks for %v failed.\n", command)
	return errSanityChecks
}
