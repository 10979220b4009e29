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

// dshbio parses, filters and inspects annotated tab-delimited
// genomics files: SAM, PAF, GFA 1.0, GFA 2.0 and VCF headers.
//
// Please see https://github.com/exascience/dshbio for a documentation
// of the tool, and the package documentation for the libraries it is
// built on.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/dshbio/cmd"
)

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	app := cmd.NewApp()
	if _, err := app.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
