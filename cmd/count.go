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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/exascience/dshbio/gfa1"
	"github.com/exascience/dshbio/gfa2"
	"github.com/exascience/dshbio/internal"
	"github.com/exascience/dshbio/paf"
	"github.com/exascience/dshbio/sam"
	"github.com/exascience/dshbio/vcf"
)

// formatOf returns the file format of name, based on its extension.
func formatOf(name string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".paf", ".sam", ".gfa1", ".gfa2", ".vcf":
		return ext[1:], nil
	case ".gfa":
		return "gfa1", nil
	default:
		return "", fmt.Errorf("%v: unknown file format %q", name, ext)
	}
}

// countFile returns the number of records in the named file. For SAM
// and VCF files, header lines are not counted.
func countFile(ctx context.Context, name string) (count int, err error) {
	format, err := formatOf(name)
	if err != nil {
		return 0, err
	}
	next := func() bool {
		count++
		return ctx.Err() == nil
	}
	switch format {
	case "paf":
		err = paf.StreamFile(name, func(*paf.Record) bool { return next() })
	case "gfa1":
		err = gfa1.StreamFile(name, func(gfa1.Record) bool { return next() })
	case "gfa2":
		err = gfa2.StreamFile(name, func(gfa2.Record) bool { return next() })
	case "sam":
		_, err = sam.StreamFile(name, func(*sam.Alignment) bool { return next() })
	case "vcf":
		count, err = countVcfFile(name)
	}
	if err == nil {
		err = ctx.Err()
	}
	return count, err
}

func countVcfFile(name string) (count int, err error) {
	file, err := internal.Open(name)
	if err != nil {
		return 0, err
	}
	defer internal.Close(file, &err)
	reader := bufio.NewReader(file)
	if _, _, err = vcf.ParseHeader(reader); err != nil {
		return 0, err
	}
	for {
		line, err := reader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			count++
		}
		if err == io.EOF {
			return count, nil
		} else if err != nil {
			return count, err
		}
	}
}

// countFiles counts the records of the named files concurrently. The
// first failure cancels the remaining files.
func countFiles(ctx context.Context, names []string) ([]int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	counts := make([]int, len(names))
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			count, err := countFile(ctx, name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			counts[i] = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

func registerCount(app *kingpin.Application, global *globalOptions) {
	var names []string
	command := app.Command("count", "Count the records of PAF, GFA, SAM or VCF files, chosen by file extension.")
	command.Arg("files", "Files to count.").Required().StringsVar(&names)
	command.Action(func(*kingpin.ParseContext) error {
		for _, name := range names {
			if !checkExist("", name) {
				return sanityChecksFailed("count")
			}
		}
		return timedRun(global.timed, "Counting records.", func() error {
			counts, err := countFiles(context.Background(), names)
			if err != nil {
				return err
			}
			out := bufio.NewWriter(os.Stdout)
			for i, name := range names {
				fmt.Fprintf(out, "%v\t%v\n", name, counts[i])
			}
			return out.Flush()
		})
	})
}
