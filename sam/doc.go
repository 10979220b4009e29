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

// Package sam is a library for parsing, representing and writing
// SAM files.
//
// A SAM file starts with header lines, which are kept in the order in
// which they were read, followed by one alignment per line. The eleven
// mandatory columns of an alignment are plain struct fields; its
// optional TAG:TYPE:VALUE fields are available through the embedded
// annotation.Fields, where repeated tags contribute to the same field.
//
// Alignments can be filtered with Filter and AlignmentFilter
// predicates. RunPipeline applies such filters to a whole file,
// parsing and formatting batches of alignments in parallel using the
// pargo library.
package sam
