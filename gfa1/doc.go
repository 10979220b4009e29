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

/*
Package gfa1 parses and writes GFA 1.0 files.

A GFA 1.0 file holds one record per line. The first character of a
line selects its record type: H (header), S (segment), L (link), C
(containment), P (path), and the non-standard t (traversal). Each
record has positional columns followed by optional TAG:TYPE:VALUE
annotations, which are available through the embedded
annotation.Record.

Stream reads records one line at a time and passes them to a Listener;
lines of other types are skipped.
*/
package gfa1
