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

// Package annotation implements the optional-field model shared by
// SAM, PAF and GFA records: TAG:TYPE:VALUE annotations, records that
// map tags to annotations, and multimaps of raw field values with
// type-directed parse functions.
//
// An Annotation keeps its values in their original textual form, so
// that formatting a parsed annotation reproduces the input exactly.
// Values are checked against their type when an annotation is
// constructed, and decoded on access by the As* methods.
//
// A Record holds at most one annotation per tag (GFA convention). A
// Fields value accumulates every token seen for a tag, so that a
// SAM or PAF array may be spread over several tokens with the same
// tag. The Parse* functions decode such multimaps and enforce arity
// across all values collected for a tag.
//
// All values of type Annotation, Record and Fields are immutable.
// Builders own their state until Build, which returns a frozen copy.
package annotation
