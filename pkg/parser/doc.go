// Copyright (c) 2025, The AutoPkg Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser decodes recipe files into document maps.
//
// The decoder is chosen from the file name: paths ending in .yaml are
// decoded with gopkg.in/yaml.v3, every other recipe is decoded as a
// property list (XML or binary) with howett.net/plist.
//
// Parsing never produces a partial result. A file either decodes into a
// non-empty mapping or fails with one of two classified errors:
//
//   - *ParseError: unreadable bytes, syntax errors, or a multi-document
//     YAML stream. Carries the PARSE_ERROR code.
//   - *EmptyDocumentError: the file decoded to null, an empty mapping, or a
//     non-mapping root. Carries the EMPTY_DOCUMENT code.
//
// Usage:
//
//	doc, err := parser.ParseFile(path)
//	var pe *parser.ParseError
//	switch {
//	case errors.As(err, &pe):
//	    // record pe.Format-specific parse failure
//	case err != nil:
//	    // empty document
//	}
package parser
