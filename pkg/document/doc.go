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

// Package document models decoded recipe content as a tagged variant.
//
// Recipes arrive as property lists or YAML with optional keys at every
// level and no fixed schema. Value holds exactly one of null, string,
// integer, unsigned integer, float, bool, date, binary data, sequence, or
// mapping, and every accessor on Value and Map is a defaulting lookup:
// missing keys and type mismatches return null, empty, or false rather
// than panicking.
//
//	doc := document.FromAny(decoded)
//	m, _ := doc.Map()
//	name, ok := m.Map("Input").String("NAME")
//	display := m.Lookup("Input", "pkginfo", "display_name")
//
// ToJSON converts any Value into types encoding/json can render, so index
// entries built from recipe values stay JSON-compatible.
package document
