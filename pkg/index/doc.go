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

// Package index assembles recipe entries into the published recipe index.
//
// The index has two tables:
//
//	identifiers: identifier -> entry
//	shortnames:  shortname  -> [identifier, ...]
//
// Entries are added in processing order. A later entry with the same
// identifier replaces the earlier one, and shortname lists keep first-seen
// order. Parent relations are registered with Link while files are
// processed and resolved once, after every repository, by Stitch:
//
//	ix := index.New()
//	ix.Add("com.example.download.Foo", parent)
//	ix.Add("com.example.munki.Foo", child)
//	ix.Link("com.example.munki.Foo", "com.example.download.Foo")
//	for _, d := range ix.Stitch() {
//	    // parent missing from the index
//	}
//
// The JSON form is {"identifiers": {...}, "shortnames": {...}}.
package index
