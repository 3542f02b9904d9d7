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

package index

// Stats summarizes an index.
type Stats struct {
	Identifiers int `json:"identifiers" yaml:"identifiers"`
	Shortnames  int `json:"shortnames" yaml:"shortnames"`
	// Parents counts entries with at least one child.
	Parents int `json:"parents" yaml:"parents"`
	// Untyped counts entries without an inferred type.
	Untyped int `json:"untyped" yaml:"untyped"`
	// Types maps inferred type to entry count.
	Types map[string]int `json:"types" yaml:"types"`
	// Repos maps repository full name to entry count.
	Repos map[string]int `json:"repos" yaml:"repos"`
}

// Stats computes counts over the index.
func (ix *Index) Stats() Stats {
	s := Stats{
		Identifiers: len(ix.identifiers),
		Shortnames:  len(ix.shortnames),
		Types:       make(map[string]int),
		Repos:       make(map[string]int),
	}
	for _, e := range ix.identifiers {
		if len(e.Children) > 0 {
			s.Parents++
		}
		if e.InferredType == "" {
			s.Untyped++
		} else {
			s.Types[e.InferredType]++
		}
		s.Repos[e.Repo]++
	}
	return s
}
