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

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/autopkg/index/pkg/recipe"
)

// JSON keys of the two index tables.
const (
	KeyIdentifiers = "identifiers"
	KeyShortnames  = "shortnames"
)

// Link is a pending child to parent relation registered while assembling.
type Link struct {
	Child  string
	Parent string
}

// DanglingParent is a link whose parent never made it into the index.
type DanglingParent struct {
	Child  string
	Parent string
}

func (d DanglingParent) String() string {
	return fmt.Sprintf("%s refers to missing parent recipe %s.", d.Child, d.Parent)
}

// Index maps recipe identifiers to entries and shortnames to identifiers.
// It is not safe for concurrent use; a build owns its index exclusively.
type Index struct {
	identifiers map[string]*recipe.Entry
	shortnames  map[string][]string
	links       []Link
}

// New returns an empty index.
func New() *Index {
	return &Index{
		identifiers: make(map[string]*recipe.Entry),
		shortnames:  make(map[string][]string),
	}
}

// Add stores e under id, replacing any previous entry with the same id.
// The replaced entry is returned so callers can report the collision.
// When e has a shortname, id is appended to that shortname's list.
func (ix *Index) Add(id string, e *recipe.Entry) (*recipe.Entry, bool) {
	prev, replaced := ix.identifiers[id]
	ix.identifiers[id] = e
	if e.HasShortname() {
		ix.shortnames[e.Shortname] = append(ix.shortnames[e.Shortname], id)
	}
	return prev, replaced
}

// Link registers child as a child of parent. Links are resolved by Stitch.
func (ix *Index) Link(child, parent string) {
	ix.links = append(ix.links, Link{Child: child, Parent: parent})
}

// Stitch appends each linked child to its parent's children in
// registration order and returns the links whose parent is unknown.
// Pending links are consumed, so a second call is a no-op.
func (ix *Index) Stitch() []DanglingParent {
	var dangling []DanglingParent
	for _, l := range ix.links {
		parent, ok := ix.identifiers[l.Parent]
		if !ok {
			dangling = append(dangling, DanglingParent(l))
			continue
		}
		parent.Children = append(parent.Children, l.Child)
	}
	ix.links = nil
	return dangling
}

// Lookup returns the entry stored under id.
func (ix *Index) Lookup(id string) (*recipe.Entry, bool) {
	e, ok := ix.identifiers[id]
	return e, ok
}

// Shortname returns the identifiers sharing name, in first-seen order.
func (ix *Index) Shortname(name string) []string {
	return ix.shortnames[name]
}

// Len returns the number of identifiers.
func (ix *Index) Len() int {
	return len(ix.identifiers)
}

// Identifiers returns all identifiers in lexical order.
func (ix *Index) Identifiers() []string {
	return sortedKeys(ix.identifiers)
}

// Shortnames returns all shortnames in lexical order.
func (ix *Index) Shortnames() []string {
	return sortedKeys(ix.shortnames)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type wireIndex struct {
	Identifiers map[string]*recipe.Entry `json:"identifiers" yaml:"identifiers"`
	Shortnames  map[string][]string      `json:"shortnames" yaml:"shortnames"`
}

func (ix *Index) wire() wireIndex {
	return wireIndex{Identifiers: ix.identifiers, Shortnames: ix.shortnames}
}

// MarshalJSON renders {"identifiers": {...}, "shortnames": {...}}.
func (ix *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(ix.wire())
}

// MarshalYAML renders the same two tables as MarshalJSON.
func (ix *Index) MarshalYAML() (any, error) {
	identifiers := make(map[string]any, len(ix.identifiers))
	for id, e := range ix.identifiers {
		identifiers[id] = e.ToJSON()
	}
	return map[string]any{
		KeyIdentifiers: identifiers,
		KeyShortnames:  ix.shortnames,
	}, nil
}

// UnmarshalJSON loads a previously published index. Pending links are not
// part of the published form and start empty.
func (ix *Index) UnmarshalJSON(data []byte) error {
	var w wireIndex
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}
	*ix = *New()
	for id, e := range w.Identifiers {
		if e == nil {
			return fmt.Errorf("identifier %q has a null entry", id)
		}
		ix.identifiers[id] = e
	}
	for name, ids := range w.Shortnames {
		ix.shortnames[name] = ids
	}
	return nil
}

// UnmarshalYAML loads an index written in YAML form.
func (ix *Index) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}
	return ix.UnmarshalJSON(data)
}
