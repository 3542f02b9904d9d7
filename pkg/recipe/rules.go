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

package recipe

import (
	"fmt"
	"sort"

	"github.com/autopkg/index/pkg/document"
)

// Type-specific entry fields produced by the default rules.
const (
	FieldAppDisplayName = "app_display_name"
	FieldAppDescription = "app_description"
)

// SourceInput reads a key straight from the Input table. Any other source
// names a nested mapping inside Input (for example "pkginfo").
const SourceInput = "Input"

// FieldRule copies one value from a recipe into a type-specific entry field.
type FieldRule struct {
	// Field is the entry key written, e.g. app_display_name.
	Field string `json:"field" yaml:"field"`
	// Source is "Input" or the name of a mapping nested in Input.
	Source string `json:"source" yaml:"source"`
	// Key is the key read from Source.
	Key string `json:"key" yaml:"key"`
}

// Lookup reads the rule's value from the Input table.
func (r FieldRule) Lookup(input document.Map) document.Value {
	if r.Source == "" || r.Source == SourceInput {
		return input.Get(r.Key)
	}
	return input.Map(r.Source).Get(r.Key)
}

// Validate checks the rule is usable.
func (r FieldRule) Validate() error {
	if r.Field == "" {
		return fmt.Errorf("field rule has no field name")
	}
	if IsCoreField(r.Field) {
		return fmt.Errorf("field rule %q would overwrite a core entry field", r.Field)
	}
	if r.Key == "" {
		return fmt.Errorf("field rule %q has no key", r.Field)
	}
	return nil
}

// TypeRules maps an inferred type (munki, jamf, ...) to its field rules.
type TypeRules map[string][]FieldRule

func pkginfoRules() []FieldRule {
	return []FieldRule{
		{Field: FieldAppDisplayName, Source: "pkginfo", Key: "display_name"},
		{Field: FieldAppDescription, Source: "pkginfo", Key: "description"},
	}
}

func selfServiceRules() []FieldRule {
	return []FieldRule{
		{Field: FieldAppDisplayName, Source: SourceInput, Key: "SELF_SERVICE_DISPLAY_NAME"},
		{Field: FieldAppDescription, Source: SourceInput, Key: "SELF_SERVICE_DESCRIPTION"},
	}
}

// DefaultTypeRules returns the built-in extraction table.
func DefaultTypeRules() TypeRules {
	return TypeRules{
		"munki": pkginfoRules(),
		"ws1":   pkginfoRules(),
		"jss":   selfServiceRules(),
		"jamf":  selfServiceRules(),
		"intune": {
			{Field: FieldAppDisplayName, Source: SourceInput, Key: "display_name"},
			{Field: FieldAppDescription, Source: SourceInput, Key: "description"},
		},
	}
}

// Merge returns a copy of r with other's types added. A type present in
// both takes other's rules.
func (r TypeRules) Merge(other TypeRules) TypeRules {
	out := make(TypeRules, len(r)+len(other))
	for t, rules := range r {
		out[t] = append([]FieldRule(nil), rules...)
	}
	for t, rules := range other {
		out[t] = append([]FieldRule(nil), rules...)
	}
	return out
}

// Types returns the known types in lexical order.
func (r TypeRules) Types() []string {
	types := make([]string, 0, len(r))
	for t := range r {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Validate checks every rule in the table.
func (r TypeRules) Validate() error {
	for _, t := range r.Types() {
		if t == "" {
			return fmt.Errorf("type rules contain an empty type name")
		}
		for _, rule := range r[t] {
			if err := rule.Validate(); err != nil {
				return fmt.Errorf("type %q: %w", t, err)
			}
		}
	}
	return nil
}

// Apply writes the type-specific fields for inferredType into e.
// Unknown types are left untouched.
func (r TypeRules) Apply(e *Entry, inferredType string, input document.Map) {
	for _, rule := range r[inferredType] {
		e.SetField(rule.Field, rule.Lookup(input))
	}
}
