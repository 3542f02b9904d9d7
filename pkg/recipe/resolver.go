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
	"log/slog"
	"strings"

	"github.com/autopkg/index/pkg/document"
)

// Unresolved records a field whose %VARIABLE% reference had no binding.
type Unresolved struct {
	Field    string
	Variable string
}

// VariableName returns the name inside a %NAME% reference. Values that do
// not both start and end with a percent sign are not references.
func VariableName(s string) (string, bool) {
	if !strings.HasPrefix(s, "%") || !strings.HasSuffix(s, "%") {
		return "", false
	}
	return strings.Trim(s, "%"), true
}

// Resolve replaces variable references in e with values from the recipe's
// Input table, then trims whitespace from every string field. Lookups are
// single level: parent recipes are never consulted. Each reference with no
// binding becomes null and is reported.
func Resolve(e *Entry, doc Document) []Unresolved {
	input := doc.Input()
	var unresolved []Unresolved

	resolve := func(field string, v document.Value) document.Value {
		s, ok := v.Str()
		if !ok {
			return v
		}
		name, ok := VariableName(s)
		if !ok {
			return v
		}
		resolved := input.Get(name)
		if resolved.IsNull() {
			unresolved = append(unresolved, Unresolved{Field: field, Variable: s})
			return document.Null()
		}
		slog.Debug("resolved recipe variable", "path", e.Path, "field", field, "variable", s)
		return resolved
	}

	e.Name = resolve(FieldName, e.Name)
	e.Description = resolve(FieldDescription, e.Description)
	if e.Parent != nil {
		p := resolve(FieldParent, *e.Parent)
		e.Parent = &p
	}
	for i := range e.Fields {
		e.Fields[i].Value = resolve(e.Fields[i].Name, e.Fields[i].Value)
	}

	e.TrimSpace()
	return unresolved
}
