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
	"strings"

	"github.com/autopkg/index/pkg/document"
)

// Recipe document keys read by the index.
const (
	KeyIdentifier   = "Identifier"
	KeyDescription  = "Description"
	KeyParentRecipe = "ParentRecipe"
	KeyProcess      = "Process"
	KeyProcessor    = "Processor"
	KeyInput        = "Input"
	KeyName         = "NAME"

	// DeprecationProcessor marks a recipe as deprecated when it appears as
	// the Processor of any Process step.
	DeprecationProcessor = "DeprecationWarning"
)

// Document is a read-only view over a decoded recipe.
type Document struct {
	m document.Map
}

// NewDocument wraps a decoded recipe mapping.
func NewDocument(m document.Map) Document {
	return Document{m: m}
}

// Identifier returns the recipe identifier. Recipes whose identifier is
// missing, null, or blank report false. Non-string scalars are rendered.
func (d Document) Identifier() (string, bool) {
	v := d.m.Get(KeyIdentifier)
	if v.IsNull() {
		return "", false
	}
	id, ok := v.Str()
	if !ok {
		id = v.String()
	}
	if strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

// Description returns the top-level Description value.
func (d Document) Description() document.Value {
	return d.m.Get(KeyDescription)
}

// ParentRecipe returns the parent identifier and whether one is declared.
// Empty values do not count as a parent.
func (d Document) ParentRecipe() (document.Value, bool) {
	v := d.m.Get(KeyParentRecipe)
	return v, v.Truthy()
}

// Input returns the Input variable table, or an empty table when it is
// missing or not a mapping.
func (d Document) Input() document.Map {
	return d.m.Map(KeyInput)
}

// Deprecated reports whether any Process step uses the deprecation processor.
func (d Document) Deprecated() bool {
	for _, step := range d.m.List(KeyProcess) {
		m, ok := step.Map()
		if !ok {
			continue
		}
		if p, _ := m.String(KeyProcessor); p == DeprecationProcessor {
			return true
		}
	}
	return false
}
