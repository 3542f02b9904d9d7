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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/autopkg/index/pkg/document"
)

// JSON keys of an index entry.
const (
	FieldName         = "name"
	FieldDescription  = "description"
	FieldRepo         = "repo"
	FieldPath         = "path"
	FieldParent       = "parent"
	FieldShortname    = "shortname"
	FieldInferredType = "inferred_type"
	FieldChildren     = "children"
)

var coreFields = map[string]bool{
	FieldName:         true,
	FieldDescription:  true,
	FieldRepo:         true,
	FieldPath:         true,
	FieldParent:       true,
	FieldShortname:    true,
	FieldInferredType: true,
	FieldChildren:     true,
}

// IsCoreField reports whether name is one of the fixed entry keys.
func IsCoreField(name string) bool {
	return coreFields[name]
}

// Field is a type-specific entry value such as app_display_name.
type Field struct {
	Name  string
	Value document.Value
}

// Entry is the normalized index record of one recipe.
type Entry struct {
	// Name comes from Input.NAME. Always rendered, possibly as null.
	Name document.Value
	// Description comes from the top-level Description. Always rendered.
	Description document.Value
	// Repo is the owning repository full name.
	Repo string
	// Path is the recipe path relative to the repository root, slash separated.
	Path string
	// Parent is nil when the recipe declares no parent.
	Parent *document.Value
	// Shortname and InferredType are empty when the file name has no
	// <name>.<type>.recipe shape.
	Shortname    string
	InferredType string
	// Fields holds type-specific values in rule order.
	Fields []Field
	// Children is filled by the index stitching pass.
	Children []string
}

// Field returns the type-specific value named name.
func (e *Entry) Field(name string) (document.Value, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return document.Null(), false
}

// SetField adds or replaces a type-specific value, keeping first-set order.
func (e *Entry) SetField(name string, v document.Value) {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			e.Fields[i].Value = v
			return
		}
	}
	e.Fields = append(e.Fields, Field{Name: name, Value: v})
}

// HasShortname reports whether the entry belongs in the shortname table.
func (e *Entry) HasShortname() bool {
	return e.Shortname != ""
}

// TrimSpace trims surrounding whitespace from every string-valued field.
func (e *Entry) TrimSpace() {
	e.Name = trimValue(e.Name)
	e.Description = trimValue(e.Description)
	e.Repo = strings.TrimSpace(e.Repo)
	e.Path = strings.TrimSpace(e.Path)
	if e.Parent != nil {
		p := trimValue(*e.Parent)
		e.Parent = &p
	}
	e.Shortname = strings.TrimSpace(e.Shortname)
	e.InferredType = strings.TrimSpace(e.InferredType)
	for i := range e.Fields {
		e.Fields[i].Value = trimValue(e.Fields[i].Value)
	}
}

func trimValue(v document.Value) document.Value {
	if s, ok := v.Str(); ok {
		return document.String(strings.TrimSpace(s))
	}
	return v
}

// ToJSON returns the entry as a JSON-compatible map.
func (e *Entry) ToJSON() map[string]any {
	out := map[string]any{
		FieldName:        e.Name.ToJSON(),
		FieldDescription: e.Description.ToJSON(),
		FieldRepo:        e.Repo,
		FieldPath:        e.Path,
	}
	if e.Parent != nil {
		out[FieldParent] = e.Parent.ToJSON()
	}
	if e.Shortname != "" || e.InferredType != "" {
		out[FieldShortname] = e.Shortname
		out[FieldInferredType] = e.InferredType
	}
	for _, f := range e.Fields {
		out[f.Name] = f.Value.ToJSON()
	}
	if e.Children != nil {
		out[FieldChildren] = e.Children
	}
	return out
}

// MarshalJSON renders the entry with the keys of the published index.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToJSON())
}

// MarshalYAML renders the same shape as MarshalJSON.
func (e *Entry) MarshalYAML() (any, error) {
	return e.ToJSON(), nil
}

// UnmarshalJSON reads an entry back from a published index. Unknown keys
// become type-specific fields in lexical order.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]document.Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Entry{
		Name:        raw[FieldName],
		Description: raw[FieldDescription],
	}

	var ok bool
	if e.Repo, ok = optionalString(raw, FieldRepo); !ok {
		return fmt.Errorf("entry field %q must be a string", FieldRepo)
	}
	if e.Path, ok = optionalString(raw, FieldPath); !ok {
		return fmt.Errorf("entry field %q must be a string", FieldPath)
	}
	if p, exists := raw[FieldParent]; exists {
		e.Parent = &p
	}
	e.Shortname, _ = optionalString(raw, FieldShortname)
	e.InferredType, _ = optionalString(raw, FieldInferredType)

	if children, exists := raw[FieldChildren]; exists {
		items, _ := children.List()
		e.Children = make([]string, 0, len(items))
		for _, item := range items {
			e.Children = append(e.Children, item.String())
		}
	}

	for _, key := range document.Map(raw).Keys() {
		if IsCoreField(key) {
			continue
		}
		e.Fields = append(e.Fields, Field{Name: key, Value: raw[key]})
	}
	return nil
}

func optionalString(raw map[string]document.Value, key string) (string, bool) {
	v, exists := raw[key]
	if !exists || v.IsNull() {
		return "", true
	}
	return v.Str()
}
