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
	"log/slog"
	"path/filepath"
	"regexp"
)

// shortnamePattern matches ".../<shortname>.<type>.recipe[.yaml|.plist]"
// where both parts are word characters, hyphens, or spaces.
var shortnamePattern = regexp.MustCompile(`/([\p{L}\p{N}_\- ]+\.([\p{L}\p{N}_\- ]+))\.recipe(\.yaml|\.plist)?$`)

// InferType derives the shortname and deployment type from a
// repository-relative, slash-separated recipe path.
func InferType(relPath string) (shortname, inferredType string, ok bool) {
	m := shortnamePattern.FindStringSubmatch("/" + relPath)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// RelativePath returns path relative to root using forward slashes.
func RelativePath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %q to %q: %w", path, root, err)
	}
	return filepath.ToSlash(rel), nil
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithTypeRules merges extra type rules over the defaults.
func WithTypeRules(rules TypeRules) Option {
	return func(n *Normalizer) {
		n.rules = n.rules.Merge(rules)
	}
}

// Normalizer turns decoded recipes into index entries.
type Normalizer struct {
	rules TypeRules
}

// NewNormalizer creates a Normalizer with the default type rules.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{rules: DefaultTypeRules()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Rules returns the normalizer's type rule table.
func (n *Normalizer) Rules() TypeRules {
	return n.rules
}

// Normalized is the outcome of normalizing one recipe.
type Normalized struct {
	// Entry is nil when the recipe is deprecated.
	Entry *Entry
	// Identifier is empty when HasIdentifier is false.
	Identifier    string
	HasIdentifier bool
	// ParentIdentifier is the raw ParentRecipe, set when the recipe has one.
	ParentIdentifier string
	Deprecated       bool
}

// Normalize builds the index entry for doc, found at relPath inside repo.
// Deprecated recipes produce no entry. Variable references are left in
// place; see Resolve.
func (n *Normalizer) Normalize(doc Document, repo, relPath string) *Normalized {
	if doc.Deprecated() {
		slog.Debug("skipping deprecated recipe", "repo", repo, "path", relPath)
		return &Normalized{Deprecated: true}
	}

	input := doc.Input()
	out := &Normalized{}
	out.Identifier, out.HasIdentifier = doc.Identifier()

	e := &Entry{
		Name:        input.Get(KeyName),
		Description: doc.Description(),
		Repo:        repo,
		Path:        relPath,
	}

	if parent, ok := doc.ParentRecipe(); ok {
		e.Parent = &parent
		if s, isStr := parent.Str(); isStr {
			out.ParentIdentifier = s
		} else {
			out.ParentIdentifier = parent.String()
		}
	}

	if shortname, inferredType, ok := InferType(relPath); ok {
		e.Shortname = shortname
		e.InferredType = inferredType
		n.rules.Apply(e, inferredType, input)
	}

	out.Entry = e
	return out
}
