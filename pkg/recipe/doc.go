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

// Package recipe turns decoded recipe documents into index entries.
//
// # Overview
//
// A recipe is a mapping decoded by the parser package. Document wraps it
// with defaulting accessors for the handful of keys the index reads:
// Identifier, Description, ParentRecipe, Process, and Input.
//
// Normalization happens in two steps:
//
//  1. Normalizer.Normalize builds an Entry from the document. Deprecated
//     recipes (any Process step using the DeprecationWarning processor)
//     produce no entry. The shortname and inferred type are taken from the
//     file name, e.g. Foo.munki.recipe.yaml gives shortname "Foo.munki"
//     and type "munki".
//  2. Resolve replaces %VARIABLE% references with values from the
//     recipe's Input table and trims whitespace. References with no
//     binding become null and are returned as Unresolved.
//
// # Type Rules
//
// Type-specific fields come from a TypeRules table keyed by inferred type:
//
//	munki, ws1:   Input.pkginfo.display_name      -> app_display_name
//	              Input.pkginfo.description       -> app_description
//	jss, jamf:    Input.SELF_SERVICE_DISPLAY_NAME -> app_display_name
//	              Input.SELF_SERVICE_DESCRIPTION  -> app_description
//	intune:       Input.display_name              -> app_display_name
//	              Input.description               -> app_description
//
// Additional types can be added through configuration:
//
//	n := recipe.NewNormalizer(recipe.WithTypeRules(recipe.TypeRules{
//	    "filewave": {{Field: "app_display_name", Source: "Input", Key: "FW_NAME"}},
//	}))
//
// # Usage
//
//	doc := recipe.NewDocument(m)
//	res := n.Normalize(doc, "autopkg/recipes", "Foo/Foo.munki.recipe")
//	if res.Entry != nil {
//	    missing := recipe.Resolve(res.Entry, doc)
//	    ...
//	}
package recipe
