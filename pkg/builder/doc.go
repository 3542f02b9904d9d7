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

// Package builder runs the recipe index pipeline over checked-out
// repositories.
//
// For every repository, in the order given, and every recipe file, in
// locator order:
//
//	locate -> parse -> normalize -> resolve variables -> add to index
//
// After the last repository the index stitches parent links into
// children lists. Processing is sequential: the order decides which entry
// wins a duplicate identifier and the order of shortname and children
// lists.
//
// Usage:
//
//	repos, err := builder.ReposFromDir("repos")
//	if err != nil {
//	    return err
//	}
//	res, err := builder.New(builder.WithVersion(version)).Build(ctx, repos)
//	if err != nil {
//	    return err
//	}
//	if res.Failures() > 0 {
//	    // some recipes could not be parsed
//	}
//
// Builds export Prometheus metrics (recipe_index_*) that WriteMetrics can
// dump to a textfile.
package builder
