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

// Package diagnostics collects the anomalies found while building the
// recipe index.
//
// Every record belongs to a Category. Parse failures and empty documents
// are hard failures: the recipe was skipped. The other categories are
// warnings about recipes that were still indexed, or about links between
// them.
//
// Records are logged through slog as they arrive and, with
// WithAnnotations, printed as GitHub Actions workflow commands:
//
//	::warning file=repos/org/repo/Foo/Foo.munki.recipe::Unable to parse ...
//
// After a build, WriteSummary prints the totals:
//
//	Recipes indexed: 1432
//
//	WARNING SUMMARY:
//	Total warnings: 3
//	YAML parsing errors: 1
//	Missing parent recipes: 2
package diagnostics
