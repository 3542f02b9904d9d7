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

// Package workspace maintains local shallow checkouts of recipe repositories.
//
// A Cloner lays checkouts out as <root>/<owner>/<name>, the shape
// builder.ReposFromDir reads back. Missing repositories are cloned with
// "git clone --depth=1"; existing ones are left alone unless the cloner was
// created WithUpdate, in which case they are fast-forwarded.
//
//	cloner := workspace.NewCloner("repos", workspace.WithConcurrency(8))
//	repos, err := cloner.Sync(ctx, discovered)
//
// Clones run in parallel, bounded by the configured concurrency. The
// returned repositories follow the order of the input slice.
package workspace
