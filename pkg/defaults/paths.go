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

package defaults

// Filesystem locations used when no flag or config value overrides them.
const (
	// ReposDir is the working directory holding one subdirectory per
	// repository, named by full name (owner/name).
	ReposDir = "repos"

	// IndexPath is the project-relative path of the generated index.
	IndexPath = "v1/index.json"

	// ConfigFileName is looked up in the working directory when --config is unset.
	ConfigFileName = ".recipe-index.yaml"

	// MaxRecipeBytes caps the size of a single recipe file.
	MaxRecipeBytes = 10 << 20
)

// Repository discovery defaults.
const (
	// Organization is the GitHub organization whose repositories are indexed.
	Organization = "autopkg"
)

// ExcludedRepos lists repositories that never hold indexable recipes.
func ExcludedRepos() []string {
	return []string{
		"autopkg/autopkg",
		"autopkg/index",
		"autopkg/setup-autopkg-actions",
	}
}
