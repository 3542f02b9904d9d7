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

package builder

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Repository is one checked-out recipe repository.
type Repository struct {
	// FullName is owner/name, as reported by the hosting service.
	FullName string `json:"fullName" yaml:"fullName"`
	// Path is the local checkout directory.
	Path string `json:"path" yaml:"path"`
}

// NewRepository returns the repository fullName checked out under root.
func NewRepository(root, fullName string) Repository {
	return Repository{
		FullName: fullName,
		Path:     filepath.Join(root, filepath.FromSlash(fullName)),
	}
}

// ReposFromDir lists the checkouts under root laid out as
// <root>/<owner>/<name>, sorted by full name. Hidden directories are
// skipped.
func ReposFromDir(root string) ([]Repository, error) {
	owners, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read repositories directory %s: %w", root, err)
	}

	var repos []Repository
	for _, owner := range owners {
		if !owner.IsDir() || strings.HasPrefix(owner.Name(), ".") {
			continue
		}
		names, err := os.ReadDir(filepath.Join(root, owner.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read owner directory %s: %w", owner.Name(), err)
		}
		for _, name := range names {
			if !name.IsDir() || strings.HasPrefix(name.Name(), ".") {
				continue
			}
			repos = append(repos, NewRepository(root, path.Join(owner.Name(), name.Name())))
		}
	}

	sort.Slice(repos, func(i, j int) bool {
		return repos[i].FullName < repos[j].FullName
	})
	return repos, nil
}
