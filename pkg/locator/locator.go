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

package locator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Extensions are the recipe file suffixes, in the order they are searched.
var Extensions = []string{"recipe", "recipe.plist", "recipe.yaml"}

// Depths are the directory depths below a repository root that are searched.
// A recipe at depth 2 lives one directory inside the repository.
var Depths = []int{2, 3}

// Patterns returns the glob patterns searched under root, in search order.
func Patterns(root string) []string {
	patterns := make([]string, 0, len(Extensions)*len(Depths))
	for _, ext := range Extensions {
		for _, depth := range Depths {
			segments := make([]string, 0, depth+1)
			segments = append(segments, escapeMeta(root))
			for i := 1; i < depth; i++ {
				segments = append(segments, "*")
			}
			segments = append(segments, "*."+ext)
			patterns = append(patterns, filepath.Join(segments...))
		}
	}
	return patterns
}

// Locate returns the recipe files under root. Results follow pattern order
// and, within a pattern, lexical order. Directories named like recipes and
// paths with hidden segments are excluded. Recipes shallower or deeper than
// Depths are not found.
func Locate(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat repository root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository root %q is not a directory", root)
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range Patterns(root) {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid recipe pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] || hasHiddenSegment(root, match) {
				continue
			}
			if !isRegularFile(match) {
				slog.Debug("skipping non-file recipe match", "path", match)
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}
	return files, nil
}

// escapeMeta quotes glob metacharacters in a literal path prefix.
func escapeMeta(path string) string {
	if runtime.GOOS == "windows" {
		return path
	}
	var b strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// hasHiddenSegment reports whether any segment of path below root starts
// with a dot. Shell globs never match those with a bare "*".
func hasHiddenSegment(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
