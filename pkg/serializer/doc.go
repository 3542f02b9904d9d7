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

// Package serializer writes and reads the recipe index and command output.
//
// Three formats are supported:
//   - JSON: the published index format, two-space indented, UTF-8, no HTML escaping
//   - YAML: the same structure for human review
//   - Table: flattened FIELD/VALUE rows for command output (write-only)
//
// Destinations are chosen from a path by NewFileWriterOrStdout:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "v1/index.json")
//	if err != nil {
//	    return err
//	}
//	defer serializer.Close(w)
//	err = w.Serialize(ctx, idx)
//
// "-" writes to stdout and cm://namespace/name applies a ConfigMap whose
// data key is index.json (or index.yaml).
//
// Reading goes through a Source, which accepts local paths, http(s) URLs,
// and ConfigMap URIs:
//
//	idx, err := serializer.FromFile[index.Index](ctx, "https://example.com/v1/index.json")
package serializer
