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

// Package defaults provides centralized configuration constants for the
// recipe index builder.
//
// Timeouts are grouped by the collaborator they bound:
//
//   - GitHub discovery: listing organization repositories
//   - Working copy: shallow clones and updates
//   - HTTP client: outbound request tuning
//   - Publishing: ConfigMap writes and OCI pushes
//
// Fixed paths (the repository working directory and the index output path)
// live alongside them so the CLI and the config loader agree on one source.
package defaults
