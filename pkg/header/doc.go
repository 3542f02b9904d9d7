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

// Package header identifies build outputs.
//
// A Header is a small Kubernetes-style envelope:
//
//	kind: RecipeIndex
//	apiVersion: autopkg.github.io/v1
//	metadata:
//	  buildID: 5f0c...
//	  timestamp: "2025-06-01T12:00:00Z"
//	  version: v1.2.0
//
// The index document itself stays {"identifiers", "shortnames"} so existing
// consumers keep working. Headers travel alongside it as ConfigMap labels
// and annotations or OCI manifest annotations.
//
// Usage:
//
//	h := header.New()
//	h.Init(header.KindRecipeIndex, header.APIVersion, version)
//	id := h.BuildID()
package header
