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

// Package cli implements the recipe-index command-line interface.
//
// # Commands
//
// build - Index repository checkouts:
//
//	recipe-index build [--repos-dir DIR] [--org ORG | --sync] [-o PATH] [--format json|yaml]
//	                   [--annotations github|none] [--fail-on-errors] [--metrics-file PATH]
//
// Walks every checkout under --repos-dir, writes the index (default
// v1/index.json) and prints a warning summary to stderr. With --org or --sync
// the organization's repositories are discovered and cloned first. Output
// may also be "-" for stdout or cm://namespace/name for a ConfigMap.
//
// sync - Discover and clone repositories:
//
//	recipe-index sync [--org ORG] [--repos-dir DIR] [--update]
//
// publish - Push a built index as an OCI artifact:
//
//	recipe-index publish --index v1/index.json --to oci://ghcr.io/autopkg/index:latest
//
// stats - Summarize an index from a file, URL or ConfigMap:
//
//	recipe-index stats [--index LOCATION] [--format table|json|yaml]
//
// # Configuration
//
// Settings are read from --config or ./.recipe-index.yaml when present;
// flags that are explicitly set take precedence. Most flags can also be
// set through RECIPE_INDEX_* environment variables. The GitHub token is
// read from --token, RECIPE_INDEX_TOKEN or GITHUB_TOKEN.
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, unreadable input, push failure)
//	2  Interrupted or timed out
//	3  Build finished with unparseable recipes and --fail-on-errors was set
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/autopkg/index/pkg/cli.version=1.0.0'"
package cli
