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

// Package github discovers the repositories to index.
//
// ListOrgRepos walks GET /orgs/{org}/repos page by page (per_page=100)
// until an empty page, pacing requests with a token bucket. Filter then
// drops private, forked, archived, disabled, and template repositories
// along with explicitly excluded full names:
//
//	c := github.NewClient(github.WithToken(os.Getenv("GITHUB_TOKEN")))
//	repos, err := c.ListOrgRepos(ctx, "autopkg")
//	if err != nil {
//	    return err
//	}
//	repos = github.Filter(repos, defaults.ExcludedRepos())
//
// Failures carry pkg/errors codes: UNAUTHORIZED, RATE_LIMIT_EXCEEDED,
// NOT_FOUND, or SERVICE_UNAVAILABLE.
package github
