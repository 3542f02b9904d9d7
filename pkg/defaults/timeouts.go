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

import "time"

// GitHub API settings for repository discovery.
const (
	// GitHubAPIURL is the base URL of the GitHub REST API.
	GitHubAPIURL = "https://api.github.com"

	// GitHubPageSize is the per_page value used when listing repositories.
	GitHubPageSize = 100

	// GitHubRequestsPerSecond paces paginated listing calls.
	GitHubRequestsPerSecond = 5

	// GitHubRequestBurst is the token bucket burst for listing calls.
	GitHubRequestBurst = 2

	// GitHubListTimeout bounds a full paginated listing.
	GitHubListTimeout = 2 * time.Minute
)

// Working copy timeouts.
const (
	// CloneTimeout bounds a single shallow clone or fast-forward pull.
	CloneTimeout = 10 * time.Minute

	// CloneConcurrency is the default number of clones run in parallel.
	CloneConcurrency = 4
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPMaxResponseBytes caps a downloaded index.
	HTTPMaxResponseBytes = 256 << 20
)

// Publishing timeouts.
const (
	// ConfigMapWriteTimeout is the timeout for writing the index to a ConfigMap.
	ConfigMapWriteTimeout = 30 * time.Second

	// OCIPushTimeout bounds pushing the index artifact to a registry.
	OCIPushTimeout = 5 * time.Minute
)
