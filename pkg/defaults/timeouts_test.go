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

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"GitHubListTimeout", GitHubListTimeout, 30 * time.Second, 10 * time.Minute},
		{"CloneTimeout", CloneTimeout, 1 * time.Minute, 30 * time.Minute},
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},
		{"ConfigMapWriteTimeout", ConfigMapWriteTimeout, 10 * time.Second, 60 * time.Second},
		{"OCIPushTimeout", OCIPushTimeout, 1 * time.Minute, 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestHTTPClientTimeoutRelationships(t *testing.T) {
	if HTTPConnectTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPConnectTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPConnectTimeout, HTTPClientTimeout)
	}
	if HTTPTLSHandshakeTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPTLSHandshakeTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPTLSHandshakeTimeout, HTTPClientTimeout)
	}
	if HTTPClientTimeout >= GitHubListTimeout {
		t.Errorf("HTTPClientTimeout (%v) should be less than GitHubListTimeout (%v)",
			HTTPClientTimeout, GitHubListTimeout)
	}
}

func TestDiscoveryDefaults(t *testing.T) {
	if GitHubPageSize <= 0 || GitHubPageSize > 100 {
		t.Errorf("GitHubPageSize (%d) must be within the API limit of 1..100", GitHubPageSize)
	}
	if CloneConcurrency < 1 {
		t.Errorf("CloneConcurrency (%d) must be positive", CloneConcurrency)
	}
	if len(ExcludedRepos()) == 0 {
		t.Error("ExcludedRepos should not be empty")
	}
}
