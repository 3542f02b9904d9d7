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

// Package config loads the optional recipe-index configuration file.
//
// The file is YAML. Every key is optional and unknown keys are rejected:
//
//	organization: autopkg
//	reposDir: repos
//	output: v1/index.json
//	format: json
//	annotations: github
//	failOnErrors: false
//	cloneConcurrency: 4
//	excludedRepos:
//	  - autopkg/autopkg
//	github:
//	  requestsPerSecond: 5
//	  timeout: 2m
//	typeRules:
//	  filewave:
//	    - {field: app_display_name, source: Input, key: FW_DISPLAY_NAME}
//
// Type rules are merged over the built-in munki, ws1, jss, jamf, and
// intune rules. Command-line flags override file values.
package config
