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

// Package errors provides structured error types for the recipe index
// builder. Every failure that crosses a package boundary carries an
// ErrorCode so callers can classify it without string matching: the parser
// reports PARSE_ERROR and EMPTY_DOCUMENT, the GitHub client reports
// UNAUTHORIZED and RATE_LIMIT_EXCEEDED, and the CLI reports BUILD_FAILED.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeParse,
//	    "unable to parse recipe as YAML",
//	    cause,
//	    map[string]any{
//	        "path":   path,
//	        "format": "yaml",
//	    },
//	)
//
//	if errors.HasCode(err, errors.ErrCodeEmptyDocument) {
//	    // skip the file
//	}
package errors
