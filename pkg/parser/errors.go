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

package parser

import (
	"fmt"

	apperrors "github.com/autopkg/index/pkg/errors"
)

// ParseError reports a recipe file that could not be decoded. The file is
// skipped entirely.
type ParseError struct {
	Format  Format
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Unable to parse %s as %s: %s", e.Path, e.Format.Label(), e.Message)
}

// Unwrap exposes the PARSE_ERROR classification and the decoder's error.
func (e *ParseError) Unwrap() error {
	return apperrors.WrapWithContext(apperrors.ErrCodeParse, e.Message, e.Cause, map[string]any{
		"path":   e.Path,
		"format": string(e.Format),
	})
}

// EmptyDocumentError reports a recipe that decoded successfully but holds
// no usable mapping. The file is skipped entirely.
type EmptyDocumentError struct {
	Format Format
	Path   string
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("Empty or invalid recipe file: %s", e.Path)
}

// Unwrap exposes the EMPTY_DOCUMENT classification.
func (e *EmptyDocumentError) Unwrap() error {
	return apperrors.NewWithContext(apperrors.ErrCodeEmptyDocument, "recipe has no usable content", map[string]any{
		"path":   e.Path,
		"format": string(e.Format),
	})
}

func newParseError(format Format, path string, cause error) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: cause.Error(),
		Cause:   cause,
	}
}
