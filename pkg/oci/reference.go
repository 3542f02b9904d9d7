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

package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/autopkg/index/pkg/errors"
)

// URIScheme prefixes registry targets, e.g. "oci://ghcr.io/autopkg/index:v1".
const URIScheme = "oci://"

// Reference is a publish target: a registry repository or a local
// OCI Image Layout directory.
type Reference struct {
	// IsOCI is true for registry targets.
	IsOCI bool
	// Registry is the registry host, including any port.
	Registry string
	// Repository is the repository path within the registry.
	Repository string
	// Tag may be empty; the caller picks a default.
	Tag string
	// LayoutPath is the OCI Image Layout directory for local targets.
	LayoutPath string
}

// ParseOutputTarget parses an oci:// reference. Anything else is taken as a
// local layout directory.
func ParseOutputTarget(target string) (*Reference, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "publish target is required")
	}

	if !strings.HasPrefix(target, URIScheme) {
		return &Reference{LayoutPath: target}, nil
	}

	named, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}
	if _, ok := named.(reference.Digested); ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"OCI reference must not pin a digest", map[string]any{"target": target})
	}

	ref := &Reference{
		IsOCI:      true,
		Registry:   reference.Domain(named),
		Repository: reference.Path(named),
	}
	if tagged, ok := named.(reference.Tagged); ok {
		ref.Tag = tagged.Tag()
	}
	return ref, nil
}

// String renders the reference the way ParseOutputTarget accepts it.
func (r *Reference) String() string {
	if !r.IsOCI {
		return r.LayoutPath
	}
	return URIScheme + r.ImageReference()
}

// ImageReference returns registry/repository[:tag], or "" for local targets.
func (r *Reference) ImageReference() string {
	if !r.IsOCI {
		return ""
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy carrying tag.
func (r *Reference) WithTag(tag string) *Reference {
	cp := *r
	cp.Tag = tag
	return &cp
}

// WithDefaultTag returns a copy tagged with tag when no tag was given.
func (r *Reference) WithDefaultTag(tag string) *Reference {
	if r.Tag != "" {
		return r
	}
	return r.WithTag(tag)
}
