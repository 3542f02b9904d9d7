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
	"context"
	"crypto/tls"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	ocilayout "oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/autopkg/index/pkg/defaults"
	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/header"
)

const (
	// ArtifactType identifies a published recipe index.
	ArtifactType = "application/vnd.autopkg.recipe-index.v1"

	// AnnotationBuildID carries the build identifier of the published index.
	AnnotationBuildID = "autopkg.github.io/build-id"

	sourceURL = "https://github.com/autopkg/index"
	title     = "AutoPkg recipe index"
)

// PushOptions configures Push.
type PushOptions struct {
	// SourceDir is the directory packed into the single artifact layer.
	SourceDir string
	// Reference is the publish target.
	Reference *Reference
	// PlainHTTP talks to the registry over HTTP.
	PlainHTTP bool
	// InsecureTLS skips certificate verification.
	InsecureTLS bool
	// Username and Password, when set, take precedence over Docker credentials.
	Username string
	Password string
	// Annotations are set on the manifest.
	Annotations map[string]string
}

// PushResult describes a published artifact.
type PushResult struct {
	Digest    string
	Reference string
}

// Annotations returns the manifest annotations for an index built under h.
// A fixed creation time keeps the manifest digest stable across republishes
// of the same build.
func Annotations(h *header.Header) map[string]string {
	a := map[string]string{
		ociv1.AnnotationTitle:  title,
		ociv1.AnnotationSource: sourceURL,
	}
	if h == nil {
		return a
	}
	if v := h.Metadata[header.MetadataVersion]; v != "" {
		a[ociv1.AnnotationVersion] = v
	}
	if ts := h.Metadata[header.MetadataTimestamp]; ts != "" {
		a[ociv1.AnnotationCreated] = ts
	}
	if id := h.BuildID(); id != "" {
		a[AnnotationBuildID] = id
	}
	return a
}

// Push packs SourceDir as an OCI 1.1 artifact and copies it to the target.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	if opts.Reference == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "publish target is required")
	}
	if opts.Reference.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to push an OCI artifact")
	}

	absDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve source directory", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "source directory not found", err)
	}
	if !info.IsDir() {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "source is not a directory",
			map[string]any{"path": absDir})
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	dst, refString, err := target(opts)
	if err != nil {
		return nil, err
	}

	fs, err := file.New(absDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()
	fs.TarReproducible = true

	layer, err := fs.Add(ctx, filepath.Base(absDir), ociv1.MediaTypeImageLayerGzip, absDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to add source directory to store", err)
	}

	manifest, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: opts.Annotations,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}

	tag := opts.Reference.Tag
	if err := fs.Tag(ctx, manifest, tag); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest", err)
	}

	slog.Info("pushing index artifact", "target", refString, "layer", layer.Digest.String())

	desc, err := oras.Copy(ctx, fs, tag, dst, tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeUnavailable, "failed to push artifact", err,
			map[string]any{"target": refString})
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
	}, nil
}

func target(opts PushOptions) (oras.Target, string, error) {
	ref := opts.Reference
	if !ref.IsOCI {
		store, err := ocilayout.New(ref.LayoutPath)
		if err != nil {
			return nil, "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to open OCI layout", err)
		}
		return store, ref.LayoutPath + ":" + ref.Tag, nil
	}

	registry := stripProtocol(ref.Registry)
	refString := registry + "/" + ref.Repository + ":" + ref.Tag
	if _, err := reference.ParseNormalizedNamed(refString); err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid image reference", err)
	}

	repo, err := remote.NewRepository(registry + "/" + ref.Repository)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = authClient(registry, opts)
	return repo, refString, nil
}

func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	return strings.TrimPrefix(registry, "http://")
}

func authClient(registry string, opts PushOptions) *auth.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSHandshakeTimeout = defaults.HTTPTLSHandshakeTimeout
	transport.ResponseHeaderTimeout = defaults.HTTPResponseHeaderTimeout
	if !opts.PlainHTTP && opts.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}

	if opts.Username != "" || opts.Password != "" {
		client.Credential = auth.StaticCredential(registry, auth.Credential{
			Username: opts.Username,
			Password: opts.Password,
		})
		return client
	}

	store, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credential store unavailable", "error", err)
		return client
	}
	client.Credential = credentials.Credential(store)
	return client
}
