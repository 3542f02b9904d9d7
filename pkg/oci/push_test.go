package oci

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oras.land/oras-go/v2/content"
	ocilayout "oras.land/oras-go/v2/content/oci"

	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/header"
)

func writeIndexDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "v1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.json"),
		[]byte(`{"identifiers":{},"shortnames":{}}`+"\n"), 0o644))
	return dir
}

func fetchManifest(t *testing.T, layoutDir, tag string) ociv1.Manifest {
	t.Helper()
	ctx := context.Background()

	store, err := ocilayout.New(layoutDir)
	require.NoError(t, err)
	desc, err := store.Resolve(ctx, tag)
	require.NoError(t, err)
	raw, err := content.FetchAll(ctx, store, desc)
	require.NoError(t, err)

	var m ociv1.Manifest
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestPush_Layout(t *testing.T) {
	src := writeIndexDir(t)
	layout := t.TempDir()

	h := header.New()
	h.Init(header.KindRecipeIndex, header.APIVersion, "v1.0.0")

	res, err := Push(context.Background(), PushOptions{
		SourceDir:   src,
		Reference:   &Reference{LayoutPath: layout, Tag: "v1.0.0"},
		Annotations: Annotations(h),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Digest)
	assert.Equal(t, layout+":v1.0.0", res.Reference)

	m := fetchManifest(t, layout, "v1.0.0")
	assert.Equal(t, ArtifactType, m.ArtifactType)
	require.Len(t, m.Layers, 1)
	assert.Equal(t, ociv1.MediaTypeImageLayerGzip, m.Layers[0].MediaType)
	assert.Equal(t, "v1", m.Layers[0].Annotations[ociv1.AnnotationTitle])

	assert.Equal(t, h.BuildID(), m.Annotations[AnnotationBuildID])
	assert.Equal(t, "v1.0.0", m.Annotations[ociv1.AnnotationVersion])
	assert.Equal(t, h.Metadata[header.MetadataTimestamp], m.Annotations[ociv1.AnnotationCreated])
}

func TestPush_Reproducible(t *testing.T) {
	src := writeIndexDir(t)
	annotations := map[string]string{ociv1.AnnotationCreated: "2000-01-01T00:00:00Z"}

	var digests []string
	for range 2 {
		res, err := Push(context.Background(), PushOptions{
			SourceDir:   src,
			Reference:   &Reference{LayoutPath: t.TempDir(), Tag: "repro"},
			Annotations: annotations,
		})
		require.NoError(t, err)
		digests = append(digests, res.Digest)
	}
	assert.Equal(t, digests[0], digests[1])
}

func TestPush_Validation(t *testing.T) {
	src := writeIndexDir(t)
	file := filepath.Join(src, "index.json")

	tests := []struct {
		name string
		opts PushOptions
		code apperrors.ErrorCode
	}{
		{
			name: "no reference",
			opts: PushOptions{SourceDir: src},
			code: apperrors.ErrCodeInvalidRequest,
		},
		{
			name: "no tag",
			opts: PushOptions{SourceDir: src, Reference: &Reference{LayoutPath: t.TempDir()}},
			code: apperrors.ErrCodeInvalidRequest,
		},
		{
			name: "missing source",
			opts: PushOptions{SourceDir: filepath.Join(src, "nope"), Reference: &Reference{LayoutPath: t.TempDir(), Tag: "x"}},
			code: apperrors.ErrCodeNotFound,
		},
		{
			name: "source is a file",
			opts: PushOptions{SourceDir: file, Reference: &Reference{LayoutPath: t.TempDir(), Tag: "x"}},
			code: apperrors.ErrCodeInvalidRequest,
		},
		{
			name: "bad registry reference",
			opts: PushOptions{SourceDir: src, Reference: &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "Bad Repo", Tag: "x"}},
			code: apperrors.ErrCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Push(context.Background(), tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}
}

func TestAnnotations(t *testing.T) {
	base := Annotations(nil)
	assert.Equal(t, map[string]string{
		ociv1.AnnotationTitle:  title,
		ociv1.AnnotationSource: sourceURL,
	}, base)

	h := header.New()
	h.Init(header.KindRecipeIndex, header.APIVersion, "")
	a := Annotations(h)
	assert.NotContains(t, a, ociv1.AnnotationVersion)
	assert.Equal(t, h.BuildID(), a[AnnotationBuildID])
}

func TestStripProtocol(t *testing.T) {
	tests := map[string]string{
		"https://ghcr.io":       "ghcr.io",
		"http://localhost:5000": "localhost:5000",
		"registry.example.com":  "registry.example.com",
	}
	for in, want := range tests {
		assert.Equal(t, want, stripProtocol(in), in)
	}
}
