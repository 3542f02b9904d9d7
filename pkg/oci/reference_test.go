package oci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/autopkg/index/pkg/errors"
)

func TestParseOutputTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Reference
		wantErr bool
	}{
		{
			name:  "layout directory",
			input: "./out/layout",
			want:  Reference{LayoutPath: "./out/layout"},
		},
		{
			name:  "registry with tag",
			input: "oci://ghcr.io/autopkg/index:v1.2.0",
			want:  Reference{IsOCI: true, Registry: "ghcr.io", Repository: "autopkg/index", Tag: "v1.2.0"},
		},
		{
			name:  "registry without tag",
			input: "oci://ghcr.io/autopkg/index",
			want:  Reference{IsOCI: true, Registry: "ghcr.io", Repository: "autopkg/index"},
		},
		{
			name:  "registry with port",
			input: "oci://localhost:5000/recipes/index:dev",
			want:  Reference{IsOCI: true, Registry: "localhost:5000", Repository: "recipes/index", Tag: "dev"},
		},
		{
			name:  "docker hub shorthand",
			input: "oci://autopkg/index:v1",
			want:  Reference{IsOCI: true, Registry: "docker.io", Repository: "autopkg/index", Tag: "v1"},
		},
		{
			name:    "uppercase repository",
			input:   "oci://ghcr.io/AutoPkg/Index:v1",
			wantErr: true,
		},
		{
			name:    "digest",
			input:   "oci://ghcr.io/autopkg/index@sha256:" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputTarget(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestReference_String(t *testing.T) {
	tests := []struct {
		name      string
		ref       Reference
		wantStr   string
		wantImage string
	}{
		{
			name:      "tagged",
			ref:       Reference{IsOCI: true, Registry: "ghcr.io", Repository: "autopkg/index", Tag: "v1"},
			wantStr:   "oci://ghcr.io/autopkg/index:v1",
			wantImage: "ghcr.io/autopkg/index:v1",
		},
		{
			name:      "untagged",
			ref:       Reference{IsOCI: true, Registry: "ghcr.io", Repository: "autopkg/index"},
			wantStr:   "oci://ghcr.io/autopkg/index",
			wantImage: "ghcr.io/autopkg/index",
		},
		{
			name:      "layout",
			ref:       Reference{LayoutPath: "/tmp/layout", Tag: "v1"},
			wantStr:   "/tmp/layout",
			wantImage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStr, tt.ref.String())
			assert.Equal(t, tt.wantImage, tt.ref.ImageReference())
		})
	}
}

func TestReference_Tags(t *testing.T) {
	ref := &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "autopkg/index"}

	tagged := ref.WithDefaultTag("latest")
	assert.Equal(t, "latest", tagged.Tag)
	assert.Empty(t, ref.Tag, "original must not change")

	again := tagged.WithDefaultTag("v2")
	assert.Equal(t, "latest", again.Tag)

	assert.Equal(t, "v2", tagged.WithTag("v2").Tag)
}
