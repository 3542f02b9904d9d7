package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopkg/index/pkg/header"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		namespace string
		cmName    string
		wantErr   bool
	}{
		{"valid", "cm://autopkg/recipe-index", "autopkg", "recipe-index", false},
		{"trimmed", "cm:// autopkg / recipe-index ", "autopkg", "recipe-index", false},
		{"no scheme", "autopkg/recipe-index", "", "", true},
		{"no name", "cm://autopkg", "", "", true},
		{"empty namespace", "cm:///recipe-index", "", "", true},
		{"empty name", "cm://autopkg/", "", "", true},
		{"nested name", "cm://autopkg/a/b", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, name, err := parseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.namespace, ns)
			assert.Equal(t, tt.cmName, name)
		})
	}
}

func TestConfigMapWriter_ApplyConfig(t *testing.T) {
	h := header.New()
	h.Init(header.KindRecipeIndex, header.APIVersion, "v1.2.3")

	w := NewConfigMapWriter("autopkg", "recipe-index", FormatJSON, WithHeader(h))
	cfg := w.applyConfig([]byte(`{"identifiers":{},"shortnames":{}}`))

	require.NotNil(t, cfg.Name)
	assert.Equal(t, "recipe-index", *cfg.Name)
	require.NotNil(t, cfg.Namespace)
	assert.Equal(t, "autopkg", *cfg.Namespace)

	assert.Equal(t, `{"identifiers":{},"shortnames":{}}`, cfg.Data["index.json"])
	assert.Equal(t, "json", cfg.Data["format"])
	assert.Equal(t, h.Metadata[header.MetadataTimestamp], cfg.Data["timestamp"])

	assert.Equal(t, "recipe-index", cfg.Labels["app.kubernetes.io/name"])
	assert.Equal(t, "RecipeIndex", cfg.Labels["app.kubernetes.io/component"])
	assert.Equal(t, "v1.2.3", cfg.Labels["app.kubernetes.io/version"])
	assert.Equal(t, h.BuildID(), cfg.Annotations["autopkg.github.io/build-id"])
}

func TestConfigMapWriter_Defaults(t *testing.T) {
	w := NewConfigMapWriter("ns", "name", Format("bogus"))
	assert.Equal(t, FormatJSON, w.format)
	assert.NoError(t, w.Close())

	cfg := w.applyConfig(nil)
	assert.Equal(t, "unknown", cfg.Labels["app.kubernetes.io/version"])
	assert.NotEmpty(t, cfg.Data["timestamp"])
}
