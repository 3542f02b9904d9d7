package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopkg/index/pkg/document"
)

func docFrom(t *testing.T, raw map[string]any) Document {
	t.Helper()
	m, ok := document.FromAny(raw).Map()
	require.True(t, ok)
	return NewDocument(m)
}

func TestInferType(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		shortname string
		typ       string
		ok        bool
	}{
		{"plain", "Foo/Foo.munki.recipe", "Foo.munki", "munki", true},
		{"yaml", "Foo/Foo.jamf.recipe.yaml", "Foo.jamf", "jamf", true},
		{"plist", "Foo/Foo.download.recipe.plist", "Foo.download", "download", true},
		{"top level", "Foo.pkg.recipe", "Foo.pkg", "pkg", true},
		{"spaces and hyphens", "A/My App-2.intune.recipe", "My App-2.intune", "intune", true},
		{"unicode", "Café/Café.munki.recipe", "Café.munki", "munki", true},
		{"combining accent", "Cafe\u0301/Cafe\u0301.munki.recipe", "", "", false},
		{"no type", "Foo/Foo.recipe", "", "", false},
		{"too many dots", "Foo/Foo.v2.munki.recipe", "", "", false},
		{"wrong extension", "Foo/Foo.munki.recipe.json", "", "", false},
		{"dotted name only", "Foo/.munki.recipe", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shortname, typ, ok := InferType(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.shortname, shortname)
			assert.Equal(t, tt.typ, typ)
		})
	}
}

func TestRelativePath(t *testing.T) {
	rel, err := RelativePath("/repos/autopkg/recipes", "/repos/autopkg/recipes/Foo/Foo.munki.recipe")
	require.NoError(t, err)
	assert.Equal(t, "Foo/Foo.munki.recipe", rel)
}

func TestNormalize_CoreFields(t *testing.T) {
	doc := docFrom(t, map[string]any{
		"Identifier":   "com.example.munki.Foo",
		"Description":  "Imports Foo into Munki.",
		"ParentRecipe": "com.example.download.Foo",
		"Input": map[string]any{
			"NAME": "Foo",
		},
	})

	res := NewNormalizer().Normalize(doc, "example/recipes", "Foo/Foo.munki.recipe")
	require.NotNil(t, res.Entry)
	assert.False(t, res.Deprecated)
	assert.True(t, res.HasIdentifier)
	assert.Equal(t, "com.example.munki.Foo", res.Identifier)
	assert.Equal(t, "com.example.download.Foo", res.ParentIdentifier)

	e := res.Entry
	assert.Equal(t, document.String("Foo"), e.Name)
	assert.Equal(t, document.String("Imports Foo into Munki."), e.Description)
	assert.Equal(t, "example/recipes", e.Repo)
	assert.Equal(t, "Foo/Foo.munki.recipe", e.Path)
	require.NotNil(t, e.Parent)
	assert.Equal(t, document.String("com.example.download.Foo"), *e.Parent)
	assert.Equal(t, "Foo.munki", e.Shortname)
	assert.Equal(t, "munki", e.InferredType)
}

func TestNormalize_Deprecated(t *testing.T) {
	doc := docFrom(t, map[string]any{
		"Identifier": "com.example.munki.Old",
		"Input":      map[string]any{"NAME": "Old"},
		"Process": []any{
			map[string]any{"Processor": "URLDownloader"},
			map[string]any{"Processor": "DeprecationWarning", "Arguments": map[string]any{}},
		},
	})

	res := NewNormalizer().Normalize(doc, "example/recipes", "Old/Old.munki.recipe")
	assert.True(t, res.Deprecated)
	assert.Nil(t, res.Entry)
}

func TestNormalize_NoShortname(t *testing.T) {
	doc := docFrom(t, map[string]any{"Identifier": "com.example.Foo"})

	res := NewNormalizer().Normalize(doc, "example/recipes", "Foo/Foo.recipe")
	require.NotNil(t, res.Entry)
	assert.False(t, res.Entry.HasShortname())
	assert.Empty(t, res.Entry.InferredType)
	assert.Empty(t, res.Entry.Fields)
	assert.True(t, res.Entry.Name.IsNull())
	assert.Nil(t, res.Entry.Parent)
}

func TestNormalize_MissingIdentifier(t *testing.T) {
	doc := docFrom(t, map[string]any{
		"Identifier":   "   ",
		"ParentRecipe": "com.example.download.Foo",
	})

	res := NewNormalizer().Normalize(doc, "example/recipes", "Foo/Foo.munki.recipe")
	require.NotNil(t, res.Entry)
	assert.False(t, res.HasIdentifier)
	assert.Empty(t, res.Identifier)
}

func TestNormalize_TypeExtraction(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		input       map[string]any
		wantName    document.Value
		wantDesc    document.Value
		wantNoField bool
	}{
		{
			name: "munki pkginfo",
			path: "Foo/Foo.munki.recipe",
			input: map[string]any{
				"pkginfo": map[string]any{"display_name": "Foo App", "description": "Foo does things."},
			},
			wantName: document.String("Foo App"),
			wantDesc: document.String("Foo does things."),
		},
		{
			name:     "ws1 missing pkginfo",
			path:     "Foo/Foo.ws1.recipe.yaml",
			input:    map[string]any{},
			wantName: document.Null(),
			wantDesc: document.Null(),
		},
		{
			name:     "jamf self service",
			path:     "Bar/Bar.jamf.recipe",
			input:    map[string]any{"SELF_SERVICE_DISPLAY_NAME": "Bar", "SELF_SERVICE_DESCRIPTION": "Bar desc"},
			wantName: document.String("Bar"),
			wantDesc: document.String("Bar desc"),
		},
		{
			name:     "jss self service",
			path:     "Bar/Bar.jss.recipe",
			input:    map[string]any{"SELF_SERVICE_DISPLAY_NAME": "Bar"},
			wantName: document.String("Bar"),
			wantDesc: document.Null(),
		},
		{
			name:     "intune bare keys",
			path:     "Baz/Baz.intune.recipe.yaml",
			input:    map[string]any{"display_name": "Baz", "description": "Baz desc"},
			wantName: document.String("Baz"),
			wantDesc: document.String("Baz desc"),
		},
		{
			name:        "unknown type",
			path:        "Qux/Qux.pkg.recipe",
			input:       map[string]any{"display_name": "Qux"},
			wantNoField: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docFrom(t, map[string]any{"Identifier": "id", "Input": tt.input})
			e := NewNormalizer().Normalize(doc, "r", tt.path).Entry
			require.NotNil(t, e)

			if tt.wantNoField {
				assert.Empty(t, e.Fields)
				return
			}
			name, ok := e.Field(FieldAppDisplayName)
			require.True(t, ok)
			assert.True(t, tt.wantName.Equal(name), "app_display_name = %v", name)
			desc, ok := e.Field(FieldAppDescription)
			require.True(t, ok)
			assert.True(t, tt.wantDesc.Equal(desc), "app_description = %v", desc)
		})
	}
}

func TestNormalize_CustomTypeRules(t *testing.T) {
	n := NewNormalizer(WithTypeRules(TypeRules{
		"filewave": {{Field: FieldAppDisplayName, Source: SourceInput, Key: "FW_NAME"}},
	}))

	doc := docFrom(t, map[string]any{"Input": map[string]any{"FW_NAME": "Foo"}})
	e := n.Normalize(doc, "r", "Foo/Foo.filewave.recipe").Entry
	require.NotNil(t, e)

	v, ok := e.Field(FieldAppDisplayName)
	require.True(t, ok)
	assert.Equal(t, document.String("Foo"), v)

	// defaults survive the merge
	assert.Contains(t, n.Rules().Types(), "munki")
}

func TestTypeRules_Validate(t *testing.T) {
	require.NoError(t, DefaultTypeRules().Validate())

	tests := []struct {
		name  string
		rules TypeRules
	}{
		{"empty type", TypeRules{"": {{Field: "x", Key: "y"}}}},
		{"no field", TypeRules{"t": {{Key: "y"}}}},
		{"no key", TypeRules{"t": {{Field: "x"}}}},
		{"core field", TypeRules{"t": {{Field: FieldName, Key: "y"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.rules.Validate())
		})
	}
}
