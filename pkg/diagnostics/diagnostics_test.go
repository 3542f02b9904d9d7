package diagnostics

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCategory_HardFailure(t *testing.T) {
	hard := map[Category]bool{
		CategoryYAMLParse:     true,
		CategoryPlistParse:    true,
		CategoryEmptyDocument: true,
	}
	for _, cat := range Categories() {
		assert.Equal(t, hard[cat], cat.HardFailure(), "category %s", cat)
		assert.NotEqual(t, string(cat), cat.Label(), "category %s has no label", cat)
	}
	assert.Equal(t, "custom", Category("custom").Label())
}

func TestCollector_Counts(t *testing.T) {
	c := New(WithLogger(quietLogger()))
	c.Record(CategoryYAMLParse, "a.recipe.yaml", "bad yaml")
	c.Record(CategoryEmptyDocument, "b.recipe", "empty")
	c.Record(CategoryUnresolvedVariable, "c.recipe", "unresolved")
	c.Recordf(CategoryDanglingParent, "", "%s refers to missing parent recipe %s.", "c1", "p1")
	c.SetIndexed(10)

	assert.Equal(t, 4, c.Total())
	assert.Equal(t, 2, c.HardFailures())
	assert.Equal(t, 1, c.Count(CategoryDanglingParent))
	assert.Equal(t, "c1 refers to missing parent recipe p1.", c.Diagnostics(CategoryDanglingParent)[0].Message)
	assert.Equal(t, SeverityError, c.Diagnostics(CategoryYAMLParse)[0].Severity)
	assert.Equal(t, SeverityWarning, c.Diagnostics(CategoryUnresolvedVariable)[0].Severity)
	assert.Len(t, c.All(), 4)

	s := c.Summary()
	assert.Equal(t, 10, s.Indexed)
	assert.Equal(t, 4, s.Warnings)
	assert.Equal(t, 2, s.HardFailures)
	assert.Equal(t, []CategoryCount{
		{Category: CategoryYAMLParse, Label: "YAML parsing errors", Count: 1},
		{Category: CategoryEmptyDocument, Label: "Empty recipe files", Count: 1},
		{Category: CategoryUnresolvedVariable, Label: "Unresolved variables", Count: 1},
		{Category: CategoryDanglingParent, Label: "Missing parent recipes", Count: 1},
	}, s.Categories)
}

func TestCollector_WriteSummary(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		c := New(WithLogger(quietLogger()))
		c.SetIndexed(2)

		var buf bytes.Buffer
		require.NoError(t, c.WriteSummary(&buf))
		assert.Equal(t, "Recipes indexed: 2\n", buf.String())
	})

	t.Run("with warnings", func(t *testing.T) {
		c := New(WithLogger(quietLogger()))
		c.Record(CategoryPlistParse, "x.recipe", "bad")
		c.Record(CategoryPlistParse, "y.recipe", "bad")

		var buf bytes.Buffer
		require.NoError(t, c.WriteSummary(&buf))
		out := buf.String()
		assert.Contains(t, out, "WARNING SUMMARY:\n")
		assert.Contains(t, out, "Total warnings: 2\n")
		assert.Contains(t, out, "Plist parsing errors: 2\n")
		assert.NotContains(t, out, "YAML parsing errors")
	})
}

func TestCollector_Annotations(t *testing.T) {
	var ann bytes.Buffer
	var logs bytes.Buffer
	c := New(
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithAnnotations(&ann),
	)

	c.Record(CategoryYAMLParse, "repos/o/r/a,b.recipe.yaml", "line 1:\nbad 100%")
	c.Record(CategoryDanglingParent, "", "c1 refers to missing parent recipe p1.")

	lines := strings.Split(strings.TrimSpace(ann.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "::warning file=repos/o/r/a%2Cb.recipe.yaml::line 1:%0Abad 100%25", lines[0])
	assert.Equal(t, "::warning::c1 refers to missing parent recipe p1.", lines[1])

	assert.Contains(t, logs.String(), "level=ERROR")
	assert.Contains(t, logs.String(), "category=yaml_parse_errors")
	assert.Contains(t, logs.String(), "level=WARN")
}
