package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	apperrors "github.com/autopkg/index/pkg/errors"
	"github.com/autopkg/index/pkg/index"
	"github.com/autopkg/index/pkg/serializer"
)

var recipes = map[string]string{
	"autopkg/foo-recipes/Foo/Foo.download.recipe.yaml": `Identifier: com.github.foo.download.Foo
Description: Downloads Foo.
Input:
  NAME: Foo
`,
	"autopkg/foo-recipes/Foo/Foo.munki.recipe.yaml": `Identifier: com.github.foo.munki.Foo
ParentRecipe: com.github.foo.download.Foo
Input:
  NAME: Foo
  pkginfo:
    display_name: Foo
`,
	"autopkg/bar-recipes/Bar/Bar.jamf.recipe.yaml": `Identifier: com.github.bar.jamf.Bar
ParentRecipe: com.github.bar.download.Bar
Input:
  NAME: Bar
`,
}

func writeRepos(t *testing.T, extra map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "repos")
	for _, files := range []map[string]string{recipes, extra} {
		for name, content := range files {
			path := filepath.Join(root, filepath.FromSlash(name))
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		}
	}
	return root
}

// run executes the root command with args and captures its output.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.Writer = &out
	root.ErrWriter = &errOut
	err = root.Run(context.Background(), append([]string{name, "--log-level", "error"}, args...))
	return out.String(), errOut.String(), err
}

func TestBuildCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	repos := writeRepos(t, nil)
	out := filepath.Join(t.TempDir(), "v1", "index.json")

	stdout, stderr, err := run(t, "build", "--repos-dir", repos, "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Recipes indexed: 3\n")
	assert.Contains(t, stderr, "Missing parent recipes: 1")

	ix, err := serializer.FromFile[index.Index](context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())

	parent, ok := ix.Lookup("com.github.foo.download.Foo")
	require.True(t, ok)
	assert.Equal(t, []string{"com.github.foo.munki.Foo"}, parent.Children)

	assert.Equal(t, []string{"com.github.foo.munki.Foo"}, ix.Shortname("Foo.munki"))
}

func TestBuildCommand_FailOnErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	repos := writeRepos(t, map[string]string{
		"autopkg/bad-recipes/Bad/Bad.munki.recipe.yaml": "Identifier: [unclosed\n",
	})
	out := filepath.Join(t.TempDir(), "index.json")

	_, stderr, err := run(t, "build", "--repos-dir", repos, "-o", out)
	require.NoError(t, err, "parse errors only warn by default")
	assert.Contains(t, stderr, "YAML parsing errors: 1")

	_, _, err = run(t, "build", "--repos-dir", repos, "-o", out, "--fail-on-errors")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBuildFailed))
	assert.Equal(t, exitBuildFailed, exitCode(err))

	// the index is still written before failing
	assert.FileExists(t, out)
}

func TestBuildCommand_Annotations(t *testing.T) {
	t.Chdir(t.TempDir())
	repos := writeRepos(t, nil)
	out := filepath.Join(t.TempDir(), "index.json")

	stdout, _, err := run(t, "build", "--repos-dir", repos, "-o", out, "--annotations", "github")
	require.NoError(t, err)
	assert.Contains(t, stdout, "::warning::com.github.bar.jamf.Bar refers to missing parent recipe com.github.bar.download.Bar.")
}

func TestBuildCommand_Stdout(t *testing.T) {
	t.Chdir(t.TempDir())
	repos := writeRepos(t, nil)

	stdout, stderr, err := run(t, "build", "--repos-dir", repos, "-o", "-", "--format", "yaml", "--annotations", "github")
	require.NoError(t, err)
	assert.Contains(t, stdout, "identifiers:")
	assert.NotContains(t, stdout, "::warning")
	assert.Contains(t, stderr, "::warning")
}

func TestBuildCommand_InvalidInput(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing repos dir", args: []string{"build", "--repos-dir", filepath.Join(t.TempDir(), "nope")}},
		{name: "table format", args: []string{"build", "--format", "table"}},
		{name: "bad annotations", args: []string{"build", "--annotations", "gitlab"}},
		{name: "missing config", args: []string{"build", "--config", "nope.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, exitError, exitCode(err))
		})
	}
}

func TestStatsCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	repos := writeRepos(t, nil)
	out := filepath.Join(t.TempDir(), "index.json")
	_, _, err := run(t, "build", "--repos-dir", repos, "-o", out)
	require.NoError(t, err)

	stdout, _, err := run(t, "stats", "--index", out, "--format", "json")
	require.NoError(t, err)

	var s index.Stats
	require.NoError(t, json.Unmarshal([]byte(stdout), &s))
	assert.Equal(t, 3, s.Identifiers)
	assert.Equal(t, 3, s.Shortnames)
	assert.Equal(t, 1, s.Parents)
	assert.Equal(t, map[string]int{"download": 1, "munki": 1, "jamf": 1}, s.Types)

	table, _, err := run(t, "stats", "--index", out)
	require.NoError(t, err)
	assert.Contains(t, table, "FIELD")
	assert.Contains(t, table, "identifiers")
}

func TestPublishCommand_Layout(t *testing.T) {
	t.Chdir(t.TempDir())
	repos := writeRepos(t, nil)
	out := filepath.Join(t.TempDir(), "v1", "index.json")
	_, _, err := run(t, "build", "--repos-dir", repos, "-o", out)
	require.NoError(t, err)

	layout := t.TempDir()
	stdout, _, err := run(t, "publish", "--index", out, "--to", layout, "--tag", "test")
	require.NoError(t, err)
	assert.Contains(t, stdout, fmt.Sprintf("Published 3 identifiers to %s:test@sha256:", layout))
	assert.FileExists(t, filepath.Join(layout, "index.json"))
	assert.FileExists(t, filepath.Join(layout, "oci-layout"))
}

func TestPublishCommand_BadIndex(t *testing.T) {
	t.Chdir(t.TempDir())
	bad := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"identifiers": {"x": null}}`), 0o600))

	_, _, err := run(t, "publish", "--index", bad, "--to", t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestSyncCommand_ExistingCheckouts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orgs/autopkg/repos" || r.URL.Query().Get("page") != "1" {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprint(w, `[
  {"full_name": "autopkg/foo-recipes", "clone_url": "https://example.invalid/foo.git"},
  {"full_name": "autopkg/autopkg", "clone_url": "https://example.invalid/autopkg.git"},
  {"full_name": "autopkg/forked", "clone_url": "https://example.invalid/forked.git", "fork": true}
]`)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".recipe-index.yaml"),
		[]byte("github:\n  apiURL: "+srv.URL+"\n"), 0o600))

	// an existing checkout is kept as is, so no git command runs
	repos := writeRepos(t, nil)

	stdout, stderr, err := run(t, "sync", "--repos-dir", repos, "--org", "autopkg")
	require.NoError(t, err)
	assert.Equal(t, "autopkg/foo-recipes\n", stdout)
	assert.Contains(t, stderr, "Synced 1 repositories into "+repos)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".recipe-index.yaml"), []byte(`organization: fromfile
reposDir: filedir
format: yaml
excludedRepos:
- fromfile/skip
`), 0o600))

	tests := []struct {
		name     string
		args     []string
		wantOrg  string
		wantDir  string
		wantFmt  string
		excluded []string
	}{
		{
			name:     "file only",
			wantOrg:  "fromfile",
			wantDir:  "filedir",
			wantFmt:  "yaml",
			excluded: []string{"fromfile/skip"},
		},
		{
			name:     "flags win",
			args:     []string{"--org", "flag", "--repos-dir", "flagdir", "--format", "json", "--exclude", "a/b", "--exclude", "c/d"},
			wantOrg:  "flag",
			wantDir:  "flagdir",
			wantFmt:  "json",
			excluded: []string{"a/b", "c/d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Name:  "test",
				Flags: []cli.Flag{configFlag(), orgFlag(), reposDirFlag(), formatFlag("json"), excludeFlag()},
				Action: func(_ context.Context, c *cli.Command) error {
					cfg, err := loadConfig(c)
					require.NoError(t, err)
					assert.Equal(t, tt.wantOrg, cfg.Organization)
					assert.Equal(t, tt.wantDir, cfg.ReposDir)
					assert.Equal(t, tt.wantFmt, cfg.Format)
					assert.Equal(t, tt.excluded, cfg.ExcludedRepos)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, tt.args...)))
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitOK},
		{name: "canceled", err: fmt.Errorf("wrapped: %w", context.Canceled), want: exitInterrupted},
		{name: "deadline", err: apperrors.Wrap(apperrors.ErrCodeTimeout, "slow", context.DeadlineExceeded), want: exitInterrupted},
		{name: "build failed", err: apperrors.New(apperrors.ErrCodeBuildFailed, "2 failures"), want: exitBuildFailed},
		{name: "other", err: errors.New("boom"), want: exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
		assert.NotNil(t, c.Action, c.Name)
	}
	assert.Equal(t, []string{"build", "sync", "publish", "stats"}, names)
}
