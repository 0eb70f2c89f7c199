package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const yamlConfig = `patchsets:
  - name: add-suggestion-schemas
    target: backend/validation.js
    edits:
      - name: insert-product-block
        search: "old product block"
        replace: "new product block"
      - search: "old keyword block"
        replace: "new keyword block"
`

const jsonConfig = `{
  "patchsets": [
    {
      "name": "add-suggestion-schemas",
      "target": "backend/validation.js",
      "edits": [
        {"name": "insert-product-block", "search": "old product block", "replace": "new product block"},
        {"search": "old keyword block", "replace": "new keyword block"}
      ]
    }
  ]
}`

const hclConfig = `patchset "add-suggestion-schemas" {
  target = "backend/validation.js"

  edit {
    name    = "insert-product-block"
    search  = "old product block"
    replace = "new product block"
  }

  edit {
    search  = "old keyword block"
    replace = "new keyword block"
  }
}
`

func assertLoadedConfig(t *testing.T, cfg *Config) {
	t.Helper()
	require.Len(t, cfg.Patchsets, 1)
	ps := cfg.Patchsets[0]
	assert.Equal(t, "add-suggestion-schemas", ps.Name)
	assert.Equal(t, "backend/validation.js", ps.Target)
	require.Len(t, ps.Edits, 2)
	assert.Equal(t, "insert-product-block", ps.Edits[0].Name)
	assert.Equal(t, "old product block", ps.Edits[0].Search)
	assert.Equal(t, "new product block", ps.Edits[0].Replace)
	assert.Empty(t, ps.Edits[1].Name)
	assert.Equal(t, "old keyword block", ps.Edits[1].Search)
}

func TestLoad_Formats(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{name: "yaml", filename: "patch.yaml", content: yamlConfig},
		{name: "yml", filename: "patch.yml", content: yamlConfig},
		{name: "json", filename: "patch.json", content: jsonConfig},
		{name: "hcl", filename: "patch.hcl", content: hclConfig},
		{name: "schemapatch_yaml", filename: ".schemapatch", content: yamlConfig},
		{name: "schemapatch_hcl", filename: "alt.schemapatch", content: hclConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeConfig(t, dir, tt.filename, tt.content)

			cfg, err := Load(ctx, path)
			require.NoError(t, err)
			assertLoadedConfig(t, cfg)
			assert.Equal(t, dir, cfg.BaseDir())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		filename  string
		content   string
		wantError string
	}{
		{
			name:      "unsupported_extension",
			filename:  "patch.toml",
			content:   "whatever",
			wantError: "unsupported file extension",
		},
		{
			name:      "unknown_yaml_field",
			filename:  "patch.yaml",
			content:   "patchsets: []\nbogus: true\n",
			wantError: "parsing YAML",
		},
		{
			name:      "unknown_json_field",
			filename:  "patch.json",
			content:   `{"patchsets": [], "bogus": true}`,
			wantError: "parsing JSON",
		},
		{
			name:      "no_patchsets",
			filename:  "patch.yaml",
			content:   "patchsets: []\n",
			wantError: "at least one patchset is required",
		},
		{
			name:     "missing_target",
			filename: "patch.yaml",
			content: `patchsets:
  - name: broken
    edits:
      - search: a
        replace: b
`,
			wantError: "target is required",
		},
		{
			name:     "empty_search",
			filename: "patch.yaml",
			content: `patchsets:
  - name: broken
    target: some/file.js
    edits:
      - search: ""
        replace: b
`,
			wantError: "search is required",
		},
		{
			name:     "duplicate_patchset_names",
			filename: "patch.yaml",
			content: `patchsets:
  - name: twice
    target: a.js
    edits:
      - search: a
        replace: b
  - name: twice
    target: b.js
    edits:
      - search: a
        replace: b
`,
			wantError: "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeConfig(t, dir, tt.filename, tt.content)

			_, err := Load(ctx, path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestPatchset_ResolveTargets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "backend"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backend", "validation.js"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backend", "other.js"), []byte("x"), 0644))

	t.Run("plain_path_passthrough", func(t *testing.T) {
		ps := Patchset{Target: "backend/validation.js"}
		targets, err := ps.ResolveTargets(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"backend/validation.js"}, targets)
	})

	t.Run("plain_path_is_not_checked_for_existence", func(t *testing.T) {
		// A missing plain target surfaces later as a read error, matching
		// the original script's behavior
		ps := Patchset{Target: "backend/missing.js"}
		targets, err := ps.ResolveTargets(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"backend/missing.js"}, targets)
	})

	t.Run("glob_expands", func(t *testing.T) {
		ps := Patchset{Target: "backend/*.js"}
		targets, err := ps.ResolveTargets(dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join("backend", "validation.js"),
			filepath.Join("backend", "other.js"),
		}, targets)
	})

	t.Run("doublestar_glob", func(t *testing.T) {
		ps := Patchset{Target: "**/validation.js"}
		targets, err := ps.ResolveTargets(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join("backend", "validation.js")}, targets)
	})

	t.Run("zero_matches_is_an_error", func(t *testing.T) {
		ps := Patchset{Target: "frontend/*.js"}
		_, err := ps.ResolveTargets(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "matched no files")
	})
}

func TestPatchset_PatchEdits(t *testing.T) {
	ps := Patchset{
		Edits: []EditDef{
			{Name: "one", Search: "a", Replace: "b"},
			{Search: "c", Replace: "d"},
		},
	}

	edits := ps.PatchEdits()
	require.Len(t, edits, 2)
	assert.Equal(t, "one", edits[0].Name)
	assert.Equal(t, "a", edits[0].Search)
	assert.Equal(t, "d", edits[1].Replace)
}
