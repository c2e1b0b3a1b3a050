package skein

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skein.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = \"json\"\nenv = \"env.json\"\n"), 0644))

	config, err := LoadProjectConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", config.Output)
	assert.Equal(t, "env.json", config.Env)
}

func TestLoadProjectConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skein.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = [broken"), 0644))

	_, err := LoadProjectConfig(path)
	assert.Error(t, err)
}

func TestFindProjectConfig(t *testing.T) {
	t.Run("found in a parent directory", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "skein.toml"), []byte("output = \"pretty\"\n"), 0644))
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0755))

		path, config, err := FindProjectConfig(nested)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, filepath.Join(root, "skein.toml"), path)
		assert.Equal(t, "pretty", config.Output)
	})

	t.Run("search stops at a git boundary", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "skein.toml"), []byte(""), 0644))
		repo := filepath.Join(root, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))

		path, config, err := FindProjectConfig(repo)
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Nil(t, config)
	})
}
