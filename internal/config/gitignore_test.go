package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureGitignore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".dealerdesk")

	created, err := EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "session.json")

	// An existing file is left alone.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("custom\n"), 0o600))
	created, err = EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)
	data, err = os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(data))
}

func TestResolvedProjectDir(t *testing.T) {
	t.Cleanup(func() { SetResolvedProjectDir("") })

	assert.Empty(t, GetResolvedProjectDir())
	SetResolvedProjectDir("/tmp/project/.dealerdesk")
	assert.Equal(t, "/tmp/project/.dealerdesk", GetResolvedProjectDir())
}
