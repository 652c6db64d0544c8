package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTarget(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		resolved, err := resolveTarget(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, resolved)
	})

	t.Run("missing directory is creatable", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "not-yet-created")
		resolved, err := resolveTarget(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, resolved)
	})

	t.Run("relative path becomes absolute", func(t *testing.T) {
		resolved, err := resolveTarget(".")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(resolved))
	})

	t.Run("regular file is rejected", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "a-file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		_, err := resolveTarget(file)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a directory")
	})
}
