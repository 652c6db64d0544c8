package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstallFlagSet() *cobra.Command {
	cmd := &cobra.Command{}
	defaults := NewInstallConfig()
	cmd.Flags().String("path", defaults.Path, "")
	cmd.Flags().Bool("force", defaults.Force, "")
	return cmd
}

func TestGetInstallConfigFromFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := getInstallConfigFromFlags(newInstallFlagSet())
		assert.Equal(t, ".", config.Path)
		assert.False(t, config.Force)
	})

	t.Run("explicit values", func(t *testing.T) {
		cmd := newInstallFlagSet()
		require.NoError(t, cmd.Flags().Set("path", "/tmp/proj"))
		require.NoError(t, cmd.Flags().Set("force", "true"))

		config := getInstallConfigFromFlags(cmd)
		assert.Equal(t, "/tmp/proj", config.Path)
		assert.True(t, config.Force)
	})
}

func TestGetUpdateConfigFromFlags(t *testing.T) {
	cmd := &cobra.Command{}
	defaults := NewUpdateConfig()
	cmd.Flags().String("path", defaults.Path, "")
	require.NoError(t, cmd.Flags().Set("path", "/tmp/proj"))

	config := getUpdateConfigFromFlags(cmd)
	assert.Equal(t, "/tmp/proj", config.Path)
}

func TestRunInstallEndToEnd(t *testing.T) {
	target := t.TempDir()

	code := runInstall(context.Background(), &InstallConfig{Path: target})
	require.Equal(t, 0, code)

	// The embedded bundle lands under the fixed skills subdirectory
	skillsDir := filepath.Join(target, ".claude", "skills")
	info, err := os.Stat(skillsDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(skillsDir, "codegen", "fhir-handler-generator", "SKILL.md"))
	assert.NoError(t, err)

	// A second install without force hits the conflict guard
	code = runInstall(context.Background(), &InstallConfig{Path: target})
	assert.Equal(t, exitConflict, code)

	// Update merges over the existing installation
	code = runUpdate(context.Background(), &UpdateConfig{Path: target})
	assert.Equal(t, 0, code)
}

func TestRunInstallRejectsFileTarget(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a-file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	code := runInstall(context.Background(), &InstallConfig{Path: file})
	assert.Equal(t, exitUsage, code)
}
