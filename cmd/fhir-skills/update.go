package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ihis/fhir-engine-skills/pkg/installer"
	"github.com/ihis/fhir-engine-skills/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type UpdateConfig struct {
	Path string
}

func NewUpdateConfig() *UpdateConfig {
	return &UpdateConfig{
		Path: ".",
	}
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an existing skills installation",
	Long: `Overwrite installed skills with the bundled versions.

Update merges the bundle over <path>/.claude/skills: files shipped in
the bundle are refreshed, files the bundle does not know about (such as
your own custom skills) are left untouched. Running it twice is a no-op.

Examples:
  fhir-skills update
  fhir-skills update --path /path/to/my-fhir-project`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getUpdateConfigFromFlags(cmd)
		if code := runUpdate(cmd.Context(), config); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	defaults := NewUpdateConfig()
	updateCmd.Flags().String("path", defaults.Path, "Target project path (default: current directory)")
	rootCmd.AddCommand(updateCmd)
}

func getUpdateConfigFromFlags(cmd *cobra.Command) *UpdateConfig {
	config := NewUpdateConfig()
	if path, err := cmd.Flags().GetString("path"); err == nil {
		config.Path = path
	}
	return config
}

func runUpdate(ctx context.Context, config *UpdateConfig) int {
	target, err := resolveTarget(config.Path)
	if err != nil {
		presenter.Error(err, "Invalid target path")
		return exitUsage
	}

	b, catalog, code := loadCatalog()
	if code != 0 {
		return code
	}

	destDir := filepath.Join(target, filepath.FromSlash(installer.SkillsSubdir))
	presenter.Info(fmt.Sprintf("Updating FHIR Engine skills at %s", destDir))

	if err := installer.Update(ctx, b, target); err != nil {
		var partial *installer.PartialCopyError
		if errors.As(err, &partial) {
			reportPartialCopy(partial)
			return exitPartialCopy
		}
		presenter.Error(err, "Failed to update skills")
		return exitPartialCopy
	}

	presenter.Success(fmt.Sprintf("Updated %d skills to v%s", catalog.SkillCount(), b.Version))
	return 0
}
