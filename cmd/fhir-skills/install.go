package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ihis/fhir-engine-skills/pkg/bundle"
	"github.com/ihis/fhir-engine-skills/pkg/installer"
	"github.com/ihis/fhir-engine-skills/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type InstallConfig struct {
	Path  string
	Force bool
}

func NewInstallConfig() *InstallConfig {
	return &InstallConfig{
		Path:  ".",
		Force: false,
	}
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install bundled skills into a project",
	Long: `Copy the bundled FHIR Engine skills into <path>/.claude/skills.

If the skills directory already exists and is non-empty the command
aborts without touching it; re-run with --force to overwrite, or use
'fhir-skills update' to merge over an existing installation.

Examples:
  fhir-skills install
  fhir-skills install --path /path/to/my-fhir-project
  fhir-skills install --force`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getInstallConfigFromFlags(cmd)
		if code := runInstall(cmd.Context(), config); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	defaults := NewInstallConfig()
	installCmd.Flags().String("path", defaults.Path, "Target project path (default: current directory)")
	installCmd.Flags().Bool("force", defaults.Force, "Overwrite an existing skills directory")
	rootCmd.AddCommand(installCmd)
}

func getInstallConfigFromFlags(cmd *cobra.Command) *InstallConfig {
	config := NewInstallConfig()
	if path, err := cmd.Flags().GetString("path"); err == nil {
		config.Path = path
	}
	if force, err := cmd.Flags().GetBool("force"); err == nil {
		config.Force = force
	}
	return config
}

func runInstall(ctx context.Context, config *InstallConfig) int {
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
	presenter.Info(fmt.Sprintf("Installing FHIR Engine skills to %s", destDir))

	if err := installer.Install(ctx, b, target, config.Force); err != nil {
		var conflict *installer.ConflictError
		var partial *installer.PartialCopyError
		switch {
		case errors.As(err, &conflict):
			presenter.Warning(fmt.Sprintf("Skills directory already exists at %s", conflict.Dir))
			presenter.Info("Re-run with --force to overwrite, or use 'fhir-skills update' to refresh it.")
			return exitConflict
		case errors.As(err, &partial):
			reportPartialCopy(partial)
			return exitPartialCopy
		default:
			presenter.Error(err, "Failed to install skills")
			return exitPartialCopy
		}
	}

	presenter.Success(fmt.Sprintf("Successfully installed %d skills", catalog.SkillCount()))
	presenter.Info("")
	presenter.Info("Available skills:")
	for _, skill := range catalog.Skills() {
		presenter.Info("  • " + skill.Name)
	}
	presenter.Info("")
	presenter.Info("Next steps:")
	presenter.Info("  1. Open your project in Claude Code")
	presenter.Info("  2. Skills activate automatically when relevant")
	presenter.Info("  3. Try asking: 'Create CRUD handlers for Patient resource'")
	return 0
}

// loadCatalog resolves the embedded bundle and its catalog, reporting
// both failure modes as a broken tool installation.
func loadCatalog() (*bundle.Bundle, *bundle.Catalog, int) {
	b, err := bundle.Load()
	if err != nil {
		presenter.Error(err, "Skills bundle is missing from this installation")
		presenter.Info("Reinstall fhir-skills to restore the bundled skills.")
		return nil, nil, exitBundleNotFound
	}

	catalog, err := bundle.BuildCatalog(b)
	if err != nil {
		presenter.Error(err, "Skills bundle is corrupted")
		presenter.Info("Reinstall fhir-skills to restore the bundled skills.")
		return nil, nil, exitBundleNotFound
	}

	return b, catalog, 0
}

func reportPartialCopy(partial *installer.PartialCopyError) {
	presenter.Error(partial, "Some skill files could not be written")
	for _, path := range partial.Failed {
		presenter.Info("  failed: " + path)
	}
	presenter.Info("Re-run 'fhir-skills update' once the paths above are writable.")
}
