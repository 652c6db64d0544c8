package main

import (
	"fmt"
	"strings"

	"github.com/ihis/fhir-engine-skills/pkg/bundle"
	"github.com/ihis/fhir-engine-skills/pkg/presenter"
	"github.com/ihis/fhir-engine-skills/pkg/version"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show package information",
	Long:  `Show the tool version and a summary of the bundled skills.`,
	Run: func(_ *cobra.Command, _ []string) {
		runInfo()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// runInfo always succeeds: when the bundle cannot be resolved it still
// reports the tool version, with a warning instead of a failure.
func runInfo() {
	presenter.Section(fmt.Sprintf("FHIR Engine Claude Skills v%s", version.Get().Version))

	if b, err := bundle.Load(); err != nil {
		presenter.Warning("Skills bundle could not be resolved; reinstall fhir-skills to restore it")
	} else if catalog, err := bundle.BuildCatalog(b); err != nil {
		presenter.Warning("Skills bundle is corrupted; reinstall fhir-skills to restore it")
	} else {
		presenter.Info(fmt.Sprintf("%d skills in %d categories: %s",
			catalog.SkillCount(), len(catalog.Categories), strings.Join(catalog.CategoryNames(), ", ")))
	}

	presenter.Info("")
	presenter.Info("Skills help you:")
	presenter.Info("  • Troubleshoot FHIR Engine configuration issues")
	presenter.Info("  • Generate FHIR handlers and custom resources")
	presenter.Info("  • Map custom data models to FHIR")
	presenter.Info("  • Debug errors and exceptions")
	presenter.Info("")
	presenter.Info("Commands:")
	presenter.Info("  fhir-skills install     Install skills to current project")
	presenter.Info("  fhir-skills update      Update an existing installation")
	presenter.Info("  fhir-skills list        List bundled skills")
	presenter.Info("  fhir-skills info        Show this information")
	presenter.Info("")
	presenter.Info("Documentation: https://github.com/ihis/fhir-engine-skills")
}
