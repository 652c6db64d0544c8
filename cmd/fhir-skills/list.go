package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ihis/fhir-engine-skills/pkg/bundle"
	"github.com/ihis/fhir-engine-skills/pkg/presenter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled skills by category",
	Long:  `List every skill shipped in the bundle, grouped by category.`,
	Run: func(_ *cobra.Command, _ []string) {
		if code := runList(); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList() int {
	_, catalog, code := loadCatalog()
	if code != 0 {
		return code
	}

	presenter.Section("FHIR Engine Claude Skills")

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, category := range catalog.Categories {
		writeCategory(tw, category, 0)
	}
	if len(catalog.Ungrouped) > 0 {
		fmt.Fprintln(tw, "(uncategorized):")
		writeSkills(tw, catalog.Ungrouped, 1)
	}
	tw.Flush()

	presenter.Info("")
	presenter.Info(fmt.Sprintf("%d skills in %d categories", catalog.SkillCount(), len(catalog.Categories)))
	presenter.Info("")
	presenter.Info("To install: fhir-skills install")
	return 0
}

func writeCategory(tw *tabwriter.Writer, category bundle.Category, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(tw, "%s%s:\n", indent, category.Name)
	writeSkills(tw, category.Skills, depth+1)
	for _, child := range category.Children {
		writeCategory(tw, child, depth+1)
	}
}

func writeSkills(tw *tabwriter.Writer, skills []bundle.SkillEntry, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, skill := range skills {
		description := skill.Description
		if len(description) > 60 {
			description = description[:57] + "..."
		}
		fmt.Fprintf(tw, "%s• %s\t%s\n", indent, skill.Name, description)
	}
}
