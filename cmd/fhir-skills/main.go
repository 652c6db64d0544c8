package main

import (
	"fmt"
	"os"

	"github.com/ihis/fhir-engine-skills/pkg/logger"
	"github.com/ihis/fhir-engine-skills/pkg/presenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Process exit codes, one per failure class.
const (
	exitConflict       = 1
	exitBundleNotFound = 2
	exitPartialCopy    = 3
	exitUsage          = 4
)

func init() {
	// Environment variables (FHIR_SKILLS_LOG_LEVEL etc.)
	viper.SetEnvPrefix("FHIR_SKILLS")
	viper.AutomaticEnv()
}

var rootCmd = &cobra.Command{
	Use:   "fhir-skills",
	Short: "Distribute FHIR Engine skills for Claude Code",
	Long: `fhir-skills ships a bundle of Claude Code skills for FHIR Engine
development and installs them into a project's .claude/skills directory.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			presenter.Warning(fmt.Sprintf("Invalid log level %q, using default", viper.GetString("log_level")))
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		presenter.SetQuiet(viper.GetBool("quiet"))
	},
	// Running without a subcommand prints the package information
	Run: func(_ *cobra.Command, _ []string) {
		runInfo()
	},
}

func main() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "fmt", "Log format (fmt, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}
