package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/lrms/internal/pkg/logger"
)

var configPath string

// rootCmd runs the API server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "lrms",
	Short: "Lecture reporting and monitoring API",
	Long: `lrms serves the lecture reporting and monitoring API.

Lecturers file a report per delivered lecture, principal lecturers review
them, program leaders manage the catalogue and watch the dashboards, and
students follow the modules they are enrolled in.

Without a subcommand it behaves like 'lrms serve'.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml",
		"path to the YAML configuration file")
}
