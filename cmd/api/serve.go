package main

import (
	"github.com/spf13/cobra"

	"github.com/yigit/lrms/internal/pkg/logger"
	"github.com/yigit/lrms/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate, seed and start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	srv, err := server.NewServer(cmd.Context(), configPath)
	if err != nil {
		return err
	}

	if err := srv.Run(); err != nil {
		return err
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
