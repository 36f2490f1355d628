package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/lrms/internal/app/migrations"
	"github.com/yigit/lrms/internal/bootstrap"
)

var listMigrations bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if listMigrations {
			files, err := migrations.Pending(migrations.Files())
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", migrations.Version(f), f)
			}
			return nil
		}

		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		database, err := bootstrap.SetupDatabase(cmd.Context(), cfg, lgr)
		if err != nil {
			return err
		}
		defer database.Close()

		return bootstrap.RunMigrations(cmd.Context(), database, lgr)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&listMigrations, "list", false, "print the embedded migration files and exit")
	rootCmd.AddCommand(migrateCmd)
}
