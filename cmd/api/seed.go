package main

import (
	"github.com/spf13/cobra"

	"github.com/yigit/lrms/internal/bootstrap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default faculty and program leader",
	Long: `seed creates the default faculty and the program leader account named in
the seed section of the configuration. Existing rows are left untouched,
so it is safe to run repeatedly. Migrations run first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		database, err := bootstrap.SetupDatabase(cmd.Context(), cfg, lgr)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := bootstrap.RunMigrations(cmd.Context(), database, lgr); err != nil {
			return err
		}
		return bootstrap.SeedDefaultData(cmd.Context(), cfg, database.Pool, lgr)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
