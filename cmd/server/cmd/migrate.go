package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventreg/internal/config"
	"eventreg/internal/infrastructure/database"
	"eventreg/internal/infrastructure/sqlite"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		var version uint
		switch cfg.Database.Driver {
		case config.DriverSQLite:
			version, err = sqlite.RunMigrations(cfg.Database.URL)
		default:
			version, err = database.RunMigrations(cfg.Database.URL)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "database at version %d\n", version)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateSteps <= 0 {
			return fmt.Errorf("--steps must be positive")
		}
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		switch cfg.Database.Driver {
		case config.DriverSQLite:
			err = sqlite.RollbackMigrations(cfg.Database.URL, migrateSteps)
		default:
			err = database.RollbackMigrations(cfg.Database.URL, migrateSteps)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", migrateSteps)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
