package main

import (
	"fmt"

	"sagra/cmd/bootstrap"

	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations and seed the phase catalog",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Opening the database migrates and seeds it
	app, err := bootstrap.Open(cfg, cmd.ErrOrStderr(), logger.Silent)
	if err != nil {
		return err
	}
	defer app.Close()

	phases, err := app.Usecases.Schedule.GetAllPhases(cmd.Context())
	if err != nil {
		return fmt.Errorf("list phases: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database is up to date (%s, %d phases)\n", cfg.DB.Driver, len(phases))
	return nil
}
