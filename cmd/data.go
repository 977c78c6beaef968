package main

import (
	"fmt"

	"sagra/cmd/bootstrap"
	"sagra/internal/delivery/dto"
	"sagra/internal/usecase"

	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export patients and progress records",
	Long: `Writes every patient and progress record to EXPORT_DIR, either as one
workbook (xlsx) or as a pair of CSV files.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the database into a timestamped SQLite file",
	Args:  cobra.NoArgs,
	RunE:  runBackup,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", usecase.ExportFormatXLSX, "Export format (xlsx or csv)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app, err := bootstrap.Open(cfg, cmd.ErrOrStderr(), logger.Silent)
	if err != nil {
		return err
	}
	defer app.Close()

	resp, err := app.Usecases.Data.Export(cmd.Context(), &dto.ExportRequest{Format: exportFormat})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d patients and %d progress records\n", resp.Patients, resp.Progress)
	for _, f := range resp.Files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app, err := bootstrap.Open(cfg, cmd.ErrOrStderr(), logger.Silent)
	if err != nil {
		return err
	}
	defer app.Close()

	resp, err := app.Usecases.Data.Backup(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", resp.File)
	return nil
}
