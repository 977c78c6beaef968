package main

import (
	"os"

	"sagra/config"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "sagra",
	Short: "SAGRA - ACL rehabilitation tracker",
	Long: `SAGRA follows athletes after ACL reconstruction: it derives the phase schedule
from the surgery date, keeps per-phase progress records and serves the
analytics, protocol curves and data export used by the clinical staff.

Run without arguments to start the HTTP API.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"Optional env file read before the process environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfigFrom(envFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
