package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"sagra/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCmd runs the root command against an isolated SQLite file and output directories.
func executeCmd(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(root, "sagra.db"))
	t.Setenv("PROTOCOLS_DIR", filepath.Join(root, "planilhas"))
	t.Setenv("EXPORT_DIR", filepath.Join(root, "exportacoes"))
	t.Setenv("BACKUP_DIR", filepath.Join(root, "backups"))
	t.Setenv("LOG_LEVEL", "error")

	// Cobra parses into package-level variables, reset them between runs
	envFile = ".env"
	schedulePatientID = 0
	scheduleJSONOutput = false
	exportFormat = usecase.ExportFormatXLSX

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(root, "missing.env")))

	err := rootCmd.Execute()

	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.SetArgs(nil)

	return out.String(), err
}

func TestMigrateCommand(t *testing.T) {
	root := t.TempDir()

	out, err := executeCmd(t, root, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite, 7 phases")
	assert.FileExists(t, filepath.Join(root, "sagra.db"))

	// Running again is a no-op
	_, err = executeCmd(t, root, "migrate")
	require.NoError(t, err)
}

func TestScheduleCommand(t *testing.T) {
	root := t.TempDir()

	out, err := executeCmd(t, root, "schedule", "2024-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Discharge:  2024-08-28")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[3], "PHASE"))
	assert.Contains(t, out, "2024-01-16")

	out, err = executeCmd(t, root, "schedule", "2024-01-01", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"discharge_forecast": "2024-08-28"`)
}

func TestScheduleCommand_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := executeCmd(t, root, "schedule")
	assert.Error(t, err)

	_, err = executeCmd(t, root, "schedule", "01/01/2024")
	assert.ErrorIs(t, err, usecase.ErrInvalidDateFormat)

	_, err = executeCmd(t, root, "schedule", "--patient", "42")
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)
}

func TestExportAndBackupCommands(t *testing.T) {
	root := t.TempDir()

	out, err := executeCmd(t, root, "export", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 0 patients and 0 progress records")
	assert.Contains(t, out, filepath.Join(root, "exportacoes", "pacientes_"))

	_, err = executeCmd(t, root, "export", "--format", "pdf")
	assert.ErrorIs(t, err, usecase.ErrUnsupportedFormat)

	out, err = executeCmd(t, root, "backup")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "backups", "backup_"))
}
