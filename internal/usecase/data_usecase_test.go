package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"sagra/config"
	"sagra/internal/delivery/dto"
	"sagra/internal/domain/entity"
	"sagra/internal/infrastructure/database"
	"sagra/internal/infrastructure/spreadsheet"
	"sagra/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDataUsecase(t *testing.T) (DataUsecase, *gorm.DB, config.StorageConfig) {
	t.Helper()
	db, log := setupTestDB(t)
	clock := fixedClock("2024-03-01T10:20:30Z")
	audit := newAuditService(log)

	root := t.TempDir()
	storage := config.StorageConfig{
		ExportDir: filepath.Join(root, "exportacoes"),
		BackupDir: filepath.Join(root, "backups"),
	}

	patients := NewPatientUsecase(db, log, repository.NewPatientRepository(), audit, clock)
	progress := NewProgressUsecase(db, log, repository.NewPatientRepository(), repository.NewPhaseRepository(), repository.NewProgressRepository(), audit, clock)
	id := register(t, patients, "Joana", "2024-01-01")
	record(t, progress, id, 1, "2024-01-01", "2024-01-15", entity.ProgressCompleted)
	record(t, progress, id, 2, "2024-01-16", "", entity.ProgressInProgress)

	uc := NewDataUsecase(db, log, storage, repository.NewPatientRepository(), repository.NewProgressRepository(), audit, clock)
	return uc, db, storage
}

func TestExport_XLSX(t *testing.T) {
	uc, db, storage := newTestDataUsecase(t)

	resp, err := uc.Export(context.Background(), &dto.ExportRequest{Format: ExportFormatXLSX})
	require.NoError(t, err)

	want := filepath.Join(storage.ExportDir, "dados_20240301_102030.xlsx")
	assert.Equal(t, []string{want}, resp.Files)
	assert.Equal(t, 1, resp.Patients)
	assert.Equal(t, 2, resp.Progress)

	f, err := excelize.OpenFile(want)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{spreadsheet.SheetPatients, spreadsheet.SheetProgress}, f.GetSheetList())

	rows, err := f.GetRows(spreadsheet.SheetProgress)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	assert.EqualValues(t, 1, countAuditLogs(t, db, entity.AuditActionDataExport))
}

func TestExport_CSV(t *testing.T) {
	uc, _, storage := newTestDataUsecase(t)

	resp, err := uc.Export(context.Background(), &dto.ExportRequest{Format: ExportFormatCSV})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(storage.ExportDir, "pacientes_20240301_102030.csv"),
		filepath.Join(storage.ExportDir, "progresso_20240301_102030.csv"),
	}, resp.Files)
	for _, path := range resp.Files {
		assert.FileExists(t, path)
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	uc, _, _ := newTestDataUsecase(t)

	_, err := uc.Export(context.Background(), &dto.ExportRequest{Format: "pdf"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestBackup(t *testing.T) {
	uc, db, storage := newTestDataUsecase(t)

	resp, err := uc.Backup(context.Background())
	require.NoError(t, err)

	want := filepath.Join(storage.BackupDir, "backup_20240301_102030.db")
	assert.Equal(t, want, resp.File)
	assert.FileExists(t, want)

	backup, err := database.NewSQLiteConnection(want, quietLog(), logger.Silent)
	require.NoError(t, err)
	defer database.Close(backup)

	var patients, progress, phases int64
	require.NoError(t, backup.Model(&entity.Patient{}).Count(&patients).Error)
	require.NoError(t, backup.Model(&entity.Progress{}).Count(&progress).Error)
	require.NoError(t, backup.Model(&entity.PhaseCatalog{}).Count(&phases).Error)
	assert.EqualValues(t, 1, patients)
	assert.EqualValues(t, 2, progress)
	assert.EqualValues(t, 7, phases)

	assert.EqualValues(t, 1, countAuditLogs(t, db, entity.AuditActionDataBackup))
}

func TestBackup_SameSecondKeepsEarlierSnapshot(t *testing.T) {
	uc, db, storage := newTestDataUsecase(t)

	first, err := uc.Backup(context.Background())
	require.NoError(t, err)

	require.NoError(t, db.Where("fase = ?", 2).Delete(&entity.Progress{}).Error)

	second, err := uc.Backup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(storage.BackupDir, "backup_20240301_102030.db"), first.File)
	assert.Equal(t, filepath.Join(storage.BackupDir, "backup_20240301_102030_2.db"), second.File)

	counts := func(path string) int64 {
		backup, err := database.NewSQLiteConnection(path, quietLog(), logger.Silent)
		require.NoError(t, err)
		defer database.Close(backup)

		var n int64
		require.NoError(t, backup.Model(&entity.Progress{}).Count(&n).Error)
		return n
	}
	assert.EqualValues(t, 2, counts(first.File))
	assert.EqualValues(t, 1, counts(second.File))
	assert.EqualValues(t, 2, countAuditLogs(t, db, entity.AuditActionDataBackup))
}
