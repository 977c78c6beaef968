package database

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sagra/config"
	"sagra/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestOpen_MemorySeedsCatalog(t *testing.T) {
	// Given: An in-memory database configuration
	cfg := config.DBConfig{Driver: config.DriverSQLite, Path: MemoryPath}

	// When: The database is opened
	db, err := Open(cfg, quietLogger(), logger.Silent)
	require.NoError(t, err)
	defer Close(db)

	// Then: The phase catalog is seeded in order and ends with discharge
	var phases []entity.PhaseCatalog
	require.NoError(t, db.Order("id").Find(&phases).Error)
	require.Len(t, phases, 7)
	assert.Equal(t, "Fase 1", phases[0].Label)
	assert.Equal(t, "0 a 14 dias", phases[0].ApproximatePeriod)
	assert.Equal(t, entity.DischargeLabel, phases[6].Label)
}

func TestSeedPhases_SkipsWhenPopulated(t *testing.T) {
	db, err := Open(config.DBConfig{Driver: config.DriverSQLite, Path: MemoryPath}, quietLogger(), logger.Silent)
	require.NoError(t, err)
	defer Close(db)

	inserted, err := SeedPhases(db, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestMigrate_Idempotent(t *testing.T) {
	// Given: A database that has already been migrated
	path := filepath.Join(t.TempDir(), "sagra.db")
	db, err := NewSQLiteConnection(path, quietLogger(), logger.Silent)
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db, config.DriverSQLite))

	// When: Migrate is called again
	err = Migrate(db, config.DriverSQLite)

	// Then: No error occurs
	assert.NoError(t, err)
}

func TestMigrate_UnknownDriver(t *testing.T) {
	db, err := NewSQLiteConnection(MemoryPath, quietLogger(), logger.Silent)
	require.NoError(t, err)
	defer Close(db)

	assert.Error(t, Migrate(db, "oracle"))
}

func TestNewSQLiteConnection_RecreatesCorruptFile(t *testing.T) {
	// Given: A file that is not a SQLite database
	path := filepath.Join(t.TempDir(), "sagra.db")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not a database "), 512), 0o644))

	// When: The database is opened
	db, err := Open(config.DBConfig{Driver: config.DriverSQLite, Path: path}, quietLogger(), logger.Silent)

	// Then: It is recreated with the schema and catalog
	require.NoError(t, err)
	defer Close(db)

	var count int64
	require.NoError(t, db.Model(&entity.PhaseCatalog{}).Count(&count).Error)
	assert.Equal(t, int64(7), count)
}

func TestDefaultPhaseCatalog_IsParseable(t *testing.T) {
	phases, err := DefaultPhaseCatalog()
	require.NoError(t, err)

	for i, phase := range phases {
		assert.Equal(t, i+1, phase.ID)
		assert.NotEmpty(t, phase.ApproximatePeriod, phase.Label)
		assert.NotEmpty(t, phase.RugbyTechniques, phase.Label)
	}
}

func TestBackupToSQLite(t *testing.T) {
	// Given: A database with one patient and one progress record
	src, err := Open(config.DBConfig{Driver: config.DriverSQLite, Path: MemoryPath}, quietLogger(), logger.Silent)
	require.NoError(t, err)
	defer Close(src)

	patient := entity.Patient{
		Name:             "João Silva",
		SurgeryDate:      entity.NormalizeDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		RegistrationDate: entity.NormalizeDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
	}
	require.NoError(t, src.Create(&patient).Error)
	require.NoError(t, src.Omit("Patient", "Phase").Create(&entity.Progress{
		PatientID: patient.ID,
		PhaseID:   1,
		StartDate: patient.SurgeryDate,
		Status:    entity.ProgressInProgress,
	}).Error)

	// When: A backup is written
	dest := filepath.Join(t.TempDir(), "backup.db")
	require.NoError(t, BackupToSQLite(context.Background(), src, dest, quietLogger()))

	// Then: The backup file holds the same rows
	backup, err := NewSQLiteConnection(dest, quietLogger(), logger.Silent)
	require.NoError(t, err)
	defer Close(backup)

	var patients []entity.Patient
	require.NoError(t, backup.Find(&patients).Error)
	require.Len(t, patients, 1)
	assert.Equal(t, "João Silva", patients[0].Name)

	var progressCount, phaseCount int64
	require.NoError(t, backup.Model(&entity.Progress{}).Count(&progressCount).Error)
	require.NoError(t, backup.Model(&entity.PhaseCatalog{}).Count(&phaseCount).Error)
	assert.Equal(t, int64(1), progressCount)
	assert.Equal(t, int64(7), phaseCount)
}

func TestBackupToSQLite_ExistingFileUntouched(t *testing.T) {
	src, err := Open(config.DBConfig{Driver: config.DriverSQLite, Path: MemoryPath}, quietLogger(), logger.Silent)
	require.NoError(t, err)
	defer Close(src)

	dest := filepath.Join(t.TempDir(), "backup.db")
	require.NoError(t, os.WriteFile(dest, []byte("earlier snapshot"), 0o644))

	err = BackupToSQLite(context.Background(), src, dest, quietLogger())
	assert.ErrorIs(t, err, ErrBackupExists)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "earlier snapshot", string(content))
}
