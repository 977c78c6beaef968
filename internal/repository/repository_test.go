package repository

import (
	"io"
	"testing"
	"time"

	"sagra/config"
	"sagra/internal/domain/entity"
	"sagra/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.Open(config.DBConfig{Driver: config.DriverSQLite, Path: database.MemoryPath}, log, logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func day(s string) time.Time {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func createPatient(t *testing.T, db *gorm.DB, name, surgery string) *entity.Patient {
	t.Helper()
	patient := &entity.Patient{
		Name:             name,
		SurgeryDate:      day(surgery),
		RegistrationDate: day(surgery),
	}
	require.NoError(t, NewPatientRepository().Upsert(db, patient))
	return patient
}
