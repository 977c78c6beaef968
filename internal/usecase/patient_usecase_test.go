package usecase

import (
	"context"
	"testing"

	"sagra/internal/delivery/dto"
	"sagra/internal/delivery/http/middleware"
	"sagra/internal/domain/entity"
	"sagra/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPatientUsecase(t *testing.T) (PatientUsecase, func() int64) {
	t.Helper()
	db, log := setupTestDB(t)
	patientRepo := repository.NewPatientRepository()
	uc := NewPatientUsecase(db, log, patientRepo, newAuditService(log), fixedClock("2024-03-01T10:00:00Z"))
	count := func() int64 {
		n, err := patientRepo.Count(db)
		require.NoError(t, err)
		return n
	}
	return uc, count
}

func TestRegisterPatient_CreatesPatient(t *testing.T) {
	uc, count := newTestPatientUsecase(t)

	resp, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Name:        "  Joana Silva ",
		SurgeryDate: "2024-01-15",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Joana Silva", resp.Name)
	assert.Equal(t, "2024-01-15", resp.SurgeryDate)
	assert.Equal(t, "2024-03-01", resp.RegistrationDate)
	assert.EqualValues(t, 1, count())
}

func TestRegisterPatient_SameNameUpdatesSurgeryDate(t *testing.T) {
	uc, count := newTestPatientUsecase(t)
	ctx := middleware.WithSession(context.Background(), entity.Session{Username: "admin", Role: entity.RoleAdmin})

	first, err := uc.RegisterPatient(ctx, &dto.RegisterPatientRequest{Name: "Pedro", SurgeryDate: "2024-01-10"})
	require.NoError(t, err)
	second, err := uc.RegisterPatient(ctx, &dto.RegisterPatientRequest{Name: "Pedro", SurgeryDate: "2024-02-01"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "2024-02-01", second.SurgeryDate)
	assert.EqualValues(t, 1, count())

	stored, err := uc.GetPatient(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", stored.SurgeryDate)
}

func TestRegisterPatient_WritesAuditLog(t *testing.T) {
	db, log := setupTestDB(t)
	uc := NewPatientUsecase(db, log, repository.NewPatientRepository(), newAuditService(log), fixedClock("2024-03-01T10:00:00Z"))
	ctx := middleware.WithSession(context.Background(), entity.Session{Username: "user", Role: entity.RoleStaff})

	_, err := uc.RegisterPatient(ctx, &dto.RegisterPatientRequest{Name: "Ana", SurgeryDate: "2024-01-10"})
	require.NoError(t, err)
	_, err = uc.RegisterPatient(ctx, &dto.RegisterPatientRequest{Name: "Ana", SurgeryDate: "2024-01-11"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, countAuditLogs(t, db, entity.AuditActionPatientRegister))

	var logs []entity.AuditLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	assert.Equal(t, "user", logs[0].Username)
	assert.Nil(t, logs[0].Metadata["old_value"])
	assert.NotNil(t, logs[1].Metadata["old_value"])
}

func TestRegisterPatient_RejectsInvalidDates(t *testing.T) {
	uc, count := newTestPatientUsecase(t)

	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{"future surgery", "2024-03-02", ErrSurgeryDateInFuture},
		{"wrong layout", "15/01/2024", ErrInvalidDateFormat},
		{"not a date", "2024-02-30", ErrInvalidDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{Name: "X", SurgeryDate: tt.date})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Zero(t, count())
}

func TestRegisterPatient_TodayIsAllowed(t *testing.T) {
	uc, _ := newTestPatientUsecase(t)

	resp, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{Name: "Hoje", SurgeryDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", resp.SurgeryDate)
}

func TestGetAllPatients(t *testing.T) {
	uc, _ := newTestPatientUsecase(t)
	for _, name := range []string{"Bruno", "Ana"} {
		_, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{Name: name, SurgeryDate: "2024-01-01"})
		require.NoError(t, err)
	}

	resp, err := uc.GetAllPatients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Patients, 2)
}

func TestGetPatient_NotFound(t *testing.T) {
	uc, _ := newTestPatientUsecase(t)

	_, err := uc.GetPatient(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
