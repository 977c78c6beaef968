package usecase

import (
	"context"
	"testing"

	"sagra/internal/delivery/dto"
	"sagra/internal/domain/entity"
	"sagra/internal/repository"
	"sagra/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestScheduleUsecase(t *testing.T, now string) (ScheduleUsecase, *gorm.DB, PatientUsecase) {
	t.Helper()
	db, log := setupTestDB(t)
	progressRepo := repository.NewProgressRepository()
	clock := fixedClock(now)
	uc := NewScheduleUsecase(
		db,
		log,
		repository.NewPatientRepository(),
		repository.NewPhaseRepository(),
		service.NewProgressReconciler(log, progressRepo),
		clock,
	)
	patients := NewPatientUsecase(db, log, repository.NewPatientRepository(), newAuditService(log), clock)
	return uc, db, patients
}

func TestGetAllPhases(t *testing.T) {
	uc, _, _ := newTestScheduleUsecase(t, "2024-03-01T10:00:00Z")

	phases, err := uc.GetAllPhases(context.Background())
	require.NoError(t, err)
	require.Len(t, phases, 7)
	assert.Equal(t, "Fase 1", phases[0].Label)
	assert.Equal(t, 14, phases[0].Days)
	assert.Equal(t, entity.DischargeLabel, phases[6].Label)
	assert.Equal(t, 240, phases[6].Days)
}

func TestPreviewSchedule(t *testing.T) {
	uc, db, _ := newTestScheduleUsecase(t, "2024-03-01T10:00:00Z")

	resp, err := uc.PreviewSchedule(context.Background(), "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", resp.SurgeryDate)
	assert.Equal(t, "2024-08-28", resp.DischargeForecast)
	require.Len(t, resp.Schedule, 7)

	first := resp.Schedule[0]
	assert.Equal(t, "2024-01-01", first.StartDate)
	assert.Equal(t, "2024-01-15", first.EndDate)

	second := resp.Schedule[1]
	assert.Equal(t, "2024-01-16", second.StartDate)
	assert.Equal(t, "2024-02-14", second.EndDate)
	assert.Equal(t, "30", second.Duration)

	discharge := resp.Schedule[6]
	assert.Equal(t, "2024-08-28", discharge.StartDate)
	assert.Equal(t, "2024-09-27", discharge.EndDate)
	assert.Equal(t, entity.ContinuousDuration, discharge.Duration)
	assert.True(t, discharge.Continuous)

	var n int64
	require.NoError(t, db.Model(&entity.Progress{}).Count(&n).Error)
	assert.Zero(t, n, "preview must not write progress")
}

func TestPreviewSchedule_InvalidDate(t *testing.T) {
	uc, _, _ := newTestScheduleUsecase(t, "2024-03-01T10:00:00Z")

	_, err := uc.PreviewSchedule(context.Background(), "01/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestPreviewSchedule_MalformedCatalog(t *testing.T) {
	uc, db, _ := newTestScheduleUsecase(t, "2024-03-01T10:00:00Z")
	require.NoError(t, db.Model(&entity.PhaseCatalog{}).Where("id = ?", 2).Update("periodo_aproximado", "duas semanas").Error)

	_, err := uc.PreviewSchedule(context.Background(), "2024-01-01")
	var malformed *service.MalformedPeriodError
	assert.ErrorAs(t, err, &malformed)
}

func TestGetPatientSchedule(t *testing.T) {
	uc, db, patients := newTestScheduleUsecase(t, "2024-03-01T10:00:00Z")
	patient, err := patients.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{Name: "Joana", SurgeryDate: "2024-01-01"})
	require.NoError(t, err)

	resp, err := uc.GetPatientSchedule(context.Background(), patient.ID)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", resp.Today)
	assert.Equal(t, 60, resp.DaysSinceSurgery)
	assert.Equal(t, 8, resp.WeekNumber)
	assert.InDelta(t, 25.0, resp.OverallProgress, 0.0001)
	assert.Equal(t, "2024-08-28", resp.DischargeForecast)
	require.NotNil(t, resp.ActivePhase)
	assert.Equal(t, "Fase 3", resp.ActivePhase.Phase)

	require.NotNil(t, resp.PhaseSummary)
	assert.Equal(t, 1, resp.PhaseSummary.ExerciseCounts[entity.ExerciseComplete])
	assert.Equal(t, 2, resp.PhaseSummary.ExerciseCounts[entity.ExerciseProgressing])
	assert.Equal(t, 1, resp.PhaseSummary.ExerciseCounts[entity.ExerciseRestricted])
	assert.Equal(t, 3, resp.PhaseSummary.ClearanceCounts["forbidden"])
	assert.Equal(t, 2, resp.PhaseSummary.ClearanceCounts["moderate"])
	assert.Equal(t, 1, resp.PhaseSummary.ClearanceCounts["cleared"])

	var stored []entity.Progress
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, 3, stored[0].PhaseID)
	assert.Equal(t, entity.ProgressInProgress, stored[0].Status)
	assert.Equal(t, "2024-02-15", stored[0].StartDate.Format(entity.DateLayout))
}

func TestGetPatientSchedule_RepeatedViewsKeepOneRecord(t *testing.T) {
	uc, db, patients := newTestScheduleUsecase(t, "2024-03-01T10:00:00Z")
	patient, err := patients.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{Name: "Joana", SurgeryDate: "2024-01-01"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := uc.GetPatientSchedule(context.Background(), patient.ID)
		require.NoError(t, err)
	}

	var n int64
	require.NoError(t, db.Model(&entity.Progress{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestGetPatientSchedule_AfterDischargeWindow(t *testing.T) {
	uc, db, patients := newTestScheduleUsecase(t, "2025-11-01T10:00:00Z")
	patient, err := patients.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{Name: "Veterano", SurgeryDate: "2024-01-01"})
	require.NoError(t, err)

	resp, err := uc.GetPatientSchedule(context.Background(), patient.ID)
	require.NoError(t, err)

	assert.Nil(t, resp.ActivePhase)
	assert.Nil(t, resp.PhaseSummary)
	assert.InDelta(t, 100.0, resp.OverallProgress, 0.0001)

	var n int64
	require.NoError(t, db.Model(&entity.Progress{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGetPatientSchedule_NotFound(t *testing.T) {
	uc, _, _ := newTestScheduleUsecase(t, "2024-03-01T10:00:00Z")

	_, err := uc.GetPatientSchedule(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
