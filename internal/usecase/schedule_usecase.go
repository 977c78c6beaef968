package usecase

import (
	"context"
	"time"

	"sagra/internal/converter"
	"sagra/internal/delivery/dto"
	"sagra/internal/domain/entity"
	"sagra/internal/domain/repository"
	"sagra/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScheduleUsecase interface {
	GetAllPhases(ctx context.Context) ([]dto.PhaseResponse, error)
	PreviewSchedule(ctx context.Context, surgeryDate string) (*dto.SchedulePreviewResponse, error)
	GetPatientSchedule(ctx context.Context, patientID int) (*dto.PatientScheduleResponse, error)
}

type scheduleUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	phaseRepo   repository.PhaseRepository
	reconciler  *service.ProgressReconciler
	now         Clock
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	phaseRepo repository.PhaseRepository,
	reconciler *service.ProgressReconciler,
	now Clock,
) ScheduleUsecase {
	if now == nil {
		now = defaultClock
	}
	return &scheduleUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		phaseRepo:   phaseRepo,
		reconciler:  reconciler,
		now:         now,
	}
}

func (u *scheduleUsecase) GetAllPhases(ctx context.Context) ([]dto.PhaseResponse, error) {
	catalog, err := u.phaseRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find phase catalog: %+v", err)
		return nil, err
	}

	phases, err := service.ParsePhases(catalog)
	if err != nil {
		u.log.Warnf("Failed to parse phase catalog: %+v", err)
		return nil, err
	}

	return converter.PhasesToResponses(phases), nil
}

// PreviewSchedule places the catalog on the calendar for a surgery date without
// touching any patient data.
func (u *scheduleUsecase) PreviewSchedule(ctx context.Context, surgeryDate string) (*dto.SchedulePreviewResponse, error) {
	surgery, err := parseDate(surgeryDate)
	if err != nil {
		return nil, err
	}

	schedule, err := u.computeSchedule(ctx, surgery)
	if err != nil {
		return nil, err
	}

	return &dto.SchedulePreviewResponse{
		SurgeryDate:       surgery.Format(entity.DateLayout),
		DischargeForecast: service.DischargeForecast(surgery).Format(entity.DateLayout),
		Schedule:          converter.ScheduleToResponses(schedule),
	}, nil
}

// GetPatientSchedule builds the follow-up view of a patient and records the phase
// the patient is in today.
func (u *scheduleUsecase) GetPatientSchedule(ctx context.Context, patientID int) (*dto.PatientScheduleResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	schedule, err := u.computeSchedule(ctx, patient.SurgeryDate)
	if err != nil {
		return nil, err
	}

	today := entity.NormalizeDate(u.now())
	active, err := u.reconciler.Reconcile(db, patient.ID, schedule, today)
	if err != nil {
		return nil, err
	}

	days := entity.DaysBetween(patient.SurgeryDate, today)
	if days < 0 {
		days = 0
	}

	resp := &dto.PatientScheduleResponse{
		Patient:           *converter.PatientToResponse(patient),
		Today:             today.Format(entity.DateLayout),
		DaysSinceSurgery:  days,
		WeekNumber:        service.WeekNumber(days),
		OverallProgress:   service.OverallProgress(days),
		DischargeForecast: service.DischargeForecast(patient.SurgeryDate).Format(entity.DateLayout),
		Schedule:          converter.ScheduleToResponses(schedule),
	}
	if active != nil {
		entry := converter.ScheduleEntryToResponse(*active)
		resp.ActivePhase = &entry
		resp.PhaseSummary = converter.PhaseSummaryToResponse(service.SummarizePhase(*active))
	}

	return resp, nil
}

func (u *scheduleUsecase) computeSchedule(ctx context.Context, surgery time.Time) ([]entity.ScheduleEntry, error) {
	catalog, err := u.phaseRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find phase catalog: %+v", err)
		return nil, err
	}

	schedule, err := service.ComputeSchedule(surgery, catalog)
	if err != nil {
		u.log.Warnf("Failed to compute schedule: %+v", err)
		return nil, err
	}
	return schedule, nil
}
