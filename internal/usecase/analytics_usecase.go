package usecase

import (
	"context"

	"sagra/internal/converter"
	"sagra/internal/delivery/dto"
	"sagra/internal/domain/entity"
	"sagra/internal/domain/repository"
	"sagra/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecentProgressLimit is how many records the dashboard lists.
const RecentProgressLimit = 5

type AnalyticsUsecase interface {
	GetPhaseDurations(ctx context.Context) ([]dto.PhaseDurationResponse, error)
	GetSuccessRates(ctx context.Context) ([]dto.SuccessRateResponse, error)
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GetPatientReport(ctx context.Context, patientID int) (*dto.PatientReportResponse, error)
}

type analyticsUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	progressRepo repository.ProgressRepository
}

func NewAnalyticsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	progressRepo repository.ProgressRepository,
) AnalyticsUsecase {
	return &analyticsUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		progressRepo: progressRepo,
	}
}

func (u *analyticsUsecase) GetPhaseDurations(ctx context.Context) ([]dto.PhaseDurationResponse, error) {
	rows, err := u.progressRepo.FindAllWithPhase(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find progress records: %+v", err)
		return nil, err
	}

	return converter.PhaseDurationsToResponses(service.MeanPhaseDurations(rows)), nil
}

func (u *analyticsUsecase) GetSuccessRates(ctx context.Context) ([]dto.SuccessRateResponse, error) {
	counts, err := u.progressRepo.CountPerPhase(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to count progress per phase: %+v", err)
		return nil, err
	}

	return converter.SuccessRatesToResponses(service.SuccessRates(counts)), nil
}

func (u *analyticsUsecase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	db := u.db.WithContext(ctx)
	summary := &entity.DashboardSummary{}

	var err error
	if summary.TotalPatients, err = u.patientRepo.Count(db); err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}
	if summary.ActiveRecords, err = u.progressRepo.CountByStatus(db, entity.ProgressInProgress); err != nil {
		u.log.Warnf("Failed to count active records: %+v", err)
		return nil, err
	}
	if summary.CompletedRecords, err = u.progressRepo.CountByStatus(db, entity.ProgressCompleted); err != nil {
		u.log.Warnf("Failed to count completed records: %+v", err)
		return nil, err
	}
	if summary.RecordsPerPhase, err = u.progressRepo.CountPerPhase(db); err != nil {
		u.log.Warnf("Failed to count progress per phase: %+v", err)
		return nil, err
	}
	if summary.RecentProgress, err = u.progressRepo.FindRecentWithPhase(db, RecentProgressLimit); err != nil {
		u.log.Warnf("Failed to find recent progress: %+v", err)
		return nil, err
	}

	return converter.DashboardToResponse(summary), nil
}

// GetPatientReport returns the patient with the full progress history ordered by start date.
func (u *analyticsUsecase) GetPatientReport(ctx context.Context, patientID int) (*dto.PatientReportResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	rows, err := u.progressRepo.FindByPatientWithPhase(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient progress: %+v", err)
		return nil, err
	}

	return &dto.PatientReportResponse{
		Patient:  *converter.PatientToResponse(patient),
		Progress: converter.ProgressListToResponses(rows),
		Total:    len(rows),
	}, nil
}
