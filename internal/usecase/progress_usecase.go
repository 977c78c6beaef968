package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"sagra/internal/converter"
	"sagra/internal/delivery/dto"
	"sagra/internal/delivery/http/middleware"
	"sagra/internal/domain/entity"
	"sagra/internal/domain/repository"
	"sagra/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrProgressNotFound = errors.New("progress record not found")
	ErrPhaseNotFound    = errors.New("phase not found")
	ErrInvalidStatus    = errors.New("invalid progress status")
	ErrEndBeforeStart   = errors.New("end date cannot be before start date")
)

type ProgressUsecase interface {
	RecordProgress(ctx context.Context, patientID int, req *dto.RecordProgressRequest) (*dto.ProgressResponse, error)
	UpdateProgress(ctx context.Context, progressID int, req *dto.UpdateProgressRequest) (*dto.ProgressResponse, error)
	GetPatientProgress(ctx context.Context, patientID int) (*dto.ProgressListResponse, error)
}

type progressUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	phaseRepo    repository.PhaseRepository
	progressRepo repository.ProgressRepository
	auditService service.AuditService
	now          Clock
}

func NewProgressUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	phaseRepo repository.PhaseRepository,
	progressRepo repository.ProgressRepository,
	auditService service.AuditService,
	now Clock,
) ProgressUsecase {
	if now == nil {
		now = defaultClock
	}
	return &progressUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		phaseRepo:    phaseRepo,
		progressRepo: progressRepo,
		auditService: auditService,
		now:          now,
	}
}

// RecordProgress stores a manual progress entry. An entry with the same patient,
// phase and start date is overwritten.
func (u *progressUsecase) RecordProgress(ctx context.Context, patientID int, req *dto.RecordProgressRequest) (*dto.ProgressResponse, error) {
	status := entity.ProgressStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	progress := &entity.Progress{
		PatientID:    patientID,
		PhaseID:      req.PhaseID,
		StartDate:    startDate,
		Status:       status,
		Observations: strings.TrimSpace(req.Observations),
	}
	if err := u.applyEndDate(progress, req.EndDate); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	phase, err := u.phaseRepo.FindByID(tx, req.PhaseID)
	if err != nil {
		u.log.Warnf("Failed to find phase: %+v", err)
		return nil, err
	}
	if phase == nil {
		return nil, ErrPhaseNotFound
	}

	if err := u.progressRepo.Upsert(tx, progress); err != nil {
		u.log.Warnf("Failed to upsert progress: %+v", err)
		return nil, err
	}

	stored, err := u.progressRepo.FindByNaturalKey(tx, patientID, req.PhaseID, startDate)
	if err != nil {
		u.log.Warnf("Failed to reload progress: %+v", err)
		return nil, err
	}
	if stored == nil {
		return nil, ErrProgressNotFound
	}

	resp := converter.ProgressEntityToResponse(stored)
	resp.PatientName = patient.Name

	actor := middleware.ActorFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionProgressUpsert, "progress", strconv.Itoa(stored.ID), resp); err != nil {
		u.log.Warnf("Failed to write audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return resp, nil
}

// UpdateProgress changes status, end date and observations of a record. Marking a
// record concluded without an end date closes it today.
func (u *progressUsecase) UpdateProgress(ctx context.Context, progressID int, req *dto.UpdateProgressRequest) (*dto.ProgressResponse, error) {
	status := entity.ProgressStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	progress, err := u.progressRepo.FindByID(tx, progressID)
	if err != nil {
		u.log.Warnf("Failed to find progress: %+v", err)
		return nil, err
	}
	if progress == nil {
		return nil, ErrProgressNotFound
	}

	oldValue := converter.ProgressEntityToResponse(progress)

	progress.Status = status
	if req.Observations != nil {
		progress.Observations = strings.TrimSpace(*req.Observations)
	}
	if err := u.applyEndDate(progress, req.EndDate); err != nil {
		return nil, err
	}

	if err := u.progressRepo.Update(tx, progress); err != nil {
		u.log.Warnf("Failed to update progress: %+v", err)
		return nil, err
	}

	newValue := converter.ProgressEntityToResponse(progress)

	actor := middleware.ActorFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionProgressUpdate, "progress", strconv.Itoa(progress.ID), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to write audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *progressUsecase) GetPatientProgress(ctx context.Context, patientID int) (*dto.ProgressListResponse, error) {
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

	return &dto.ProgressListResponse{
		Progress: converter.ProgressListToResponses(rows),
		Total:    len(rows),
	}, nil
}

// applyEndDate sets the end date from the request, defaulting a concluded record to today.
func (u *progressUsecase) applyEndDate(progress *entity.Progress, endDate string) error {
	if endDate != "" {
		end, err := parseDate(endDate)
		if err != nil {
			return err
		}
		progress.EndDate = &end
	} else if progress.IsCompleted() && progress.EndDate == nil {
		progress.Complete(u.now())
	}

	if progress.EndDate != nil && progress.EndDate.Before(entity.NormalizeDate(progress.StartDate)) {
		return ErrEndBeforeStart
	}
	return nil
}
