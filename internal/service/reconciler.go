package service

import (
	"fmt"
	"time"

	"sagra/internal/domain/entity"
	"sagra/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProgressReconciler keeps the progress table in step with a patient's schedule.
type ProgressReconciler struct {
	log          *logrus.Logger
	progressRepo repository.ProgressRepository
}

func NewProgressReconciler(log *logrus.Logger, progressRepo repository.ProgressRepository) *ProgressReconciler {
	return &ProgressReconciler{
		log:          log,
		progressRepo: progressRepo,
	}
}

// Reconcile upserts an "Em andamento" record for the first schedule entry whose
// window contains today, refreshing its end date. It returns nil and writes
// nothing when today falls outside every window.
func (r *ProgressReconciler) Reconcile(db *gorm.DB, patientID int, schedule []entity.ScheduleEntry, today time.Time) (*entity.ScheduleEntry, error) {
	active, ok := ActivePhase(schedule, today)
	if !ok {
		return nil, nil
	}

	end := entity.NormalizeDate(active.EndDate)
	progress := &entity.Progress{
		PatientID: patientID,
		PhaseID:   active.PhaseID,
		StartDate: entity.NormalizeDate(active.StartDate),
		EndDate:   &end,
		Status:    entity.ProgressInProgress,
	}
	if err := r.progressRepo.Upsert(db, progress); err != nil {
		r.log.Warnf("Failed to upsert progress for patient %d phase %d: %+v", patientID, active.PhaseID, err)
		return nil, fmt.Errorf("reconcile progress: %w", err)
	}

	return &active, nil
}
