package repository

import (
	"time"

	"sagra/internal/domain/entity"

	"gorm.io/gorm"
)

type ProgressRepository interface {
	// Upsert inserts a record or overwrites status, end date and observations of the
	// record with the same (patient, phase, start date).
	Upsert(db *gorm.DB, progress *entity.Progress) error
	FindByID(db *gorm.DB, id int) (*entity.Progress, error)
	FindByNaturalKey(db *gorm.DB, patientID, phaseID int, startDate time.Time) (*entity.Progress, error)
	Update(db *gorm.DB, progress *entity.Progress) error
	FindByPatientWithPhase(db *gorm.DB, patientID int) ([]entity.ProgressWithPhase, error)
	FindAllWithPhase(db *gorm.DB) ([]entity.ProgressWithPhase, error)
	FindRecentWithPhase(db *gorm.DB, limit int) ([]entity.ProgressWithPhase, error)
	CountByStatus(db *gorm.DB, status entity.ProgressStatus) (int64, error)
	CountPerPhase(db *gorm.DB) ([]entity.PhaseStatusCount, error)
}
