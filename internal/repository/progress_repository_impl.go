package repository

import (
	"errors"
	"time"

	"sagra/internal/domain/entity"
	domainRepo "sagra/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const progressWithPhaseColumns = "p.id, p.paciente_id AS patient_id, pa.nome AS patient_name, " +
	"p.fase AS phase_id, f.fase AS phase_label, p.data_inicio AS start_date, " +
	"p.data_fim AS end_date, p.status, p.observacoes AS observations"

type progressRepository struct{}

func NewProgressRepository() domainRepo.ProgressRepository {
	return &progressRepository{}
}

// Upsert keeps stored observations unless the incoming record carries some.
func (r *progressRepository) Upsert(db *gorm.DB, progress *entity.Progress) error {
	updates := []string{"status", "data_fim"}
	if progress.Observations != "" {
		updates = append(updates, "observacoes")
	}

	return db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "paciente_id"}, {Name: "fase"}, {Name: "data_inicio"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(progress).Error
}

func (r *progressRepository) FindByID(db *gorm.DB, id int) (*entity.Progress, error) {
	var progress entity.Progress
	err := db.Preload("Phase").Where("id = ?", id).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) FindByNaturalKey(db *gorm.DB, patientID, phaseID int, startDate time.Time) (*entity.Progress, error) {
	var progress entity.Progress
	err := db.Preload("Phase").
		Where("paciente_id = ? AND fase = ? AND data_inicio = ?", patientID, phaseID, entity.NormalizeDate(startDate)).
		First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) Update(db *gorm.DB, progress *entity.Progress) error {
	return db.Model(progress).
		Omit(clause.Associations).
		Select("status", "data_fim", "observacoes").
		Updates(progress).Error
}

func (r *progressRepository) withPhase(db *gorm.DB) *gorm.DB {
	return db.Table("progresso AS p").
		Select(progressWithPhaseColumns).
		Joins("JOIN pacientes pa ON pa.id = p.paciente_id").
		Joins("JOIN fases_reabilitacao f ON f.id = p.fase")
}

func (r *progressRepository) FindByPatientWithPhase(db *gorm.DB, patientID int) ([]entity.ProgressWithPhase, error) {
	var rows []entity.ProgressWithPhase
	err := r.withPhase(db).
		Where("p.paciente_id = ?", patientID).
		Order("p.data_inicio ASC").Order("p.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepository) FindAllWithPhase(db *gorm.DB) ([]entity.ProgressWithPhase, error) {
	var rows []entity.ProgressWithPhase
	err := r.withPhase(db).
		Order("pa.nome ASC").Order("p.data_inicio ASC").Order("p.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepository) FindRecentWithPhase(db *gorm.DB, limit int) ([]entity.ProgressWithPhase, error) {
	var rows []entity.ProgressWithPhase
	err := r.withPhase(db).
		Order("p.data_inicio DESC").Order("p.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepository) CountByStatus(db *gorm.DB, status entity.ProgressStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Progress{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *progressRepository) CountPerPhase(db *gorm.DB) ([]entity.PhaseStatusCount, error) {
	var counts []entity.PhaseStatusCount
	err := db.Table("progresso AS p").
		Select("f.id AS phase_id, f.fase AS phase, COUNT(p.id) AS total, "+
			"SUM(CASE WHEN p.status = ? THEN 1 ELSE 0 END) AS completed", entity.ProgressCompleted).
		Joins("JOIN fases_reabilitacao f ON f.id = p.fase").
		Group("f.id, f.fase").
		Order("f.id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
