package repository

import (
	"errors"

	"sagra/internal/domain/entity"
	domainRepo "sagra/internal/domain/repository"

	"gorm.io/gorm"
)

type phaseRepository struct{}

func NewPhaseRepository() domainRepo.PhaseRepository {
	return &phaseRepository{}
}

func (r *phaseRepository) FindAll(db *gorm.DB) ([]entity.PhaseCatalog, error) {
	var phases []entity.PhaseCatalog
	err := db.Order("id ASC").Find(&phases).Error
	if err != nil {
		return nil, err
	}
	return phases, nil
}

func (r *phaseRepository) FindByID(db *gorm.DB, id int) (*entity.PhaseCatalog, error) {
	var phase entity.PhaseCatalog
	err := db.Where("id = ?", id).First(&phase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &phase, nil
}
