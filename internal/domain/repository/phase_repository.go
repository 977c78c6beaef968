package repository

import (
	"sagra/internal/domain/entity"

	"gorm.io/gorm"
)

type PhaseRepository interface {
	// FindAll returns the catalog in protocol order
	FindAll(db *gorm.DB) ([]entity.PhaseCatalog, error)
	FindByID(db *gorm.DB, id int) (*entity.PhaseCatalog, error)
}
