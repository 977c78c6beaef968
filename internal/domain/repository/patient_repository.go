package repository

import (
	"sagra/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	// Upsert inserts the patient or, when the name exists, updates its surgery date.
	// The patient ID is filled from the stored row.
	Upsert(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id int) (*entity.Patient, error)
	FindByName(db *gorm.DB, name string) (*entity.Patient, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
	Count(db *gorm.DB) (int64, error)
}
