package repository

import (
	"errors"

	"sagra/internal/domain/entity"
	domainRepo "sagra/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Upsert(db *gorm.DB, patient *entity.Patient) error {
	err := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nome"}},
		DoUpdates: clause.AssignmentColumns([]string{"data_cirurgia"}),
	}).Create(patient).Error
	if err != nil {
		return err
	}

	// Registration date of an existing patient is kept, so reload the stored row
	stored, err := r.FindByName(db, patient.Name)
	if err != nil {
		return err
	}
	if stored == nil {
		return gorm.ErrRecordNotFound
	}
	*patient = *stored
	return nil
}

func (r *patientRepository) FindByID(db *gorm.DB, id int) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByName(db *gorm.DB, name string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("nome = ?", name).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Order("nome ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Patient{}).Count(&count).Error
	return count, err
}
