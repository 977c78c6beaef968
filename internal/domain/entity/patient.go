package entity

import "time"

// Patient is an athlete registered for post-surgery follow-up. Name is the natural key.
type Patient struct {
	ID               int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name             string    `gorm:"column:nome;type:varchar(255);uniqueIndex;not null" json:"name"`
	SurgeryDate      time.Time `gorm:"column:data_cirurgia;type:date;not null" json:"surgery_date"`
	RegistrationDate time.Time `gorm:"column:data_cadastro;type:date" json:"registration_date"`

	// Relationships
	Progress []Progress `gorm:"foreignKey:PatientID" json:"progress,omitempty"`
}

func (Patient) TableName() string {
	return "pacientes"
}
