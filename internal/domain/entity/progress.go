package entity

import "time"

// ProgressStatus is persisted verbatim in the progresso table.
type ProgressStatus string

const (
	ProgressInProgress ProgressStatus = "Em andamento"
	ProgressCompleted  ProgressStatus = "Concluído"
)

func (s ProgressStatus) Valid() bool {
	return s == ProgressInProgress || s == ProgressCompleted
}

// Progress records that a patient was (or is) in a phase over a date window.
// (PatientID, PhaseID, StartDate) is unique.
type Progress struct {
	ID           int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PatientID    int            `gorm:"column:paciente_id;not null;uniqueIndex:idx_progresso_natural_key" json:"patient_id"`
	PhaseID      int            `gorm:"column:fase;not null;uniqueIndex:idx_progresso_natural_key" json:"phase_id"`
	StartDate    time.Time      `gorm:"column:data_inicio;type:date;not null;uniqueIndex:idx_progresso_natural_key" json:"start_date"`
	EndDate      *time.Time     `gorm:"column:data_fim;type:date" json:"end_date,omitempty"`
	Status       ProgressStatus `gorm:"column:status" json:"status"`
	Observations string         `gorm:"column:observacoes" json:"observations,omitempty"`

	// Relationships
	Patient Patient      `gorm:"foreignKey:PatientID" json:"-"`
	Phase   PhaseCatalog `gorm:"foreignKey:PhaseID" json:"phase,omitempty"`
}

func (Progress) TableName() string {
	return "progresso"
}

// IsCompleted checks if the phase was concluded
func (p *Progress) IsCompleted() bool {
	return p.Status == ProgressCompleted
}

// Complete marks the record as concluded on the given day
func (p *Progress) Complete(end time.Time) {
	p.Status = ProgressCompleted
	end = NormalizeDate(end)
	p.EndDate = &end
}

// ProgressWithPhase is a progress row joined with its phase label, used by reports and exports.
type ProgressWithPhase struct {
	ID           int
	PatientID    int
	PatientName  string
	PhaseID      int
	PhaseLabel   string
	StartDate    time.Time
	EndDate      *time.Time
	Status       ProgressStatus
	Observations string
}

// PhaseStatusCount holds per-phase record counts for success-rate aggregation.
type PhaseStatusCount struct {
	PhaseID   int
	Phase     string
	Total     int64
	Completed int64
}
