package dto

// Request DTOs

type RecordProgressRequest struct {
	PhaseID      int    `json:"phase_id" validate:"required,gte=1"`
	StartDate    string `json:"start_date" validate:"required,isodate"`
	EndDate      string `json:"end_date" validate:"omitempty,isodate"`
	Status       string `json:"status" validate:"required,oneof='Em andamento' 'Concluído'"`
	Observations string `json:"observations" validate:"omitempty,max=2000"`
}

type UpdateProgressRequest struct {
	Status       string  `json:"status" validate:"required,oneof='Em andamento' 'Concluído'"`
	EndDate      string  `json:"end_date" validate:"omitempty,isodate"`
	Observations *string `json:"observations" validate:"omitempty,max=2000"`
}

// Response DTOs

type ProgressResponse struct {
	ID           int     `json:"id"`
	PatientID    int     `json:"patient_id"`
	PatientName  string  `json:"patient_name,omitempty"`
	PhaseID      int     `json:"phase_id"`
	Phase        string  `json:"phase"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Status       string  `json:"status"`
	Observations string  `json:"observations,omitempty"`
}

type ProgressListResponse struct {
	Progress []ProgressResponse `json:"progress"`
	Total    int                `json:"total"`
}
