package dto

// Request DTOs

// RegisterPatientRequest registers an athlete or updates the surgery date of an existing one
type RegisterPatientRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	SurgeryDate string `json:"surgery_date" validate:"required,isodate"`
}

// Response DTOs

type PatientResponse struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	SurgeryDate      string `json:"surgery_date"`
	RegistrationDate string `json:"registration_date"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

type PatientReportResponse struct {
	Patient  PatientResponse    `json:"patient"`
	Progress []ProgressResponse `json:"progress"`
	Total    int                `json:"total"`
}
