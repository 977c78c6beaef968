package dto

import "time"

// Request DTOs

type ExportRequest struct {
	Format string `json:"format" validate:"required,oneof=xlsx csv"`
}

// Response DTOs

type ExportResponse struct {
	Format     string    `json:"format"`
	Files      []string  `json:"files"`
	Patients   int       `json:"patients"`
	Progress   int       `json:"progress"`
	ExportedAt time.Time `json:"exported_at"`
}

type BackupResponse struct {
	File      string    `json:"file"`
	CreatedAt time.Time `json:"created_at"`
}
