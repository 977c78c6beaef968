package dto

import (
	"time"

	"sagra/internal/domain/entity"
)

// Request DTOs

type AuditLogQuery struct {
	Username string `json:"username" validate:"omitempty,max=100"`
	Action   string `json:"action" validate:"omitempty,max=100"`
	Limit    int    `json:"limit" validate:"gte=0,lte=500"`
	Offset   int    `json:"offset" validate:"gte=0"`
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Action    string      `json:"action"`
	Metadata  entity.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs   []AuditLogResponse `json:"logs"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
