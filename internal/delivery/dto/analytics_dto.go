package dto

import "github.com/shopspring/decimal"

type PhaseDurationResponse struct {
	PhaseID  int             `json:"phase_id"`
	Phase    string          `json:"phase"`
	MeanDays decimal.Decimal `json:"mean_days"`
	Samples  int             `json:"samples"`
}

type SuccessRateResponse struct {
	PhaseID   int             `json:"phase_id"`
	Phase     string          `json:"phase"`
	Total     int64           `json:"total"`
	Completed int64           `json:"completed"`
	Rate      decimal.Decimal `json:"rate"`
}

type PhaseCountResponse struct {
	PhaseID   int    `json:"phase_id"`
	Phase     string `json:"phase"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
}

type DashboardResponse struct {
	TotalPatients    int64                `json:"total_patients"`
	ActiveRecords    int64                `json:"active_records"`
	CompletedRecords int64                `json:"completed_records"`
	RecordsPerPhase  []PhaseCountResponse `json:"records_per_phase"`
	RecentProgress   []ProgressResponse   `json:"recent_progress"`
}
