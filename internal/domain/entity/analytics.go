package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PhaseDuration is the mean elapsed time of completed records of one phase.
type PhaseDuration struct {
	PhaseID  int
	Phase    string
	MeanDays decimal.Decimal
	Samples  int
}

// PhaseSuccessRate is the share of concluded records of one phase, in percent.
type PhaseSuccessRate struct {
	PhaseID   int
	Phase     string
	Total     int64
	Completed int64
	Rate      decimal.Decimal
}

// PhaseSummary breaks down the descriptors of the active phase.
type PhaseSummary struct {
	ExerciseCounts   map[ExerciseStatus]int
	ClearanceCounts  map[TechniqueClearance]int
	TechniquesByType map[TechniqueCategory][]Technique
}

// SeriesSummary describes a protocol series.
type SeriesSummary struct {
	Points           int
	Initial          float64
	Current          float64
	VariationPercent *float64
	Mean             float64
	Min              float64
	Max              float64
	Trend            float64
	FirstDate        time.Time
	LastDate         time.Time
}

// DashboardSummary aggregates counts shown on the landing page.
type DashboardSummary struct {
	TotalPatients    int64
	ActiveRecords    int64
	CompletedRecords int64
	RecordsPerPhase  []PhaseStatusCount
	RecentProgress   []ProgressWithPhase
}
