package dto

import "sagra/internal/domain/entity"

type PhaseResponse struct {
	ID                int                `json:"id"`
	Label             string             `json:"label"`
	ApproximatePeriod string             `json:"approximate_period"`
	Days              int                `json:"days"`
	Activities        string             `json:"activities"`
	SpecificTests     string             `json:"specific_tests"`
	Treatments        []string           `json:"treatments"`
	Exercises         []entity.Exercise  `json:"exercises"`
	Techniques        []entity.Technique `json:"techniques"`
}

type ScheduleEntryResponse struct {
	PhaseID       int                `json:"phase_id"`
	Phase         string             `json:"phase"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	Duration      string             `json:"duration"`
	DurationDays  int                `json:"duration_days"`
	Continuous    bool               `json:"continuous"`
	Activities    string             `json:"activities"`
	SpecificTests string             `json:"specific_tests"`
	Treatments    []string           `json:"treatments"`
	Exercises     []entity.Exercise  `json:"exercises"`
	Techniques    []entity.Technique `json:"techniques"`
}

type SchedulePreviewResponse struct {
	SurgeryDate       string                  `json:"surgery_date"`
	DischargeForecast string                  `json:"discharge_forecast"`
	Schedule          []ScheduleEntryResponse `json:"schedule"`
}

type PhaseSummaryResponse struct {
	ExerciseCounts   map[entity.ExerciseStatus]int            `json:"exercise_counts"`
	ClearanceCounts  map[string]int                           `json:"clearance_counts"`
	TechniquesByType map[entity.TechniqueCategory][]Technique `json:"techniques_by_type"`
}

type Technique struct {
	Name      string `json:"name"`
	Clearance string `json:"clearance"`
}

// PatientScheduleResponse is the patient follow-up view: schedule, active phase and progress metric
type PatientScheduleResponse struct {
	Patient           PatientResponse         `json:"patient"`
	Today             string                  `json:"today"`
	DaysSinceSurgery  int                     `json:"days_since_surgery"`
	WeekNumber        int                     `json:"week_number"`
	OverallProgress   float64                 `json:"overall_progress"`
	DischargeForecast string                  `json:"discharge_forecast"`
	ActivePhase       *ScheduleEntryResponse  `json:"active_phase"`
	PhaseSummary      *PhaseSummaryResponse   `json:"phase_summary,omitempty"`
	Schedule          []ScheduleEntryResponse `json:"schedule"`
}
