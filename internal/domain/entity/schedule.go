package entity

import (
	"strings"
	"time"
)

// DischargeOffsetDays is the fixed distance between surgery and the discharge phase.
const DischargeOffsetDays = 240

// DischargeWindowDays is the length of the discharge window.
const DischargeWindowDays = 30

// ContinuousDuration is shown instead of a day count for the discharge phase.
const ContinuousDuration = "Contínuo"

// ScheduleEntry is a phase placed on the calendar for one surgery date. It is never persisted.
type ScheduleEntry struct {
	PhaseID       int
	Phase         string
	StartDate     time.Time
	EndDate       time.Time
	DurationDays  int
	Continuous    bool
	Activities    string
	SpecificTests string
	Treatments    []string
	Exercises     []Exercise
	Techniques    []Technique
}

// Contains reports whether day falls inside the entry window, bounds included.
func (e *ScheduleEntry) Contains(day time.Time) bool {
	day = NormalizeDate(day)
	return !day.Before(NormalizeDate(e.StartDate)) && !day.After(NormalizeDate(e.EndDate))
}

func isDischargeLabel(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), DischargeLabel)
}
