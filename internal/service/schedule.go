package service

import (
	"time"

	"sagra/internal/domain/entity"
)

// ComputeSchedule parses the ordered catalog and places every phase on the calendar
// starting at the surgery date.
func ComputeSchedule(surgeryDate time.Time, catalog []entity.PhaseCatalog) ([]entity.ScheduleEntry, error) {
	phases, err := ParsePhases(catalog)
	if err != nil {
		return nil, err
	}
	return PlaceSchedule(surgeryDate, phases), nil
}

// PlaceSchedule lays parsed phases end to end. The first phase starts on the surgery
// date and lasts Days days; every following phase starts the day after the previous
// one ends and lasts Days-1 more days. The discharge phase ignores the running cursor
// and always starts DischargeOffsetDays after surgery, so a catalog whose durations
// do not add up to that offset leaves a gap or an overlap before discharge.
func PlaceSchedule(surgeryDate time.Time, phases []entity.Phase) []entity.ScheduleEntry {
	surgery := entity.NormalizeDate(surgeryDate)
	cursor := surgery

	entries := make([]entity.ScheduleEntry, 0, len(phases))
	for i, phase := range phases {
		var start, end time.Time
		continuous := false

		switch {
		case i == 0:
			start = cursor
			end = entity.AddDays(start, phase.Days)
		case phase.IsDischarge():
			start = entity.AddDays(surgery, entity.DischargeOffsetDays)
			end = entity.AddDays(start, entity.DischargeWindowDays)
			continuous = true
		default:
			start = entity.AddDays(cursor, 1)
			end = entity.AddDays(start, phase.Days-1)
		}

		entries = append(entries, entity.ScheduleEntry{
			PhaseID:       phase.ID,
			Phase:         phase.Label,
			StartDate:     start,
			EndDate:       end,
			DurationDays:  phase.Days,
			Continuous:    continuous,
			Activities:    phase.Activities,
			SpecificTests: phase.SpecificTests,
			Treatments:    phase.Treatments,
			Exercises:     phase.Exercises,
			Techniques:    phase.Techniques,
		})
		cursor = end
	}

	return entries
}

// ActivePhase returns the first entry whose window contains today.
func ActivePhase(schedule []entity.ScheduleEntry, today time.Time) (entity.ScheduleEntry, bool) {
	for _, entry := range schedule {
		if entry.Contains(today) {
			return entry, true
		}
	}
	return entity.ScheduleEntry{}, false
}

// DischargeForecast is the expected discharge date for a surgery date.
func DischargeForecast(surgeryDate time.Time) time.Time {
	return entity.AddDays(surgeryDate, entity.DischargeOffsetDays)
}
