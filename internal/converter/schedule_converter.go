package converter

import (
	"strconv"

	"sagra/internal/delivery/dto"
	"sagra/internal/domain/entity"
)

// PhaseToResponse converts a parsed phase to PhaseResponse DTO
func PhaseToResponse(phase entity.Phase) dto.PhaseResponse {
	return dto.PhaseResponse{
		ID:                phase.ID,
		Label:             phase.Label,
		ApproximatePeriod: phase.ApproximatePeriod,
		Days:              phase.Days,
		Activities:        phase.Activities,
		SpecificTests:     phase.SpecificTests,
		Treatments:        emptyIfNil(phase.Treatments),
		Exercises:         phase.Exercises,
		Techniques:        phase.Techniques,
	}
}

func PhasesToResponses(phases []entity.Phase) []dto.PhaseResponse {
	responses := make([]dto.PhaseResponse, len(phases))
	for i, phase := range phases {
		responses[i] = PhaseToResponse(phase)
	}
	return responses
}

// ScheduleEntryToResponse shows the discharge duration as "Contínuo"
func ScheduleEntryToResponse(entry entity.ScheduleEntry) dto.ScheduleEntryResponse {
	duration := strconv.Itoa(entry.DurationDays)
	if entry.Continuous {
		duration = entity.ContinuousDuration
	}

	return dto.ScheduleEntryResponse{
		PhaseID:       entry.PhaseID,
		Phase:         entry.Phase,
		StartDate:     formatDate(entry.StartDate),
		EndDate:       formatDate(entry.EndDate),
		Duration:      duration,
		DurationDays:  entry.DurationDays,
		Continuous:    entry.Continuous,
		Activities:    entry.Activities,
		SpecificTests: entry.SpecificTests,
		Treatments:    emptyIfNil(entry.Treatments),
		Exercises:     entry.Exercises,
		Techniques:    entry.Techniques,
	}
}

func ScheduleToResponses(schedule []entity.ScheduleEntry) []dto.ScheduleEntryResponse {
	responses := make([]dto.ScheduleEntryResponse, len(schedule))
	for i, entry := range schedule {
		responses[i] = ScheduleEntryToResponse(entry)
	}
	return responses
}

func PhaseSummaryToResponse(summary entity.PhaseSummary) *dto.PhaseSummaryResponse {
	clearance := make(map[string]int, len(summary.ClearanceCounts))
	for level, n := range summary.ClearanceCounts {
		clearance[level.String()] = n
	}

	byType := make(map[entity.TechniqueCategory][]dto.Technique, len(summary.TechniquesByType))
	for category, techniques := range summary.TechniquesByType {
		for _, t := range techniques {
			byType[category] = append(byType[category], dto.Technique{
				Name:      t.Name,
				Clearance: t.Clearance.String(),
			})
		}
	}

	return &dto.PhaseSummaryResponse{
		ExerciseCounts:   summary.ExerciseCounts,
		ClearanceCounts:  clearance,
		TechniquesByType: byType,
	}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
