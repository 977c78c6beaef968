package service

import (
	"sort"

	"sagra/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SuccessRate is completed/total*100 rounded to one decimal place.
func SuccessRate(completed, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(completed).Mul(hundred).Div(decimal.NewFromInt(total)).Round(1)
}

// SuccessRates converts per-phase counts into rates.
func SuccessRates(counts []entity.PhaseStatusCount) []entity.PhaseSuccessRate {
	rates := make([]entity.PhaseSuccessRate, 0, len(counts))
	for _, c := range counts {
		rates = append(rates, entity.PhaseSuccessRate{
			PhaseID:   c.PhaseID,
			Phase:     c.Phase,
			Total:     c.Total,
			Completed: c.Completed,
			Rate:      SuccessRate(c.Completed, c.Total),
		})
	}
	return rates
}

// MeanPhaseDurations averages end-start days per phase over completed records that
// have an end date. Results are ordered by phase id.
func MeanPhaseDurations(records []entity.ProgressWithPhase) []entity.PhaseDuration {
	type acc struct {
		phase string
		days  int64
		n     int
	}
	byPhase := make(map[int]*acc)

	for _, r := range records {
		if r.Status != entity.ProgressCompleted || r.EndDate == nil {
			continue
		}
		a, ok := byPhase[r.PhaseID]
		if !ok {
			a = &acc{phase: r.PhaseLabel}
			byPhase[r.PhaseID] = a
		}
		a.days += int64(entity.DaysBetween(r.StartDate, *r.EndDate))
		a.n++
	}

	ids := make([]int, 0, len(byPhase))
	for id := range byPhase {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	durations := make([]entity.PhaseDuration, 0, len(ids))
	for _, id := range ids {
		a := byPhase[id]
		durations = append(durations, entity.PhaseDuration{
			PhaseID:  id,
			Phase:    a.phase,
			MeanDays: decimal.NewFromInt(a.days).Div(decimal.NewFromInt(int64(a.n))).Round(1),
			Samples:  a.n,
		})
	}
	return durations
}

// SummarizePhase counts exercise statuses and technique clearances of a schedule entry
// and groups techniques by category.
func SummarizePhase(entry entity.ScheduleEntry) entity.PhaseSummary {
	summary := entity.PhaseSummary{
		ExerciseCounts: map[entity.ExerciseStatus]int{
			entity.ExerciseComplete:    0,
			entity.ExerciseProgressing: 0,
			entity.ExerciseRestricted:  0,
		},
		ClearanceCounts: map[entity.TechniqueClearance]int{
			entity.TechniqueForbidden: 0,
			entity.TechniqueModerate:  0,
			entity.TechniqueCleared:   0,
		},
		TechniquesByType: make(map[entity.TechniqueCategory][]entity.Technique),
	}

	for _, ex := range entry.Exercises {
		if ex.Status == entity.ExerciseUnspecified {
			continue
		}
		summary.ExerciseCounts[ex.Status]++
	}
	for _, t := range entry.Techniques {
		summary.ClearanceCounts[t.Clearance]++
		summary.TechniquesByType[t.Category] = append(summary.TechniquesByType[t.Category], t)
	}
	return summary
}
