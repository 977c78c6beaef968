package service

import (
	"math"

	"sagra/internal/domain/entity"
)

// OverallProgress is the linear share of the standard recovery span already elapsed,
// capped at 100. It does not look at phase boundaries.
func OverallProgress(daysSinceSurgery int) float64 {
	return math.Min(100, float64(daysSinceSurgery)/entity.DischargeOffsetDays*100)
}

// WeekNumber is the number of complete weeks since surgery.
func WeekNumber(daysSinceSurgery int) int {
	return int(math.Floor(float64(daysSinceSurgery) / 7))
}
