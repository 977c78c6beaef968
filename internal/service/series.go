package service

import (
	"math"
	"strings"
	"time"

	"sagra/internal/domain/entity"

	"github.com/spf13/cast"
)

const minSeriesRows = 2

// BuildSeries turns raw (day offset, value) rows into a dated series anchored at
// referenceDate. Rows with missing cells are dropped first, then rows whose cells do
// not coerce to numbers. Row order, duplicate offsets and unsorted offsets are kept.
func BuildSeries(rows []entity.RawRow, referenceDate time.Time) ([]entity.SeriesPoint, error) {
	complete := make([]entity.RawRow, 0, len(rows))
	for _, row := range rows {
		if isMissing(row.Day) || isMissing(row.Value) {
			continue
		}
		complete = append(complete, row)
	}
	if len(complete) < minSeriesRows {
		return nil, &InsufficientDataError{Stage: "dropping missing values", Rows: len(complete)}
	}

	reference := entity.NormalizeDate(referenceDate)
	points := make([]entity.SeriesPoint, 0, len(complete))
	for _, row := range complete {
		offset, ok := toNumber(row.Day)
		if !ok {
			continue
		}
		value, ok := toNumber(row.Value)
		if !ok {
			continue
		}
		points = append(points, entity.SeriesPoint{
			Date:  entity.AddDays(reference, int(math.Trunc(offset))),
			Value: value,
		})
	}
	if len(points) < minSeriesRows {
		return nil, &InsufficientDataError{Stage: "numeric coercion", Rows: len(points)}
	}

	return points, nil
}

// IsNumeric reports whether a cell coerces to a finite number.
func IsNumeric(v any) bool {
	if isMissing(v) {
		return false
	}
	_, ok := toNumber(v)
	return ok
}

func isMissing(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		trimmed := strings.TrimSpace(val)
		return trimmed == "" || strings.EqualFold(trimmed, "nan")
	case float64:
		return math.IsNaN(val)
	case float32:
		return math.IsNaN(float64(val))
	}
	return false
}

func toNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	if _, ok := v.(bool); ok {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// SummarizeSeries computes the headline numbers shown next to a protocol chart.
func SummarizeSeries(points []entity.SeriesPoint) entity.SeriesSummary {
	if len(points) == 0 {
		return entity.SeriesSummary{}
	}

	summary := entity.SeriesSummary{
		Points:    len(points),
		Initial:   points[0].Value,
		Current:   points[len(points)-1].Value,
		Min:       points[0].Value,
		Max:       points[0].Value,
		FirstDate: points[0].Date,
		LastDate:  points[len(points)-1].Date,
	}

	var sum float64
	for _, p := range points {
		sum += p.Value
		summary.Min = math.Min(summary.Min, p.Value)
		summary.Max = math.Max(summary.Max, p.Value)
	}
	summary.Mean = sum / float64(len(points))

	if summary.Initial != 0 {
		variation := (summary.Current - summary.Initial) / summary.Initial * 100
		summary.VariationPercent = &variation
	}

	summary.Trend = trendCoefficient(points)
	return summary
}

// trendCoefficient is the Pearson correlation between row position and value.
func trendCoefficient(points []entity.SeriesPoint) float64 {
	n := float64(len(points))
	if n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i, p := range points {
		sumX += float64(i)
		sumY += p.Value
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i, p := range points {
		dx := float64(i) - meanX
		dy := p.Value - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
