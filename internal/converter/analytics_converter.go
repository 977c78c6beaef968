package converter

import (
	"sagra/internal/delivery/dto"
	"sagra/internal/domain/entity"
)

func PhaseDurationsToResponses(durations []entity.PhaseDuration) []dto.PhaseDurationResponse {
	responses := make([]dto.PhaseDurationResponse, len(durations))
	for i, d := range durations {
		responses[i] = dto.PhaseDurationResponse{
			PhaseID:  d.PhaseID,
			Phase:    d.Phase,
			MeanDays: d.MeanDays,
			Samples:  d.Samples,
		}
	}
	return responses
}

func SuccessRatesToResponses(rates []entity.PhaseSuccessRate) []dto.SuccessRateResponse {
	responses := make([]dto.SuccessRateResponse, len(rates))
	for i, r := range rates {
		responses[i] = dto.SuccessRateResponse{
			PhaseID:   r.PhaseID,
			Phase:     r.Phase,
			Total:     r.Total,
			Completed: r.Completed,
			Rate:      r.Rate,
		}
	}
	return responses
}

func DashboardToResponse(summary *entity.DashboardSummary) *dto.DashboardResponse {
	perPhase := make([]dto.PhaseCountResponse, len(summary.RecordsPerPhase))
	for i, c := range summary.RecordsPerPhase {
		perPhase[i] = dto.PhaseCountResponse{
			PhaseID:   c.PhaseID,
			Phase:     c.Phase,
			Total:     c.Total,
			Completed: c.Completed,
		}
	}

	return &dto.DashboardResponse{
		TotalPatients:    summary.TotalPatients,
		ActiveRecords:    summary.ActiveRecords,
		CompletedRecords: summary.CompletedRecords,
		RecordsPerPhase:  perPhase,
		RecentProgress:   ProgressListToResponses(summary.RecentProgress),
	}
}

func SeriesToResponse(protocol entity.Protocol, reference string, points []entity.SeriesPoint, summary entity.SeriesSummary) *dto.SeriesResponse {
	resp := &dto.SeriesResponse{
		Protocol:      protocol.Name,
		ReferenceDate: reference,
		Points:        make([]dto.SeriesPointResponse, len(points)),
		Summary: dto.SeriesSummaryResponse{
			Points:           summary.Points,
			Initial:          summary.Initial,
			Current:          summary.Current,
			VariationPercent: summary.VariationPercent,
			Mean:             summary.Mean,
			Min:              summary.Min,
			Max:              summary.Max,
			Trend:            summary.Trend,
			FirstDate:        formatDate(summary.FirstDate),
			LastDate:         formatDate(summary.LastDate),
		},
	}
	if len(protocol.Columns) > 1 {
		resp.ValueColumn = protocol.Columns[1]
	}
	for i, p := range points {
		resp.Points[i] = dto.SeriesPointResponse{Date: formatDate(p.Date), Value: p.Value}
	}
	return resp
}
