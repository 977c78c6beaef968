package converter

import (
	"sagra/internal/delivery/dto"
	"sagra/internal/domain/entity"
)

// ProgressToResponse converts a joined progress row to ProgressResponse DTO
func ProgressToResponse(p entity.ProgressWithPhase) dto.ProgressResponse {
	resp := dto.ProgressResponse{
		ID:           p.ID,
		PatientID:    p.PatientID,
		PatientName:  p.PatientName,
		PhaseID:      p.PhaseID,
		Phase:        p.PhaseLabel,
		StartDate:    formatDate(p.StartDate),
		Status:       string(p.Status),
		Observations: p.Observations,
	}
	if p.EndDate != nil {
		end := formatDate(*p.EndDate)
		resp.EndDate = &end
	}
	return resp
}

func ProgressListToResponses(rows []entity.ProgressWithPhase) []dto.ProgressResponse {
	responses := make([]dto.ProgressResponse, len(rows))
	for i, row := range rows {
		responses[i] = ProgressToResponse(row)
	}
	return responses
}

// ProgressEntityToResponse converts a stored record with its preloaded phase
func ProgressEntityToResponse(p *entity.Progress) *dto.ProgressResponse {
	if p == nil {
		return nil
	}
	resp := ProgressToResponse(entity.ProgressWithPhase{
		ID:           p.ID,
		PatientID:    p.PatientID,
		PhaseID:      p.PhaseID,
		PhaseLabel:   p.Phase.Label,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Status:       p.Status,
		Observations: p.Observations,
	})
	return &resp
}
