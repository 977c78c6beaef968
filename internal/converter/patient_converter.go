package converter

import (
	"time"

	"sagra/internal/delivery/dto"
	"sagra/internal/domain/entity"
)

func formatDate(t time.Time) string {
	return t.Format(entity.DateLayout)
}

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:               patient.ID,
		Name:             patient.Name,
		SurgeryDate:      formatDate(patient.SurgeryDate),
		RegistrationDate: formatDate(patient.RegistrationDate),
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
