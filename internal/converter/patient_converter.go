package converter

import (
	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/domain/entity"
)

// PatientToResponse includes the owning user when it has been preloaded.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		PatientID:         patient.ID,
		UserID:            patient.UserID,
		Age:               patient.Age,
		Sex:               patient.Sex,
		HealthDescription: patient.HealthDescription,
		CreatedAt:         patient.CreatedAt,
	}
	if patient.User.ID != 0 {
		response.User = UserToResponse(&patient.User)
	}
	return response
}

func PatientsToResponse(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
