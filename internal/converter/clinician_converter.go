package converter

import (
	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/domain/entity"
)

// ClinicianToResponse includes the owning user when it has been preloaded.
func ClinicianToResponse(clinician *entity.Clinician) *dto.ClinicianResponse {
	if clinician == nil {
		return nil
	}

	response := &dto.ClinicianResponse{
		ClinicianID: clinician.ID,
		UserID:      clinician.UserID,
		Age:         clinician.Age,
		Gender:      clinician.Gender,
		Speciality:  clinician.Speciality,
		CreatedAt:   clinician.CreatedAt,
	}
	if clinician.User.ID != 0 {
		response.User = UserToResponse(&clinician.User)
	}
	return response
}
