package converter

import (
	"health-records-api/internal/delivery/dto"
	"health-records-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The password
// hash never leaves the entity.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func UserToDetailResponse(user *entity.User, patient *entity.Patient, clinician *entity.Clinician) *dto.UserDetailResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserDetailResponse{UserResponse: *UserToResponse(user)}
	if patient != nil {
		response.PatientID = &patient.ID
	}
	if clinician != nil {
		response.ClinicianID = &clinician.ID
	}
	return response
}
