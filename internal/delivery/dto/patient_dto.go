package dto

import "time"

type RegisterPatientRequest struct {
	UserID            int64  `json:"user_id" validate:"required,gt=0"`
	Age               *int   `json:"age" validate:"required,gte=0,lte=150"`
	Sex               string `json:"sex" validate:"required,oneof=Male Female"`
	HealthDescription string `json:"health_description" validate:"omitempty,max=5000"`
}

type PatientResponse struct {
	PatientID         int64         `json:"patient_id"`
	UserID            int64         `json:"user_id"`
	Age               int           `json:"age"`
	Sex               string        `json:"sex"`
	HealthDescription string        `json:"health_description"`
	CreatedAt         time.Time     `json:"created_at"`
	User              *UserResponse `json:"user,omitempty"`
}
