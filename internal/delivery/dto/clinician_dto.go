package dto

import "time"

// RegisterClinicianRequest leaves gender optional, an empty value is stored
// as "Not disclosed".
type RegisterClinicianRequest struct {
	UserID     int64  `json:"user_id" validate:"required,gt=0"`
	Age        *int   `json:"age" validate:"required,gte=0,lte=150"`
	Gender     string `json:"gender" validate:"omitempty,oneof='Male' 'Female' 'Not disclosed'"`
	Speciality string `json:"speciality" validate:"required,max=255"`
}

type ClinicianResponse struct {
	ClinicianID int64         `json:"clinician_id"`
	UserID      int64         `json:"user_id"`
	Age         int           `json:"age"`
	Gender      string        `json:"gender"`
	Speciality  string        `json:"speciality"`
	CreatedAt   time.Time     `json:"created_at"`
	User        *UserResponse `json:"user,omitempty"`
}
