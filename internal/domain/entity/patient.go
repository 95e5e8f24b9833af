package entity

import "time"

// Patient holds the clinical profile of a user receiving care.
type Patient struct {
	ID                int64     `gorm:"column:patient_id;primaryKey;autoIncrement" json:"patient_id"`
	UserID            int64     `gorm:"not null;index" json:"user_id"`
	Age               int       `gorm:"not null" json:"age"`
	Sex               string    `gorm:"type:varchar(10);not null" json:"sex"`
	HealthDescription string    `gorm:"type:text;not null;default:''" json:"health_description"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Sex constants
const (
	SexMale   = "Male"
	SexFemale = "Female"
)
