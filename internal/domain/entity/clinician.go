package entity

import "time"

// Clinician holds the professional profile of a user providing care.
type Clinician struct {
	ID         int64     `gorm:"column:clinician_id;primaryKey;autoIncrement" json:"clinician_id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	Age        int       `gorm:"not null" json:"age"`
	Gender     string    `gorm:"type:varchar(20);not null" json:"gender"`
	Speciality string    `gorm:"type:varchar(255);not null" json:"speciality"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Clinician) TableName() string {
	return "clinicians"
}

// Gender constants
const (
	GenderMale         = "Male"
	GenderFemale       = "Female"
	GenderNotDisclosed = "Not disclosed"
)
