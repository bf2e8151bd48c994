package models

import "time"

// Email is a reusable notification template scoped to a course.
type Email struct {
	BaseModel

	Subject        string     `gorm:"size:255;not null" json:"subject"`
	Body           string     `gorm:"type:text;not null" json:"body"`
	CourseID       string     `gorm:"size:36;not null;index" json:"courseId"`
	InvitationDate *time.Time `json:"invitationDate"`

	// Relationships
	Course *Course `gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"course,omitempty"`
}
