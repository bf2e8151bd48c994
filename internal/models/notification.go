package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// Notification records the outcome of one email dispatched to an applicant.
type Notification struct {
	BaseModel

	ApplicationID string         `gorm:"size:36;not null;index" json:"applicationId"`
	EmailID       *string        `gorm:"size:36;index" json:"emailId"`
	Recipient     string         `gorm:"size:255;not null" json:"recipient"`
	Subject       string         `gorm:"size:255;not null" json:"subject"`
	Status        string         `gorm:"size:16;not null" json:"status"`
	Message       string         `gorm:"type:text" json:"message,omitempty"`
	Attempts      int            `gorm:"not null;default:0" json:"attempts"`
	SentAt        *time.Time     `json:"sentAt"`
	Metadata      datatypes.JSON `json:"metadata,omitempty"`

	// Relationships
	Application *Application `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Email       *Email       `gorm:"foreignKey:EmailID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}
