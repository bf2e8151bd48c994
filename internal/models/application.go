package models

import (
	"time"

	"github.com/applyhub/applyhub/internal/types"
	"gorm.io/datatypes"
)

type Application struct {
	BaseModel

	FullName    string         `gorm:"size:255;not null" json:"fullName"`
	Email       string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DateOfBirth datatypes.Date `gorm:"not null" json:"dateOfBirth"`
	Gender      types.Gender   `gorm:"size:32;not null" json:"gender"`
	Phone       string         `gorm:"size:32;not null" json:"phone"`
	Nationality string         `gorm:"size:128;not null" json:"nationality"`

	RefugeeStatus bool    `gorm:"not null;default:false" json:"refugeeStatus"`
	RefugeeID     *string `gorm:"size:64" json:"refugeeId"`
	NationalID    *string `gorm:"size:16" json:"nationalId"`

	HasDisability     bool                  `gorm:"not null;default:false" json:"hasDisability"`
	DisabilityType    *types.DisabilityType `gorm:"size:64" json:"disabilityType"`
	DisabilityDetails *string               `gorm:"type:text" json:"disabilityDetails"`

	Province string `gorm:"size:128;not null" json:"province"`
	District string `gorm:"size:128;not null" json:"district"`
	Sector   string `gorm:"size:128;not null" json:"sector"`
	Cell     string `gorm:"size:128;not null" json:"cell"`
	Village  string `gorm:"size:128;not null" json:"village"`

	EmergencyContactName     string `gorm:"size:255;not null" json:"emergencyContactName"`
	EmergencyContactRelation string `gorm:"size:128;not null" json:"emergencyContactRelation"`
	EmergencyContactPhone    string `gorm:"size:32;not null" json:"emergencyContactPhone"`

	HasYoungChild       bool  `gorm:"not null;default:false" json:"hasYoungChild"`
	HasChildcareSupport *bool `json:"hasChildcareSupport"`
	HasLaptop           bool  `gorm:"not null;default:false" json:"hasLaptop"`

	CurrentOccupation      types.Occupation         `gorm:"size:64;not null" json:"currentOccupation"`
	EducationBackground    types.Education          `gorm:"size:64;not null" json:"educationBackground"`
	University             *string                  `gorm:"size:255" json:"university"`
	AcademicBackground     string                   `gorm:"type:text;not null" json:"academicBackground"`
	EnglishProficiency     types.EnglishProficiency `gorm:"size:32;not null" json:"englishProficiency"`
	EnglishSkillConfidence types.EnglishSkill       `gorm:"size:32;not null" json:"englishSkillConfidence"`
	CanPayRegistrationFee  bool                     `gorm:"not null;default:false" json:"canPayRegistrationFee"`

	LinkedInProfile *string `gorm:"size:512" json:"linkedInProfile"`
	GithubProfile   *string `gorm:"size:512" json:"githubProfile"`

	HowDidYouKnow              types.Source `gorm:"size:32;not null" json:"howDidYouKnow"`
	HowDidYouKnowSpecification *string      `gorm:"size:512" json:"howDidYouKnowSpecification"`
	Motivation                 string       `gorm:"type:text;not null" json:"motivation"`
	AdditionalFeedback         *string      `gorm:"type:text" json:"additionalFeedback"`

	CourseID string `gorm:"size:36;not null;index" json:"courseId"`

	// Review fields, written only by administrators.
	Status                  types.Status `gorm:"size:64;not null;default:'UNDER_REVIEW';index" json:"status"`
	ReviewerComments        *string      `gorm:"type:text" json:"reviewerComments"`
	InterviewDate           *time.Time   `json:"interviewDate"`
	DecisionDate            *time.Time   `json:"decisionDate"`
	TechnicalInterviewMarks *float64     `json:"technicalInterviewMarks"`

	// Relationships
	Course *Course `gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"course,omitempty"`
}
