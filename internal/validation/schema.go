package validation

import (
	"reflect"
	"strings"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/types"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// Submission is the raw public application payload.
type Submission struct {
	FullName    string `json:"fullName" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER PREFER_NOT_TO_SAY"`
	Phone       string `json:"phone" validate:"required,len=10"`
	Nationality string `json:"nationality" validate:"required,min=2"`

	RefugeeStatus bool   `json:"refugeeStatus"`
	RefugeeID     string `json:"refugeeId"`
	NationalID    string `json:"nationalId" validate:"omitempty,national_id"`

	HasDisability     bool   `json:"hasDisability"`
	DisabilityType    string `json:"disabilityType" validate:"omitempty,oneof=PHYSICAL_IMPAIRMENT VISUAL_IMPAIRMENT HEARING_IMPAIRMENT MENTAL_IMPAIRMENT SHORT_STATURE ALBINISM DEAF_BLIND AUTISM MULTIPLE_DISABILITIES"`
	DisabilityDetails string `json:"disabilityDetails"`

	Province string `json:"province" validate:"required,min=2"`
	District string `json:"district" validate:"required,min=2"`
	Sector   string `json:"sector" validate:"required,min=2"`
	Cell     string `json:"cell" validate:"required,min=2"`
	Village  string `json:"village" validate:"required,min=2"`

	EmergencyContactName     string `json:"emergencyContactName" validate:"required,min=2"`
	EmergencyContactRelation string `json:"emergencyContactRelation" validate:"required,min=2"`
	EmergencyContactPhone    string `json:"emergencyContactPhone" validate:"required,min=10"`

	HasYoungChild       bool  `json:"hasYoungChild"`
	HasChildcareSupport *bool `json:"hasChildcareSupport"`
	HasLaptop           bool  `json:"hasLaptop"`

	CurrentOccupation      string `json:"currentOccupation" validate:"required,oneof=EMPLOYED ATTENDING_UNIVERSITY_NOT_EMPLOYED EMPLOYED_ATTENDING_UNIVERSITY ATTENDING_ADVANCED_TRAINING_AND_UNIVERSITY NOT_EMPLOYED_NOT_IN_SCHOOL_NOT_IN_ANY_TRAINING INTERNSHIP"`
	EducationBackground    string `json:"educationBackground" validate:"required,oneof=HIGH_SCHOOL TECHNICAL_SCHOOL YEAR_1_UNIVERSITY YEAR_2_UNIVERSITY YEAR_3_UNIVERSITY YEAR_4_UNIVERSITY FINAL_YEAR_UNIVERSITY BACHELORS MASTERS PHD OTHER"`
	University             string `json:"university"`
	AcademicBackground     string `json:"academicBackground" validate:"required,min=2"`
	EnglishProficiency     string `json:"englishProficiency" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED FLUENT NATIVE"`
	EnglishSkillConfidence string `json:"englishSkillConfidence" validate:"required,oneof=READING WRITING SPEAKING LISTENING"`
	CanPayRegistrationFee  *bool  `json:"canPayRegistrationFee" validate:"required"`

	LinkedInProfile string `json:"linkedInProfile" validate:"omitempty,url"`
	GithubProfile   string `json:"githubProfile" validate:"omitempty,url"`

	HowDidYouKnow              string `json:"howDidYouKnow" validate:"required,oneof=SOCIAL_MEDIA FRIENDS ALUMNI WEBSITE SCHOOL NEWSPAPER RADIO TV EVENT OTHER"`
	HowDidYouKnowSpecification string `json:"howDidYouKnowSpecification"`
	Motivation                 string `json:"motivation" validate:"required,min=50"`
	AdditionalFeedback         string `json:"additionalFeedback"`

	CourseID string `json:"courseId" validate:"required"`
}

var submissionOrder = fieldOrder(reflect.TypeOf(Submission{}))

var submissionMessages = map[string]string{
	"fullName.min":                 "Full name must be at least 2 characters.",
	"email.email":                  "Please enter a valid email address.",
	"gender.oneof":                 "Please select a gender.",
	"phone.len":                    "Phone number must be exactly 10 digits.",
	"nationality.min":              "Nationality is required.",
	"nationalId.national_id":       "National ID must be exactly 16 digits",
	"emergencyContactName.min":     "Emergency contact name is required.",
	"emergencyContactRelation.min": "Relationship is required.",
	"emergencyContactPhone.min":    "Emergency contact phone is required.",
	"currentOccupation.oneof":      "Please select your current occupation.",
	"educationBackground.oneof":    "Please select your education background.",
	"academicBackground.min":       "Academic background is required.",
	"englishProficiency.oneof":     "Please select your English proficiency.",
	"englishSkillConfidence.oneof": "Please select your most confident English skill.",
	"linkedInProfile.url":          "Please enter a valid LinkedIn URL.",
	"githubProfile.url":            "Please enter a valid GitHub URL.",
	"howDidYouKnow.oneof":          "Please select how you heard about us.",
	"motivation.min":               "Motivation must be at least 50 characters.",
}

// submissionRules enforces requirements that depend on sibling fields.
func submissionRules(sl validator.StructLevel) {
	s := sl.Current().Interface().(Submission)

	if s.RefugeeStatus && strings.TrimSpace(s.RefugeeID) == "" {
		sl.ReportError(s.RefugeeID, "refugeeId", "RefugeeID", "required", "")
	}
	if s.HasDisability && strings.TrimSpace(s.DisabilityType) == "" {
		sl.ReportError(s.DisabilityType, "disabilityType", "DisabilityType", "required", "")
	}
	if types.Education(s.EducationBackground).UniversityLevel() && strings.TrimSpace(s.University) == "" {
		sl.ReportError(s.University, "university", "University", "required", "")
	}
	if types.Source(s.HowDidYouKnow).NeedsSpecification() && strings.TrimSpace(s.HowDidYouKnowSpecification) == "" {
		sl.ReportError(s.HowDidYouKnowSpecification, "howDidYouKnowSpecification", "HowDidYouKnowSpecification", "required", "")
	}
}

// Identity is either a Refugee or a Citizen; exactly one identifier is kept.
type Identity interface {
	apply(a *models.Application)
}

type Refugee struct {
	RefugeeID string
}

type Citizen struct {
	NationalID string
}

func (r Refugee) apply(a *models.Application) {
	a.RefugeeStatus = true
	a.RefugeeID = optional(r.RefugeeID)
	a.NationalID = nil
}

func (c Citizen) apply(a *models.Application) {
	a.RefugeeStatus = false
	a.RefugeeID = nil
	a.NationalID = optional(c.NationalID)
}

// Disability is either NoDisability or a Disabled record with its details.
type Disability interface {
	apply(a *models.Application)
}

type NoDisability struct{}

type Disabled struct {
	Type    types.DisabilityType
	Details string
}

func (NoDisability) apply(a *models.Application) {
	a.HasDisability = false
	a.DisabilityType = nil
	a.DisabilityDetails = nil
}

func (d Disabled) apply(a *models.Application) {
	kind := d.Type
	a.HasDisability = true
	a.DisabilityType = &kind
	a.DisabilityDetails = optional(d.Details)
}

func (s Submission) Identity() Identity {
	if s.RefugeeStatus {
		return Refugee{RefugeeID: s.RefugeeID}
	}
	return Citizen{NationalID: s.NationalID}
}

func (s Submission) Disability() Disability {
	if s.HasDisability {
		return Disabled{Type: types.DisabilityType(s.DisabilityType), Details: s.DisabilityDetails}
	}
	return NoDisability{}
}

// Normalize trims every free-text field and lower-cases the email.
func (s Submission) Normalize() Submission {
	trim := func(fields ...*string) {
		for _, f := range fields {
			*f = strings.TrimSpace(*f)
		}
	}
	trim(&s.FullName, &s.Email, &s.DateOfBirth, &s.Gender, &s.Phone, &s.Nationality,
		&s.RefugeeID, &s.NationalID, &s.DisabilityType, &s.DisabilityDetails,
		&s.Province, &s.District, &s.Sector, &s.Cell, &s.Village,
		&s.EmergencyContactName, &s.EmergencyContactRelation, &s.EmergencyContactPhone,
		&s.CurrentOccupation, &s.EducationBackground, &s.University, &s.AcademicBackground,
		&s.EnglishProficiency, &s.EnglishSkillConfidence, &s.LinkedInProfile, &s.GithubProfile,
		&s.HowDidYouKnow, &s.HowDidYouKnowSpecification, &s.Motivation, &s.AdditionalFeedback,
		&s.CourseID)
	s.Email = strings.ToLower(s.Email)
	return s
}

// Validate checks a submission and returns the record it describes, ready
// to be persisted. The record carries no id, timestamps or status.
func Validate(raw Submission) (*models.Application, error) {
	s := raw.Normalize()

	fields := run(s, submissionMessages)

	dob, dateErr := ParseDate(s.DateOfBirth)
	if s.DateOfBirth != "" && dateErr != nil {
		fields = append(fields, apperr.FieldError{Path: "dateOfBirth", Message: "Please enter a valid date of birth."})
		sortFields(fields, submissionOrder)
	}

	if len(fields) > 0 {
		return nil, failed(fields)
	}

	application := &models.Application{
		FullName:                 s.FullName,
		Email:                    s.Email,
		DateOfBirth:              datatypes.Date(dob),
		Gender:                   types.Gender(s.Gender),
		Phone:                    s.Phone,
		Nationality:              s.Nationality,
		Province:                 s.Province,
		District:                 s.District,
		Sector:                   s.Sector,
		Cell:                     s.Cell,
		Village:                  s.Village,
		EmergencyContactName:     s.EmergencyContactName,
		EmergencyContactRelation: s.EmergencyContactRelation,
		EmergencyContactPhone:    s.EmergencyContactPhone,
		HasYoungChild:            s.HasYoungChild,
		HasLaptop:                s.HasLaptop,
		CurrentOccupation:        types.Occupation(s.CurrentOccupation),
		EducationBackground:      types.Education(s.EducationBackground),
		University:               optional(s.University),
		AcademicBackground:       s.AcademicBackground,
		EnglishProficiency:       types.EnglishProficiency(s.EnglishProficiency),
		EnglishSkillConfidence:   types.EnglishSkill(s.EnglishSkillConfidence),
		CanPayRegistrationFee:    *s.CanPayRegistrationFee,
		LinkedInProfile:          optional(s.LinkedInProfile),
		GithubProfile:            optional(s.GithubProfile),
		HowDidYouKnow:            types.Source(s.HowDidYouKnow),
		Motivation:               s.Motivation,
		AdditionalFeedback:       optional(s.AdditionalFeedback),
		CourseID:                 s.CourseID,
	}

	s.Identity().apply(application)
	s.Disability().apply(application)

	if s.HasYoungChild && s.HasChildcareSupport != nil {
		support := *s.HasChildcareSupport
		application.HasChildcareSupport = &support
	}
	if types.Source(s.HowDidYouKnow).NeedsSpecification() {
		application.HowDidYouKnowSpecification = optional(s.HowDidYouKnowSpecification)
	}

	return application, nil
}
