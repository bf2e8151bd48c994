package validation

import (
	"reflect"
	"strings"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
)

type CourseInput struct {
	Name        *string `json:"name" validate:"required"`
	Description *string `json:"description"`
}

var courseMessages = map[string]string{
	"name.required": "Course name is required",
	"name.min":      "Course name is required",
}

// ValidateCourse checks a new course.
func ValidateCourse(in CourseInput) (*models.Course, error) {
	var name string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return nil, apperr.Validation(courseMessages["name.required"], []apperr.FieldError{
			{Path: "name", Message: courseMessages["name.required"]},
		})
	}
	return &models.Course{Name: name, Description: optional(deref(in.Description))}, nil
}

// ValidateCoursePatch checks a partial course update. A present name must
// not be blank.
func ValidateCoursePatch(in CourseInput) (repository.CoursePatch, error) {
	var patch repository.CoursePatch
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return patch, apperr.Validation(courseMessages["name.min"], []apperr.FieldError{
				{Path: "name", Message: courseMessages["name.min"]},
			})
		}
		patch.Name = &name
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		patch.Description = &description
	}
	return patch, nil
}

// EmailInput is an email template as posted by the admin editor.
type EmailInput struct {
	Subject        string `json:"subject" validate:"required"`
	Body           string `json:"body" validate:"required"`
	CourseID       string `json:"courseId" validate:"required"`
	InvitationDate string `json:"invitationDate"`
}

var emailOrder = fieldOrder(reflect.TypeOf(EmailInput{}))

var emailMessages = map[string]string{
	"subject.required":    "Subject is required",
	"body.required":       "Body is required",
	"courseId.required":   "Course is required",
	"invitationDate.date": "Invalid invitation date",
}

// ValidateEmail checks a template. The body is returned as posted; callers
// sanitise it before storage.
func ValidateEmail(in EmailInput) (*models.Email, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Body = strings.TrimSpace(in.Body)
	in.CourseID = strings.TrimSpace(in.CourseID)

	fields := run(in, emailMessages)
	invitation, ok := reviewDate(&in.InvitationDate)
	if !ok {
		fields = append(fields, apperr.FieldError{Path: "invitationDate", Message: emailMessages["invitationDate.date"]})
		sortFields(fields, emailOrder)
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields[0].Message, fields)
	}

	return &models.Email{
		Subject:        in.Subject,
		Body:           in.Body,
		CourseID:       in.CourseID,
		InvitationDate: invitation,
	}, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
