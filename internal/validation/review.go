package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/applyhub/applyhub/internal/types"
)

// ModifiedEmail overrides the subject and/or body of a selected template.
// Empty parts fall back to the template.
type ModifiedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ReviewInput is what an administrator sends to update an application.
type ReviewInput struct {
	Status                  string         `json:"status" validate:"omitempty,oneof=UNDER_REVIEW TECHNICAL_INTERVIEW_SCHEDULED TECHNICAL_INTERVIEWED COMMON_INTERVIEW_SCHEDULED COMMON_INTERVIEWED ACCEPTED REJECTED WAITLISTED WITHDRAWN NEEDS_FOLLOW_UP"`
	ReviewerComments        *string        `json:"reviewerComments"`
	InterviewDate           *string        `json:"interviewDate"`
	DecisionDate            *string        `json:"decisionDate"`
	TechnicalInterviewMarks *float64       `json:"technicalInterviewMarks" validate:"omitempty,min=0,max=100"`
	SendEmail               bool           `json:"sendEmail"`
	SelectedEmailID         string         `json:"selectedEmailId" validate:"required_if=SendEmail true"`
	ModifiedEmail           *ModifiedEmail `json:"modifiedEmail"`
}

// Review is a validated reviewer update.
type Review struct {
	Fields          repository.ReviewFields
	SendEmail       bool
	SelectedEmailID string
	Override        *ModifiedEmail
}

var reviewOrder = fieldOrder(reflect.TypeOf(ReviewInput{}))

var reviewMessages = map[string]string{
	"status.required":             "Status is required",
	"status.oneof":                "Invalid status",
	"technicalInterviewMarks.min": "Technical interview marks must be between 0 and 100",
	"technicalInterviewMarks.max": "Technical interview marks must be between 0 and 100",
	"selectedEmailId.required_if": "Please select an email template",
	"interviewDate.date":          "Invalid interview date",
	"decisionDate.date":           "Invalid decision date",
}

// ValidateReview checks a full review action. Review fields missing from
// the input are cleared, matching the admin form which always posts every
// field.
func ValidateReview(in ReviewInput) (*Review, error) {
	return validateReview(in, false)
}

// ValidatePatch checks a partial update. Omitted fields stay unchanged and
// an email is never sent.
func ValidatePatch(in ReviewInput) (*Review, error) {
	in.SendEmail = false
	in.SelectedEmailID = ""
	in.ModifiedEmail = nil
	return validateReview(in, true)
}

func validateReview(in ReviewInput, partial bool) (*Review, error) {
	in.Status = strings.TrimSpace(in.Status)
	in.SelectedEmailID = strings.TrimSpace(in.SelectedEmailID)

	fields := run(in, reviewMessages)
	if !partial && in.Status == "" {
		fields = append(fields, apperr.FieldError{Path: "status", Message: reviewMessages["status.required"]})
	}

	interview, ok := reviewDate(in.InterviewDate)
	if !ok {
		fields = append(fields, apperr.FieldError{Path: "interviewDate", Message: reviewMessages["interviewDate.date"]})
	}
	decision, ok := reviewDate(in.DecisionDate)
	if !ok {
		fields = append(fields, apperr.FieldError{Path: "decisionDate", Message: reviewMessages["decisionDate.date"]})
	}

	if len(fields) > 0 {
		sortFields(fields, reviewOrder)
		return nil, failed(fields)
	}

	review := &Review{
		Fields: repository.ReviewFields{
			ReviewerComments:        trimmed(in.ReviewerComments, partial),
			InterviewDate:           interview,
			DecisionDate:            decision,
			TechnicalInterviewMarks: in.TechnicalInterviewMarks,
			ClearUnset:              !partial,
		},
		SendEmail:       in.SendEmail && in.SelectedEmailID != "",
		SelectedEmailID: in.SelectedEmailID,
	}
	if in.Status != "" {
		status := types.Status(in.Status)
		review.Fields.Status = &status
	}
	if in.ModifiedEmail != nil {
		override := ModifiedEmail{
			Subject: strings.TrimSpace(in.ModifiedEmail.Subject),
			Body:    strings.TrimSpace(in.ModifiedEmail.Body),
		}
		if override.Subject != "" || override.Body != "" {
			review.Override = &override
		}
	}
	return review, nil
}

// reviewDate parses an optional date. Blank values mean no date.
func reviewDate(value *string) (*time.Time, bool) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, true
	}
	parsed, err := ParseDate(*value)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}

// trimmed keeps an explicit empty string in partial mode so a PATCH can
// blank out comments.
func trimmed(value *string, partial bool) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" && !partial {
		return nil
	}
	return &v
}
