package services

import (
	"context"
	"log/slog"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/applyhub/applyhub/internal/types"
	"github.com/applyhub/applyhub/internal/validation"
)

const (
	MsgDuplicateEmail = "An application with this email already exists"
	MsgCourseMissing  = "Selected course does not exist"
	msgSubmitFailed   = "Failed to submit application"
)

type IntakeService struct {
	applications repository.ApplicationRepository
	courses      repository.CourseRepository
	refresh      Refresher
	logger       *slog.Logger
}

func NewIntakeService(applications repository.ApplicationRepository, courses repository.CourseRepository, refresh Refresher, logger *slog.Logger) *IntakeService {
	return &IntakeService{
		applications: applications,
		courses:      courses,
		refresh:      refresherOrNoop(refresh),
		logger:       loggerOrDefault(logger),
	}
}

// Submit validates and stores a public application. The email pre-check
// only gives a friendly early answer; the store's unique index decides
// concurrent submissions.
func (s *IntakeService) Submit(ctx context.Context, submission validation.Submission) (*models.Application, error) {
	application, err := validation.Validate(submission)
	if err != nil {
		return nil, err
	}

	existing, err := s.applications.FindByEmail(ctx, application.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apperr.Conflict(MsgDuplicateEmail)
	case err != nil && !apperr.Is(err, apperr.CodeNotFound):
		s.logger.Error("check duplicate email", "error", err)
		return nil, apperr.Internal(msgSubmitFailed, err)
	}

	if _, err := s.courses.FindByID(ctx, application.CourseID); err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.New(apperr.CodeIntegrity, MsgCourseMissing, nil)
		}
		s.logger.Error("check course", "course_id", application.CourseID, "error", err)
		return nil, apperr.Internal(msgSubmitFailed, err)
	}

	application.Status = types.StatusUnderReview

	if err := s.applications.Create(ctx, application); err != nil {
		if apperr.Is(err, apperr.CodeConflict) {
			return nil, apperr.Conflict(MsgDuplicateEmail)
		}
		if apperr.Is(err, apperr.CodeIntegrity) {
			return nil, apperr.New(apperr.CodeIntegrity, MsgCourseMissing, nil)
		}
		s.logger.Error("create application", "error", err)
		return nil, apperr.Internal(msgSubmitFailed, err)
	}

	s.logger.Info("application submitted", "application_id", application.ID, "course_id", application.CourseID)
	s.refresh.Broadcast(EventApplications)

	return application, nil
}
