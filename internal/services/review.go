package services

import (
	"context"
	"log/slog"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/applyhub/applyhub/internal/validation"
)

const (
	MsgApplicationUpdated = "Application updated successfully"
	msgUpdateFailed       = "Failed to update application"
)

// ReviewResult reports what a review did. Updated stays true when the
// record was stored but the notification step failed.
type ReviewResult struct {
	Application  *models.Application  `json:"application,omitempty"`
	Updated      bool                 `json:"updated"`
	Notification *models.Notification `json:"notification,omitempty"`
	Message      string               `json:"message"`
}

type ReviewService struct {
	applications repository.ApplicationRepository
	notifier     Notifier
	refresh      Refresher
	logger       *slog.Logger
}

func NewReviewService(applications repository.ApplicationRepository, notifier Notifier, refresh Refresher, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		applications: applications,
		notifier:     notifier,
		refresh:      refresherOrNoop(refresh),
		logger:       loggerOrDefault(logger),
	}
}

// Review applies a reviewer's full update and, when asked, sends the
// selected email. The update is stored before the email is sent and is
// not undone if sending fails; in that case both a result and an error are
// returned.
func (s *ReviewService) Review(ctx context.Context, id string, in validation.ReviewInput) (*ReviewResult, error) {
	review, err := validation.ValidateReview(in)
	if err != nil {
		return nil, err
	}

	application, err := s.update(ctx, id, review)
	if err != nil {
		return nil, err
	}

	result := &ReviewResult{Application: application, Updated: true, Message: MsgApplicationUpdated}

	if review.SendEmail {
		if s.notifier == nil {
			s.logger.Error("review asked for an email but no notifier is configured", "application_id", id)
			result.Message = MsgEmailNotSent
			return result, apperr.New(apperr.CodeDependency, MsgEmailNotSent, nil)
		}
		notification, err := s.notifier.Notify(ctx, application, review.SelectedEmailID, review.Override)
		result.Notification = notification
		if err != nil {
			s.logger.Error("review notification failed", "application_id", id, "email_id", review.SelectedEmailID, "error", err)
			if appErr, ok := apperr.As(err); ok {
				result.Message = appErr.Message
				return result, err
			}
			result.Message = MsgEmailNotSent
			return result, apperr.New(apperr.CodeDependency, MsgEmailNotSent, err)
		}
	}

	return result, nil
}

// Patch applies a partial update; omitted fields keep their values.
func (s *ReviewService) Patch(ctx context.Context, id string, in validation.ReviewInput) (*models.Application, error) {
	review, err := validation.ValidatePatch(in)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, review)
}

func (s *ReviewService) update(ctx context.Context, id string, review *validation.Review) (*models.Application, error) {
	if _, err := s.applications.FindByID(ctx, id); err != nil {
		return nil, s.wrap(id, err)
	}

	application, err := s.applications.UpdateReview(ctx, id, review.Fields)
	if err != nil {
		return nil, s.wrap(id, err)
	}

	s.logger.Info("application reviewed", "application_id", id, "status", application.Status)
	s.refresh.Broadcast(EventApplications)
	return application, nil
}

func (s *ReviewService) wrap(id string, err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	s.logger.Error("update application", "application_id", id, "error", err)
	return apperr.Internal(msgUpdateFailed, err)
}
