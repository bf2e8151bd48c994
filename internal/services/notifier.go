package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/applyhub/applyhub/internal/validation"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
)

const (
	MsgEmailTemplateNotFound = "Selected email template not found"
	MsgEmailNotSent          = "Application updated but the email could not be sent"
)

// Notifier sends the review email for an application whose update has
// already been stored.
type Notifier interface {
	Notify(ctx context.Context, application *models.Application, emailID string, override *validation.ModifiedEmail) (*models.Notification, error)
}

// EmailNotifier renders a stored template, sends it and logs the outcome.
type EmailNotifier struct {
	emails        repository.EmailRepository
	notifications repository.NotificationRepository
	sender        Sender
	sanitizer     *bluemonday.Policy
	logger        *slog.Logger
	now           func() time.Time
}

func NewEmailNotifier(emails repository.EmailRepository, notifications repository.NotificationRepository, sender Sender, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{
		emails:        emails,
		notifications: notifications,
		sender:        sender,
		sanitizer:     NewSanitizer(),
		logger:        loggerOrDefault(logger),
		now:           time.Now,
	}
}

type notificationMetadata struct {
	From            string `json:"from,omitempty"`
	CC              string `json:"cc,omitempty"`
	SubjectOverride bool   `json:"subjectOverride"`
	BodyOverride    bool   `json:"bodyOverride"`
	ReviewStatus    string `json:"status"`
}

func (n *EmailNotifier) Notify(ctx context.Context, application *models.Application, emailID string, override *validation.ModifiedEmail) (*models.Notification, error) {
	template, err := n.emails.FindByID(ctx, emailID)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.New(apperr.CodeIntegrity, MsgEmailTemplateNotFound, nil)
		}
		return nil, err
	}

	subject, body := template.Subject, template.Body
	meta := notificationMetadata{ReviewStatus: string(application.Status)}
	if override != nil {
		if override.Subject != "" {
			subject = override.Subject
			meta.SubjectOverride = true
		}
		if override.Body != "" {
			body = n.sanitizer.Sanitize(override.Body)
			meta.BodyOverride = true
		}
	}

	delivery, sendErr := n.sender.Send(ctx, Message{To: application.Email, Subject: subject, HTML: body})
	meta.From = delivery.From
	meta.CC = delivery.CC

	notification := &models.Notification{
		ApplicationID: application.ID,
		EmailID:       &template.ID,
		Recipient:     application.Email,
		Subject:       subject,
		Status:        models.NotificationSent,
		Attempts:      delivery.Attempts,
	}
	if sendErr != nil {
		notification.Status = models.NotificationFailed
		notification.Message = sendErr.Error()
	} else {
		sentAt := n.now()
		notification.SentAt = &sentAt
	}
	if raw, err := json.Marshal(meta); err == nil {
		notification.Metadata = datatypes.JSON(raw)
	}

	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Error("record notification", "application_id", application.ID, "error", err)
	}

	if sendErr != nil {
		return notification, apperr.New(apperr.CodeDependency, MsgEmailNotSent, sendErr)
	}
	return notification, nil
}
