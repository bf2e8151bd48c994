package services

import (
	"context"
	"log/slog"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/applyhub/applyhub/internal/stats"
)

const (
	MsgApplicationDeleted = "Application deleted successfully"
	msgFetchFailed        = "Failed to fetch applications"
)

// Dashboard is the admin list view: the filtered applications plus
// statistics over every application.
type Dashboard struct {
	Success      bool                 `json:"success"`
	Applications []models.Application `json:"applications"`
	Statistics   stats.Statistics     `json:"statistics"`
}

type ApplicationService struct {
	applications  repository.ApplicationRepository
	notifications repository.NotificationRepository
	refresh       Refresher
	logger        *slog.Logger
}

func NewApplicationService(applications repository.ApplicationRepository, notifications repository.NotificationRepository, refresh Refresher, logger *slog.Logger) *ApplicationService {
	return &ApplicationService{
		applications:  applications,
		notifications: notifications,
		refresh:       refresherOrNoop(refresh),
		logger:        loggerOrDefault(logger),
	}
}

func (s *ApplicationService) List(ctx context.Context) ([]models.Application, error) {
	applications, err := s.applications.List(ctx, repository.ApplicationFilter{})
	if err != nil {
		s.logger.Error("list applications", "error", err)
		return nil, apperr.Internal(msgFetchFailed, err)
	}
	return applications, nil
}

func (s *ApplicationService) Dashboard(ctx context.Context, filter repository.ApplicationFilter) (*Dashboard, error) {
	all, err := s.applications.List(ctx, repository.ApplicationFilter{})
	if err != nil {
		s.logger.Error("list applications", "error", err)
		return nil, apperr.Internal(msgFetchFailed, err)
	}

	dashboard := &Dashboard{Success: true, Applications: all, Statistics: stats.Compute(all)}

	if filter != (repository.ApplicationFilter{}) {
		filtered, err := s.applications.List(ctx, filter)
		if err != nil {
			s.logger.Error("list filtered applications", "error", err)
			return nil, apperr.Internal(msgFetchFailed, err)
		}
		dashboard.Applications = filtered
	}
	return dashboard, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap("get application", err)
	}
	return application, nil
}

func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	if err := s.applications.Delete(ctx, id); err != nil {
		return s.wrap("delete application", err)
	}
	s.logger.Info("application deleted", "application_id", id)
	s.refresh.Broadcast(EventApplications)
	return nil
}

// Notifications lists the emails sent for an application, newest first.
func (s *ApplicationService) Notifications(ctx context.Context, id string) ([]models.Notification, error) {
	if _, err := s.applications.FindByID(ctx, id); err != nil {
		return nil, s.wrap("get application", err)
	}
	notifications, err := s.notifications.ListByApplication(ctx, id)
	if err != nil {
		return nil, s.wrap("list notifications", err)
	}
	return notifications, nil
}

func (s *ApplicationService) wrap(op string, err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	s.logger.Error(op, "error", err)
	return apperr.Internal("Internal server error", err)
}
