package services

import (
	"context"
	"log/slog"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/applyhub/applyhub/internal/validation"
	"github.com/microcosm-cc/bluemonday"
)

const (
	MsgCourseDeleted = "Course deleted successfully"
	MsgEmailDeleted  = "Email deleted successfully"
)

type CourseService struct {
	courses repository.CourseRepository
	refresh Refresher
	logger  *slog.Logger
}

func NewCourseService(courses repository.CourseRepository, refresh Refresher, logger *slog.Logger) *CourseService {
	return &CourseService{courses: courses, refresh: refresherOrNoop(refresh), logger: loggerOrDefault(logger)}
}

func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, internal(s.logger, "list courses", err)
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, internal(s.logger, "get course", err)
	}
	return course, nil
}

func (s *CourseService) Create(ctx context.Context, in validation.CourseInput) (*models.Course, error) {
	course, err := validation.ValidateCourse(in)
	if err != nil {
		return nil, err
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, internal(s.logger, "create course", err)
	}
	s.refresh.Broadcast(EventCourses)
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id string, in validation.CourseInput) (*models.Course, error) {
	patch, err := validation.ValidateCoursePatch(in)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.Update(ctx, id, patch)
	if err != nil {
		return nil, internal(s.logger, "update course", err)
	}
	s.refresh.Broadcast(EventCourses)
	return course, nil
}

// Delete refuses to remove a course that applications still reference.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		return internal(s.logger, "delete course", err)
	}
	s.logger.Info("course deleted", "course_id", id)
	s.refresh.Broadcast(EventCourses)
	return nil
}

// EmailService manages notification templates. Bodies are sanitised before
// they are stored.
type EmailService struct {
	emails    repository.EmailRepository
	sanitizer *bluemonday.Policy
	refresh   Refresher
	logger    *slog.Logger
}

func NewEmailService(emails repository.EmailRepository, refresh Refresher, logger *slog.Logger) *EmailService {
	return &EmailService{
		emails:    emails,
		sanitizer: NewSanitizer(),
		refresh:   refresherOrNoop(refresh),
		logger:    loggerOrDefault(logger),
	}
}

func (s *EmailService) List(ctx context.Context) ([]models.Email, error) {
	emails, err := s.emails.List(ctx)
	if err != nil {
		return nil, internal(s.logger, "list emails", err)
	}
	return emails, nil
}

func (s *EmailService) Get(ctx context.Context, id string) (*models.Email, error) {
	email, err := s.emails.FindByID(ctx, id)
	if err != nil {
		return nil, internal(s.logger, "get email", err)
	}
	return email, nil
}

func (s *EmailService) Create(ctx context.Context, in validation.EmailInput) (*models.Email, error) {
	email, err := validation.ValidateEmail(in)
	if err != nil {
		return nil, err
	}
	email.Body = s.sanitizer.Sanitize(email.Body)

	if err := s.emails.Create(ctx, email); err != nil {
		return nil, internal(s.logger, "create email", err)
	}
	s.refresh.Broadcast(EventEmails)
	return s.Get(ctx, email.ID)
}

func (s *EmailService) Update(ctx context.Context, id string, in validation.EmailInput) (*models.Email, error) {
	email, err := validation.ValidateEmail(in)
	if err != nil {
		return nil, err
	}
	email.ID = id
	email.Body = s.sanitizer.Sanitize(email.Body)

	if err := s.emails.Update(ctx, email); err != nil {
		return nil, internal(s.logger, "update email", err)
	}
	s.refresh.Broadcast(EventEmails)
	return s.Get(ctx, id)
}

func (s *EmailService) Delete(ctx context.Context, id string) error {
	if err := s.emails.Delete(ctx, id); err != nil {
		return internal(s.logger, "delete email", err)
	}
	s.refresh.Broadcast(EventEmails)
	return nil
}

// internal passes domain errors through and hides everything else behind
// a generic message.
func internal(logger *slog.Logger, op string, err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	logger.Error(op, "error", err)
	return apperr.Internal("Internal server error", err)
}
