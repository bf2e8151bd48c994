// Package repository persists applications, courses, email templates, admins
// and the notification log through gorm.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/types"
	"gorm.io/gorm"
)

const (
	MsgApplicationNotFound = "Application not found"
	MsgCourseNotFound      = "Course not found"
	MsgEmailNotFound       = "Email not found"
	MsgAdminNotFound       = "Admin not found"
)

type ApplicationFilter struct {
	Search   string
	Status   types.Status
	CourseID string
}

// ReviewFields is the set of reviewer-owned columns to write. Nil fields are
// left untouched unless ClearUnset is set, in which case they become NULL.
type ReviewFields struct {
	Status                  *types.Status
	ReviewerComments        *string
	InterviewDate           *time.Time
	DecisionDate            *time.Time
	TechnicalInterviewMarks *float64
	ClearUnset              bool
}

type CoursePatch struct {
	Name        *string
	Description *string
}

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	FindByID(ctx context.Context, id string) (*models.Application, error)
	FindByEmail(ctx context.Context, email string) (*models.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)
	UpdateReview(ctx context.Context, id string, fields ReviewFields) (*models.Application, error)
	Delete(ctx context.Context, id string) error
}

type CourseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id string, patch CoursePatch) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

type EmailRepository interface {
	List(ctx context.Context) ([]models.Email, error)
	FindByID(ctx context.Context, id string) (*models.Email, error)
	Create(ctx context.Context, email *models.Email) error
	Update(ctx context.Context, email *models.Email) error
	Delete(ctx context.Context, id string) error
}

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByApplication(ctx context.Context, applicationID string) ([]models.Notification, error)
}

// Store bundles the gorm-backed repositories over one connection.
type Store struct {
	DB            *gorm.DB
	Applications  *Applications
	Courses       *Courses
	Emails        *Emails
	Admins        *Admins
	Notifications *Notifications
}

func New(db *gorm.DB) *Store {
	return &Store{
		DB:            db,
		Applications:  &Applications{db: db},
		Courses:       &Courses{db: db},
		Emails:        &Emails{db: db},
		Admins:        &Admins{db: db},
		Notifications: &Notifications{db: db},
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}
