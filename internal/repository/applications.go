package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"gorm.io/gorm"
)

type Applications struct {
	db *gorm.DB
}

// Create inserts a new application. The unique index on email is the
// authoritative guard against concurrent duplicate submissions.
func (r *Applications) Create(ctx context.Context, application *models.Application) error {
	err := r.db.WithContext(ctx).Omit("Course").Create(application).Error
	if err == nil {
		return nil
	}
	if isDuplicate(err) {
		return apperr.Conflict("An application with this email already exists")
	}
	if isForeignKeyViolation(err) {
		return apperr.New(apperr.CodeIntegrity, "Selected course does not exist", err)
	}
	return err
}

func (r *Applications) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).Preload("Course").Where("id = ?", id).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(MsgApplicationNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *Applications) FindByEmail(ctx context.Context, email string) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(MsgApplicationNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// List returns applications newest first with their course joined.
func (r *Applications) List(ctx context.Context, filter ApplicationFilter) ([]models.Application, error) {
	query := r.db.WithContext(ctx).Preload("Course").Order("created_at DESC")

	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CourseID != "" {
		query = query.Where("course_id = ?", filter.CourseID)
	}

	applications := []models.Application{}
	if err := query.Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *Applications) UpdateReview(ctx context.Context, id string, fields ReviewFields) (*models.Application, error) {
	updates := map[string]interface{}{}

	if fields.Status != nil {
		updates["status"] = *fields.Status
	}
	setOrClear(updates, "reviewer_comments", fields.ReviewerComments, fields.ClearUnset)
	setOrClear(updates, "interview_date", fields.InterviewDate, fields.ClearUnset)
	setOrClear(updates, "decision_date", fields.DecisionDate, fields.ClearUnset)
	setOrClear(updates, "technical_interview_marks", fields.TechnicalInterviewMarks, fields.ClearUnset)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Application
		if err := tx.Select("id").Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(MsgApplicationNotFound)
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&existing).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func setOrClear[T any](updates map[string]interface{}, column string, value *T, clearUnset bool) {
	switch {
	case value != nil:
		updates[column] = *value
	case clearUnset:
		updates[column] = nil
	}
}

func (r *Applications) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Application{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(MsgApplicationNotFound)
	}
	return nil
}

// countApplications counts applications referencing courseID within tx.
func countApplications(tx *gorm.DB, courseID string) (int64, error) {
	var count int64
	err := tx.Model(&models.Application{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
