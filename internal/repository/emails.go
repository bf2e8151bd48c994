package repository

import (
	"context"
	"errors"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"gorm.io/gorm"
)

type Emails struct {
	db *gorm.DB
}

// List returns templates newest first with their course joined.
func (r *Emails) List(ctx context.Context) ([]models.Email, error) {
	emails := []models.Email{}
	if err := r.db.WithContext(ctx).Preload("Course").Order("created_at DESC").Find(&emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *Emails) FindByID(ctx context.Context, id string) (*models.Email, error) {
	var email models.Email
	err := r.db.WithContext(ctx).Preload("Course").Where("id = ?", id).First(&email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(MsgEmailNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &email, nil
}

func (r *Emails) Create(ctx context.Context, email *models.Email) error {
	err := r.db.WithContext(ctx).Omit("Course").Create(email).Error
	if err != nil && isForeignKeyViolation(err) {
		return apperr.New(apperr.CodeIntegrity, "Selected course does not exist", err)
	}
	return err
}

// Update overwrites subject, body, course and invitation date of an
// existing template.
func (r *Emails) Update(ctx context.Context, email *models.Email) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Email
		if err := tx.Select("id").Where("id = ?", email.ID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(MsgEmailNotFound)
			}
			return err
		}
		return tx.Model(&existing).Updates(map[string]interface{}{
			"subject":         email.Subject,
			"body":            email.Body,
			"course_id":       email.CourseID,
			"invitation_date": email.InvitationDate,
		}).Error
	})
	if err != nil && isForeignKeyViolation(err) {
		return apperr.New(apperr.CodeIntegrity, "Selected course does not exist", err)
	}
	return err
}

func (r *Emails) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Email{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(MsgEmailNotFound)
	}
	return nil
}
