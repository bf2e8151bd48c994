package repository

import (
	"context"
	"errors"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"gorm.io/gorm"
)

type Admins struct {
	db *gorm.DB
}

func (r *Admins) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(MsgAdminNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *Admins) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(MsgAdminNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *Admins) Create(ctx context.Context, admin *models.Admin) error {
	err := r.db.WithContext(ctx).Create(admin).Error
	if err != nil && isDuplicate(err) {
		return apperr.Conflict("Email already exists")
	}
	return err
}
