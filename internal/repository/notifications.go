package repository

import (
	"context"

	"github.com/applyhub/applyhub/internal/models"
	"gorm.io/gorm"
)

type Notifications struct {
	db *gorm.DB
}

func (r *Notifications) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Omit("Application", "Email").Create(notification).Error
}

func (r *Notifications) ListByApplication(ctx context.Context, applicationID string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
