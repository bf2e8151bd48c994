package repository

import (
	"context"
	"errors"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"gorm.io/gorm"
)

const msgCourseInUse = "Cannot delete course with existing applications"

type Courses struct {
	db *gorm.DB
}

func (r *Courses) List(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *Courses) FindByID(ctx context.Context, id string) (*models.Course, error) {
	return findCourse(r.db.WithContext(ctx), id)
}

func findCourse(tx *gorm.DB, id string) (*models.Course, error) {
	var course models.Course
	err := tx.Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound(MsgCourseNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *Courses) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *Courses) Update(ctx context.Context, id string, patch CoursePatch) (*models.Course, error) {
	var updated *models.Course
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := findCourse(tx, id)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if len(updates) > 0 {
			if err := tx.Model(course).Updates(updates).Error; err != nil {
				return err
			}
		}
		updated, err = findCourse(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a course that no application references. A concurrent
// insert between the count and the delete is rejected by the RESTRICT
// foreign key and reported as the same conflict.
func (r *Courses) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := findCourse(tx, id)
		if err != nil {
			return err
		}

		count, err := countApplications(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict(msgCourseInUse)
		}

		if err := tx.Delete(course).Error; err != nil {
			if isForeignKeyViolation(err) {
				return apperr.Conflict(msgCourseInUse)
			}
			return err
		}
		return nil
	})
}
