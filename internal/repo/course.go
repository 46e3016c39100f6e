package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gmodebadze/edu_platform/internal/apperr"
	"github.com/gmodebadze/edu_platform/internal/models"
)

type CourseRepo struct {
	DB *gorm.DB
}

func (r *CourseRepo) FindByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course was not found")
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepo) Create(ctx context.Context, course *models.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *CourseRepo) Save(ctx context.Context, course *models.Course) error {
	return r.DB.WithContext(ctx).Save(course).Error
}

func (r *CourseRepo) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("course was not found")
	}
	return nil
}

// List pages through courses ordered by the given column, newest first is
// the default ("id DESC"). Returns the page and the unpaged total.
func (r *CourseRepo) List(ctx context.Context, order string, offset, limit int) ([]models.Course, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []models.Course
	err := r.DB.WithContext(ctx).Model(&models.Course{}).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}
