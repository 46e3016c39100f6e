package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gmodebadze/edu_platform/internal/apperr"
	"github.com/gmodebadze/edu_platform/internal/models"
)

type RoleRepo struct {
	DB *gorm.DB
}

func (r *RoleRepo) FindByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("role not found")
		}
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) Create(ctx context.Context, role *models.Role) error {
	var existing models.Role
	err := r.DB.WithContext(ctx).Where("name = ?", role.Name).First(&existing).Error
	if err == nil {
		return apperr.Conflict("role already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.WithContext(ctx).Create(role).Error
}
