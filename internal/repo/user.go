package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gmodebadze/edu_platform/internal/apperr"
	"github.com/gmodebadze/edu_platform/internal/models"
)

type UserRepo struct {
	DB *gorm.DB
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername resolves the role relation too, the admin gate needs it.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsernameOrEmail is the lookup behind token verification: the token
// subject is an email on the regular path and a username on the admin one.
func (r *UserRepo) FindByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Preload("Courses").Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts the user and relies on the unique constraints to serialize
// concurrent registrations. On failure it re-queries to tell the caller
// which of the two unique fields was taken.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		return r.classifyConflict(ctx, u, err)
	}
	return nil
}

func (r *UserRepo) classifyConflict(ctx context.Context, u *models.User, cause error) error {
	var existing []models.User
	if err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Find(&existing).Error; err != nil {
		return cause
	}

	usernameTaken, emailTaken := false, false
	for _, e := range existing {
		if e.Username == u.Username {
			usernameTaken = true
		}
		if e.Email == u.Email {
			emailTaken = true
		}
	}

	switch {
	case usernameTaken && emailTaken:
		return apperr.Conflict("both username and email already exist")
	case usernameTaken:
		return apperr.Conflict("username is already in use")
	case emailTaken:
		return apperr.Conflict("email is already in use")
	default:
		return cause
	}
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	result := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepo) Save(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Save(u).Error
}

// Delete removes the user and every course the user authored in one
// transaction, so a deleted account cannot leave orphaned courses behind.
func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user not found")
			}
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Course{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
