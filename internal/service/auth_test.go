package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gmodebadze/edu_platform/internal/apperr"
	"github.com/gmodebadze/edu_platform/internal/config"
	"github.com/gmodebadze/edu_platform/internal/models"
	"github.com/gmodebadze/edu_platform/internal/repo"
	"github.com/gmodebadze/edu_platform/internal/tokens"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	svc := &AuthService{
		Users:  &repo.UserRepo{DB: db},
		Roles:  &repo.RoleRepo{DB: db},
		Tokens: tokens.New([]byte("test_secret")),
	}
	return svc, db
}

func TestRegisterThenSignIn(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "new@example.com", "new_user", "Password1", 0))

	token, user, err := svc.SignIn(ctx, "new@example.com", "Password1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "new_user", user.Username)
	require.Equal(t, models.DefaultRoleID, user.RoleID)
	require.Equal(t, models.StatusActive, user.Status)

	claims, err := svc.Tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "new@example.com", claims.Subject)
}

func TestRegisterConflictMessages(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "taken@example.com", "taken_user", "Password1", 0))

	err := svc.Register(ctx, "fresh@example.com", "taken_user", "Password1", 0)
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Equal(t, "username is already in use", err.Error())

	err = svc.Register(ctx, "taken@example.com", "fresh_user", "Password1", 0)
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Equal(t, "email is already in use", err.Error())

	err = svc.Register(ctx, "taken@example.com", "taken_user", "Password1", 0)
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Equal(t, "both username and email already exist", err.Error())
}

func TestSignInGenericFailures(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "known@example.com", "known_user", "Password1", 0))

	_, _, errWrongPassword := svc.SignIn(ctx, "known@example.com", "WrongPassword1")
	require.ErrorIs(t, errWrongPassword, apperr.ErrUnauthorized)

	_, _, errUnknownEmail := svc.SignIn(ctx, "unknown@example.com", "Password1")
	require.ErrorIs(t, errUnknownEmail, apperr.ErrUnauthorized)

	// the two failures must be indistinguishable
	require.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestAdminSignInRoleFirst(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "admin@example.com", "admin_user", "Password1", models.AdminRoleID))
	require.NoError(t, svc.Register(ctx, "plain@example.com", "plain_user", "Password1", 0))

	token, err := svc.AdminSignIn(ctx, "admin_user", "Password1", models.AdminRoleID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "admin_user", claims.Subject)

	// correct password, wrong stored role
	_, err = svc.AdminSignIn(ctx, "plain_user", "Password1", models.AdminRoleID)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	// correct password, claimed role is not the admin one
	_, err = svc.AdminSignIn(ctx, "admin_user", "Password1", models.DefaultRoleID)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	// right role, wrong password
	_, err = svc.AdminSignIn(ctx, "admin_user", "WrongPassword1", models.AdminRoleID)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	// unknown username
	_, err = svc.AdminSignIn(ctx, "nobody", "Password1", models.AdminRoleID)
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestForgotPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "reset@example.com", "reset_user", "OldPassword1", 0))

	_, err := svc.ForgotPassword(ctx, "unknown@example.com", "NewPassword1")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.ForgotPassword(ctx, "reset@example.com", "NewPassword1")
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, "reset@example.com", "OldPassword1")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, _, err = svc.SignIn(ctx, "reset@example.com", "NewPassword1")
	require.NoError(t, err)
}

func TestEditProfileUsernameRules(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "edit@example.com", "edit_user", "Password1", 0))
	user, err := svc.Users.FindByEmail(ctx, "edit@example.com")
	require.NoError(t, err)

	_, err = svc.EditProfile(ctx, user, "abc", "", "")
	require.ErrorIs(t, err, apperr.ErrValidation)

	updated, err := svc.EditProfile(ctx, user, "", "new description", "")
	require.NoError(t, err)
	require.Equal(t, "edit_user", updated.Username)
	require.Equal(t, "new description", updated.Description)

	updated, err = svc.EditProfile(ctx, user, "fresh_name", "", "/uploads/avatar.png")
	require.NoError(t, err)
	require.Equal(t, "fresh_name", updated.Username)
	require.Equal(t, "new description", updated.Description)
	require.Equal(t, "/uploads/avatar.png", updated.ImageURL)

	// the minimum counts characters, not bytes
	_, err = svc.EditProfile(ctx, user, "გიო", "", "")
	require.ErrorIs(t, err, apperr.ErrValidation)

	updated, err = svc.EditProfile(ctx, user, "გიორგი", "", "")
	require.NoError(t, err)
	require.Equal(t, "გიორგი", updated.Username)
}

func TestDeleteAccountCascades(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "gone@example.com", "gone_user", "Password1", 0))
	user, err := svc.Users.FindByEmail(ctx, "gone@example.com")
	require.NoError(t, err)

	course := models.Course{CourseTitle: "Orphan check", UserID: user.ID, Description: "d", Price: 5}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, svc.DeleteAccount(ctx, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.Course{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.Zero(t, count)

	err = svc.DeleteAccount(ctx, user.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateRoleConflict(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, "moderator")
	require.NoError(t, err)
	require.NotZero(t, role.ID)

	_, err = svc.CreateRole(ctx, "moderator")
	require.ErrorIs(t, err, apperr.ErrConflict)
}
