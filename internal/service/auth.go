package service

import (
	"context"
	"unicode/utf8"

	"github.com/gmodebadze/edu_platform/internal/apperr"
	"github.com/gmodebadze/edu_platform/internal/hash"
	"github.com/gmodebadze/edu_platform/internal/logging"
	"github.com/gmodebadze/edu_platform/internal/models"
	"github.com/gmodebadze/edu_platform/internal/repo"
	"github.com/gmodebadze/edu_platform/internal/tokens"
)

// Sign-in failures share one generic message so the response never tells
// which of identifier or password was wrong.
const (
	msgBadCredentials = "check the credentials you entered"
	msgAdminRejected  = "you can't sign in"
)

type AuthService struct {
	Users  *repo.UserRepo
	Roles  *repo.RoleRepo
	Tokens *tokens.Service
}

// Register creates the account in the active state. No token is issued,
// a fresh account still has to sign in.
func (s *AuthService) Register(ctx context.Context, email, username, password string, roleID uint) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return err
	}

	if roleID == 0 {
		roleID = models.DefaultRoleID
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Status:       models.StatusActive,
		RoleID:       roleID,
	}

	if err := s.Users.Create(ctx, &user); err != nil {
		l.Warn("register_failed", "status", apperr.Status(err), "error", err)
		return err
	}

	l.Info("register_success", "user_id", user.ID)
	return nil
}

// SignIn exchanges email+password for a signed token carrying {email, id}.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signin")

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		l.Warn("signin_failed", "status", 401, "reason", "unknown email")
		return "", nil, apperr.Unauthorized(msgBadCredentials)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("signin_failed", "status", 401, "reason", "wrong password")
		return "", nil, apperr.Unauthorized(msgBadCredentials)
	}

	accessToken, err := s.Tokens.Issue(user.Email, user.ID)
	if err != nil {
		l.Error("signin_failed", "status", 500, "error", err)
		return "", nil, err
	}

	l.Info("signin_success", "user_id", user.ID)
	return accessToken, user, nil
}

// requireRole is the admin gate: the record's role and the claimed role
// must both be the administrative id.
func requireRole(actualRoleID, claimedRoleID uint) bool {
	return actualRoleID == claimedRoleID && claimedRoleID == models.AdminRoleID
}

// AdminSignIn is role-first: the gate runs before the password check, so a
// correct password with the wrong role is still rejected. Every failure is
// the same generic unauthorized answer.
func (s *AuthService) AdminSignIn(ctx context.Context, username, password string, claimedRoleID uint) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.admin_signin")

	user, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		l.Warn("admin_signin_failed", "status", 401, "reason", "unknown username")
		return "", apperr.Unauthorized(msgAdminRejected)
	}

	if !requireRole(user.RoleID, claimedRoleID) {
		l.Warn("admin_signin_failed", "status", 401, "reason", "role mismatch")
		return "", apperr.Unauthorized(msgAdminRejected)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("admin_signin_failed", "status", 401, "reason", "wrong password")
		return "", apperr.Unauthorized(msgBadCredentials)
	}

	accessToken, err := s.Tokens.Issue(user.Username, user.ID)
	if err != nil {
		l.Error("admin_signin_failed", "status", 500, "error", err)
		return "", err
	}

	l.Info("admin_signin_success", "user_id", user.ID)
	return accessToken, nil
}

// ForgotPassword resets by email alone. Knowing the address is the only
// proof of ownership required, same as the original flow. That allows
// account takeover through a known email and is kept on purpose, adding an
// OTP or reset-token step here would change the contract.
func (s *AuthService) ForgotPassword(ctx context.Context, email, newPassword string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.forgot_password")

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		l.Warn("forgot_password_failed", "status", 401, "reason", "unknown email")
		return nil, apperr.Unauthorized("email is incorrect")
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		l.Error("forgot_password_failed", "status", 500, "error", err)
		return nil, err
	}

	if err := s.Users.UpdatePassword(ctx, user.ID, pwHash); err != nil {
		l.Error("forgot_password_failed", "status", apperr.Status(err), "error", err)
		return nil, err
	}
	user.PasswordHash = pwHash

	l.Info("forgot_password_success", "user_id", user.ID)
	return user, nil
}

// EditProfile is a partial update. An empty username keeps the current one,
// a short one fails validation, description and image are replaced only
// when a non-empty value arrives.
func (s *AuthService) EditProfile(ctx context.Context, user *models.User, username, description, imageURL string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.edit_profile", "user_id", user.ID)

	if username != "" {
		if utf8.RuneCountInString(username) < 5 {
			l.Warn("edit_profile_failed", "status", 400, "reason", "username too short")
			return nil, apperr.Validation("username must contain at least 5 characters")
		}
		user.Username = username
	}
	if description != "" {
		user.Description = description
	}
	if imageURL != "" {
		user.ImageURL = imageURL
	}

	if err := s.Users.Save(ctx, user); err != nil {
		l.Error("edit_profile_failed", "status", 500, "error", err)
		return nil, err
	}

	l.Info("edit_profile_success")
	return user, nil
}

// DeleteAccount cascades over the user's courses before removing the
// record. Deleting an id that does not exist is surfaced, not swallowed.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	l := logging.FromContext(ctx).With("svc", "auth.delete_account", "user_id", userID)

	if err := s.Users.Delete(ctx, userID); err != nil {
		l.Warn("delete_account_failed", "status", apperr.Status(err), "error", err)
		return err
	}

	l.Info("delete_account_success")
	return nil
}

func (s *AuthService) CreateRole(ctx context.Context, name string) (*models.Role, error) {
	l := logging.FromContext(ctx).With("svc", "auth.create_role")

	role := models.Role{Name: name}
	if err := s.Roles.Create(ctx, &role); err != nil {
		l.Warn("create_role_failed", "status", apperr.Status(err), "error", err)
		return nil, err
	}

	l.Info("create_role_success", "role_id", role.ID)
	return &role, nil
}
