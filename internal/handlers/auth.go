package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gmodebadze/edu_platform/internal/logging"
	"github.com/gmodebadze/edu_platform/internal/mykafka"
	"github.com/gmodebadze/edu_platform/internal/service"
	"github.com/gmodebadze/edu_platform/internal/transport"
)

type AuthHandler struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req transport.SignUpRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("signup_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.Register(ctx, req.Email, req.Username, req.Password, req.RoleID); err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, "user_events", req.Username, map[string]interface{}{
		"type":     "user_registered",
		"username": req.Username,
	})

	return c.NoContent(http.StatusCreated)
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signin")

	var req transport.SignInRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signin_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("signin_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accessToken, _, err := h.Svc.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"accessToken": accessToken})
}

func (h *AuthHandler) AdminSignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_signin")

	var req transport.AdminSignInRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_signin_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("admin_signin_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accessToken, err := h.Svc.AdminSignIn(ctx, req.Username, req.Password, req.RoleID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"accessToken": accessToken})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "forgot_password")

	var req transport.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("forgot_password_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("forgot_password_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.Svc.ForgotPassword(ctx, req.Email, req.NewPassword)
	if err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "password_reset",
		"UserID": user.ID,
	})

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) CreateRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_role")

	var req transport.CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_role_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("create_role_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.Svc.CreateRole(ctx, req.Name)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, role)
}
