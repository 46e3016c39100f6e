package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gmodebadze/edu_platform/internal/logging"
	mwauth "github.com/gmodebadze/edu_platform/internal/middleware/auth"
	"github.com/gmodebadze/edu_platform/internal/mykafka"
	"github.com/gmodebadze/edu_platform/internal/service"
	"github.com/gmodebadze/edu_platform/internal/transport"
)

type UserHandler struct {
	Svc       *service.AuthService
	Producer  *mykafka.Producer
	UploadDir string
}

func (h *UserHandler) Profile(c echo.Context) error {
	user, ok := mwauth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return c.JSON(http.StatusOK, user)
}

// EditUser accepts JSON or multipart. A supplied "image" file replaces the
// avatar reference, otherwise an imageUrl field is honored as-is.
func (h *UserHandler) EditUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "edit_user")

	user, ok := mwauth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	var req transport.EditUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("edit_user_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := saveUpload(file, "image", h.UploadDir)
		if err != nil {
			l.Error("edit_user_failed", "status", 500, "reason", "cannot store upload", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
		}
		req.ImageURL = path
	}

	updated, err := h.Svc.EditProfile(ctx, user, req.Username, req.Description, req.ImageURL)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) DeleteProfile(c echo.Context) error {
	ctx := c.Request().Context()

	user, ok := mwauth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	if err := h.Svc.DeleteAccount(ctx, user.ID); err != nil {
		return httpError(err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_deleted",
		"UserID":   user.ID,
		"username": user.Username,
	})

	return c.NoContent(http.StatusNoContent)
}
