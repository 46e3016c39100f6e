package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gmodebadze/edu_platform/internal/logging"
	"github.com/gmodebadze/edu_platform/internal/models"
	"github.com/gmodebadze/edu_platform/internal/repo"
	"github.com/gmodebadze/edu_platform/internal/tokens"
)

const userContextKey = "user"

type Middleware struct {
	Tokens *tokens.Service
	Users  *repo.UserRepo
}

// RequireLogin verifies the bearer token and re-resolves its subject
// against the user store. A well-formed token whose owner no longer exists
// is rejected, deleting the account invalidates every token it issued.
func (m *Middleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "require_login")

		raw := bearerToken(c)
		if raw == "" {
			l.Warn("auth_failed", "status", 401, "reason", "missing bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := m.Tokens.Verify(raw)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "invalid token")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		user, err := m.Users.FindByUsernameOrEmail(ctx, claims.Subject)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "subject no longer exists")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// CurrentUser returns the account RequireLogin resolved for this request.
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userContextKey).(*models.User)
	return user, ok
}
