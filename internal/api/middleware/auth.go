package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userhive/account-api/internal/core/ports"
)

// UserIDKey is the echo context key under which Auth stores the verified
// token subject. The identity travels with the request; nothing about the
// caller is ever held in process-wide state.
const UserIDKey = "user_id"

// Auth verifies the bearer token and injects the subject id into the
// request context. Token errors propagate to the central error handler,
// which renders them as 401.
func Auth(sessions ports.SessionIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := sessions.Verify(parts[1])
			if err != nil {
				return err
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}
