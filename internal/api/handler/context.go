package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhive/account-api/internal/api/middleware"
)

// ctxIdentity extracts the verified user id injected by the Auth
// middleware. An empty id means the middleware did not run on this route,
// which is a wiring bug surfaced as 401 rather than a panic downstream.
func ctxIdentity(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
