package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyward/flightschool-api/internal/api/middleware"
	"github.com/skyward/flightschool-api/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware. Presence
// proves the middleware ran; a missing session on a protected route means a
// wiring bug, rejected with 401 rather than trusted.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, ok := c.Get(middleware.SessionKey).(*domain.Session)
	if !ok || session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return session, nil
}
