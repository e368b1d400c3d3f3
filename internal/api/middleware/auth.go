package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skyward/flightschool-api/internal/core/service"
)

// Context keys set by the Auth middleware.
const (
	SessionKey = "session"
	RoleKey    = "role"
)

// Auth validates the bearer token and injects the reconstructed session
// into the request context. Expired tokens get their own message so the
// client can detect session invalidity and return to login.
func Auth(secret string) echo.MiddlewareFunc {
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

			session, err := service.ParseToken(parts[1], secret)
			if err != nil {
				return err
			}

			c.Set(SessionKey, session)
			c.Set(RoleKey, string(session.Role))

			return next(c)
		}
	}
}
