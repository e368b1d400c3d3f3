package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyward/flightschool-api/internal/api/metrics"
	"github.com/skyward/flightschool-api/internal/api/middleware"
	"github.com/skyward/flightschool-api/internal/core/domain"
	"github.com/skyward/flightschool-api/internal/core/policy"
	"github.com/skyward/flightschool-api/internal/core/service"
)

// RoutesHandler answers the client shell's navigation questions: may this
// principal open this route, and where to go otherwise.
type RoutesHandler struct {
	secret string
}

func NewRoutesHandler(secret string) *RoutesHandler {
	return &RoutesHandler{secret: secret}
}

type authorizeResponse struct {
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
	Home     string `json:"home,omitempty"`
}

// Authorize handles GET /v1/routes/authorize?path=. The bearer token is
// optional: without one the decision is made for an anonymous principal,
// and an expired token is treated as anonymous rather than rejected.
//
// @Summary      Route authorization decision
// @Tags         routes
// @Produce      json
// @Param        path  query     string  true  "Route to check (e.g. /admin/users)"
// @Success      200   {object}  authorizeResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/routes/authorize [get]
func (h *RoutesHandler) Authorize(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing path")
	}

	role := h.roleFromRequest(c)

	resp := authorizeResponse{
		Path:    path,
		Allowed: policy.CanAccessRoute(path, role),
	}
	if !resp.Allowed {
		resp.Redirect = policy.RedirectPath(path, role)
		if role == nil {
			metrics.RouteDenialsTotal.WithLabelValues("anonymous").Inc()
		} else {
			metrics.RouteDenialsTotal.WithLabelValues("forbidden").Inc()
		}
	}
	if role != nil {
		resp.Home = policy.HomeRoute(*role)
	}

	return c.JSON(http.StatusOK, resp)
}

// roleFromRequest resolves the principal's role from the Auth middleware if
// it ran, or from an optional bearer token otherwise. nil means anonymous.
func (h *RoutesHandler) roleFromRequest(c echo.Context) *domain.Role {
	if session, ok := c.Get(middleware.SessionKey).(*domain.Session); ok && session != nil {
		role := session.Role
		return &role
	}

	header := c.Request().Header.Get("Authorization")
	if len(header) > 7 && (header[:7] == "Bearer " || header[:7] == "bearer ") {
		if session, err := service.ParseToken(header[7:], h.secret); err == nil {
			role := session.Role
			return &role
		}
	}
	return nil
}
