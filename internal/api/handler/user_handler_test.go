package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skyward/flightschool-api/internal/api"
	"github.com/skyward/flightschool-api/internal/api/handler"
	"github.com/skyward/flightschool-api/internal/api/middleware"
	"github.com/skyward/flightschool-api/internal/core/domain"
)

type directoryService struct {
	stubAuthService
	users []*domain.User
	gate  error
}

func (s *directoryService) ListUsers(context.Context, *domain.Session, int, int) ([]*domain.User, error) {
	if s.gate != nil {
		return nil, s.gate
	}
	return s.users, nil
}

func (s *directoryService) GetUserByID(_ context.Context, id string, _ *domain.Session) (*domain.User, error) {
	if s.gate != nil {
		return nil, s.gate
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newDirectoryEcho(svc *directoryService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	h := handler.NewUserHandler(svc)

	// Session injected directly; the Auth middleware has its own tests.
	withSession := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.SessionKey, &domain.Session{
				UserID: "9", Email: "root@example.com", Role: domain.RoleAdmin, Token: "tok",
			})
			return next(c)
		}
	}
	e.GET("/v1/admin/users", h.List, withSession)
	e.GET("/v1/admin/users/:id", h.Get, withSession)
	return e
}

func TestListUsersEndpoint(t *testing.T) {
	last := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	svc := &directoryService{users: []*domain.User{
		{ID: "1", Email: "a@example.com", Role: domain.RoleUser, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Email: "b@example.com", Role: domain.RoleAdmin, LastLogin: &last, CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
	}}
	e := newDirectoryEcho(svc)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users?limit=10&offset=0", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Users []struct {
			ID        string `json:"id"`
			Email     string `json:"email"`
			Role      string `json:"role"`
			LastLogin string `json:"last_login"`
		} `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.Users))
	}
	if resp.Users[0].ID != "1" || resp.Users[1].LastLogin == "" {
		t.Fatalf("unexpected payload: %+v", resp.Users)
	}
}

func TestGetUserEndpoint_NotFound(t *testing.T) {
	e := newDirectoryEcho(&directoryService{})
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users/404", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminEndpoints_PermissionDenied(t *testing.T) {
	e := newDirectoryEcho(&directoryService{gate: domain.ErrPermissionDenied})
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
