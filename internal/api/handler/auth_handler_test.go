package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skyward/flightschool-api/internal/api"
	"github.com/skyward/flightschool-api/internal/api/handler"
	"github.com/skyward/flightschool-api/internal/core/domain"
)

type stubAuthService struct {
	loginSession *domain.Session
	loginErr     error
	registerUser *domain.User
	registerErr  error
	loggedOut    bool
}

func (s *stubAuthService) Login(context.Context, string, string) (*domain.Session, error) {
	return s.loginSession, s.loginErr
}

func (s *stubAuthService) Register(context.Context, string, string, domain.Role) (*domain.User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Logout(context.Context) { s.loggedOut = true }

func (s *stubAuthService) CurrentSession() *domain.Session { return s.loginSession }

func (s *stubAuthService) Restore(context.Context) (*domain.Session, error) { return nil, nil }

func (s *stubAuthService) IsAdmin(session *domain.Session) bool { return session.IsAdmin() }

func (s *stubAuthService) GetUserByID(context.Context, string, *domain.Session) (*domain.User, error) {
	return nil, domain.ErrPermissionDenied
}

func (s *stubAuthService) ListUsers(context.Context, *domain.Session, int, int) ([]*domain.User, error) {
	return nil, domain.ErrPermissionDenied
}

type stubLimiter struct {
	blocked  bool
	failures []string
	resets   []string
}

func (l *stubLimiter) Blocked(context.Context, string) (bool, error) {
	return l.blocked, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures = append(l.failures, email)
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	l.resets = append(l.resets, email)
	return nil
}

func newTestEcho(svc *stubAuthService, limiter handler.LoginLimiter) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	h := handler.NewAuthHandler(svc, limiter, zerolog.Nop())
	e.POST("/v1/auth/register", h.Register)
	e.POST("/v1/auth/login", h.Login)
	e.POST("/v1/auth/logout", h.Logout)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint_Success(t *testing.T) {
	svc := &stubAuthService{registerUser: &domain.User{
		ID:        "1",
		Email:     "new@example.com",
		Role:      domain.RoleUser,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}}
	e := newTestEcho(svc, nil)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register", `{"email":"new@example.com","password":"abc12345"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	svc := &stubAuthService{}
	e := newTestEcho(svc, nil)

	cases := []struct {
		name string
		body string
	}{
		{"bad email", `{"email":"nope","password":"abc12345"}`},
		{"short password", `{"email":"ok@example.com","password":"abc12"}`},
		{"unknown role", `{"email":"ok@example.com","password":"abc12345","role":"chief"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/v1/auth/register", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	svc := &stubAuthService{registerErr: domain.ErrEmailExists}
	e := newTestEcho(svc, nil)

	rec := doJSON(e, http.MethodPost, "/v1/auth/register", `{"email":"dup@example.com","password":"abc12345"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestLoginEndpoint_Success(t *testing.T) {
	svc := &stubAuthService{loginSession: &domain.Session{
		UserID:  "1",
		Email:   "alice@example.com",
		Role:    domain.RoleUser,
		LoginAt: time.Now().UTC(),
		Token:   "opaque-token",
	}}
	limiter := &stubLimiter{}
	e := newTestEcho(svc, limiter)

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"alice@example.com","password":"abc12345"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] != "opaque-token" || resp["role"] != "user" {
		t.Fatalf("unexpected response: %v", resp)
	}
	if len(limiter.resets) != 1 {
		t.Fatalf("limiter not reset on success")
	}
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	limiter := &stubLimiter{}
	e := newTestEcho(svc, limiter)

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid email or password") {
		t.Fatalf("credential failure must stay generic, got %s", rec.Body.String())
	}
	if len(limiter.failures) != 1 {
		t.Fatalf("failed attempt not recorded")
	}
}

func TestLoginEndpoint_RateLimited(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	e := newTestEcho(svc, &stubLimiter{blocked: true})

	rec := doJSON(e, http.MethodPost, "/v1/auth/login", `{"email":"alice@example.com","password":"guess"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestLogoutEndpoint_Idempotent(t *testing.T) {
	svc := &stubAuthService{}
	e := newTestEcho(svc, nil)

	for i := 0; i < 2; i++ {
		rec := doJSON(e, http.MethodPost, "/v1/auth/logout", "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	}
	if !svc.loggedOut {
		t.Fatalf("logout not delegated to service")
	}
}
