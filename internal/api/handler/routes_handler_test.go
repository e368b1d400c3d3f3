package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skyward/flightschool-api/internal/api"
	"github.com/skyward/flightschool-api/internal/api/handler"
)

func newRoutesEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	h := handler.NewRoutesHandler("secret")
	e.GET("/v1/routes/authorize", h.Authorize)
	return e
}

func authorize(t *testing.T, e *echo.Echo, path, bearer string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/routes/authorize?path="+path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func roleToken(t *testing.T, role string) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7", "email": "x@example.com", "role": role,
		"iat": now.Unix(), "exp": now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestAuthorize_AnonymousDeniedWithLoginRedirect(t *testing.T) {
	e := newRoutesEcho()
	resp := authorize(t, e, "%2Fcommunity", "")
	if resp["allowed"] != false {
		t.Fatalf("anonymous must be denied /community")
	}
	if resp["redirect"] != "/login?redirect=%2Fcommunity" {
		t.Fatalf("unexpected redirect %v", resp["redirect"])
	}
}

func TestAuthorize_UserDeniedAdminRoute(t *testing.T) {
	e := newRoutesEcho()
	resp := authorize(t, e, "%2Fadmin%2Fusers", roleToken(t, "user"))
	if resp["allowed"] != false {
		t.Fatalf("user must be denied /admin/users")
	}
	if resp["redirect"] != "/community" {
		t.Fatalf("expected home redirect, got %v", resp["redirect"])
	}
}

func TestAuthorize_AdminAllowed(t *testing.T) {
	e := newRoutesEcho()
	resp := authorize(t, e, "%2Fadmin%2Fusers", roleToken(t, "admin"))
	if resp["allowed"] != true {
		t.Fatalf("admin must reach /admin/users")
	}
	if resp["home"] != "/admin" {
		t.Fatalf("expected admin home, got %v", resp["home"])
	}
}

func TestAuthorize_ExpiredTokenTreatedAnonymous(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7", "email": "x@example.com", "role": "admin",
		"iat": now.Add(-2 * time.Hour).Unix(), "exp": now.Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	e := newRoutesEcho()
	resp := authorize(t, e, "%2Fadmin", signed)
	if resp["allowed"] != false {
		t.Fatalf("expired token must not grant access")
	}
	if resp["redirect"] != "/login?redirect=%2Fadmin" {
		t.Fatalf("expired token must redirect to login, got %v", resp["redirect"])
	}
}
