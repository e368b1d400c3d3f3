package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skyward/flightschool-api/internal/api/metrics"
	"github.com/skyward/flightschool-api/internal/core/domain"
	"github.com/skyward/flightschool-api/internal/core/ports"
)

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

type AuthHandler struct {
	authService ports.AuthService
	limiter     LoginLimiter
	log         zerolog.Logger
}

// NewAuthHandler creates an AuthHandler. limiter may be nil, which disables
// throttling.
func NewAuthHandler(authService ports.AuthService, limiter LoginLimiter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter, log: log}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	LoginAt string `json:"login_at"`
	Token   string `json:"token"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("validation_error").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerOutcome(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and returns the issued session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	start := time.Now()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	if h.limiter != nil {
		blocked, err := h.limiter.Blocked(ctx, req.Email)
		if err != nil {
			// Throttling is advisory; a limiter outage must not block logins.
			h.log.Warn().Err(err).Msg("login limiter unavailable")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, try again later")
		}
	}

	session, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.LoginDuration.WithLabelValues("failure").Observe(time.Since(start).Seconds())
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			if h.limiter != nil {
				if lerr := h.limiter.RecordFailure(ctx, req.Email); lerr != nil {
					h.log.Warn().Err(lerr).Msg("record login failure")
				}
			}
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if h.limiter != nil {
		if lerr := h.limiter.Reset(ctx, req.Email); lerr != nil {
			h.log.Warn().Err(lerr).Msg("reset login attempts")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.LoginDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, sessionResponse{
		UserID:  session.UserID,
		Email:   session.Email,
		Role:    string(session.Role),
		LoginAt: session.LoginAt.Format(time.RFC3339),
		Token:   session.Token,
	})
}

// Logout clears the held and persisted session. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      204  "no content"
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Me returns the session for the presented bearer token.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		UserID:  session.UserID,
		Email:   session.Email,
		Role:    string(session.Role),
		LoginAt: session.LoginAt.Format(time.RFC3339),
		Token:   session.Token,
	})
}

func registerOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailExists):
		return "email_exists"
	case errors.Is(err, domain.ErrValidation):
		return "validation_error"
	default:
		return "error"
	}
}
