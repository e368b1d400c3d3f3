package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/skyward/flightschool-api/internal/core/ports"
)

// UserHandler serves the admin-only user directory.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type listUsersResponse struct {
	Users  []userItem `json:"users"`
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset"`
}

type userItem struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	LastLogin string `json:"last_login,omitempty"`
	CreatedAt string `json:"created_at"`
}

// List handles GET /v1/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (0 = no limit)"
// @Param        offset  query     int  false  "Page offset"
// @Success      200     {object}  listUsersResponse
// @Failure      403     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /v1/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	users, err := h.authService.ListUsers(c.Request().Context(), session, limit, offset)
	if err != nil {
		return err
	}

	items := make([]userItem, 0, len(users))
	for _, u := range users {
		item := userItem{
			ID:        u.ID,
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt.Format(timeLayout),
		}
		if u.LastLogin != nil {
			item.LastLogin = u.LastLogin.Format(timeLayout)
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, listUsersResponse{Users: items, Limit: limit, Offset: offset})
}

// Get handles GET /v1/admin/users/:id.
//
// @Summary      Get a user by ID
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userItem
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.authService.GetUserByID(c.Request().Context(), c.Param("id"), session)
	if err != nil {
		return err
	}

	item := userItem{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(timeLayout),
	}
	if user.LastLogin != nil {
		item.LastLogin = user.LastLogin.Format(timeLayout)
	}
	return c.JSON(http.StatusOK, item)
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
