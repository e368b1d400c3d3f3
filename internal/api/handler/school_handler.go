package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skyward/flightschool-api/internal/core/ports"
	"github.com/skyward/flightschool-api/internal/infrastructure/media"
)

// maxPhotoBytes caps school photo uploads at 5 MiB.
const maxPhotoBytes = 5 << 20

// SchoolHandler manages school photos in the hosted media store.
type SchoolHandler struct {
	store ports.MediaStore
	now   func() time.Time
}

func NewSchoolHandler(store ports.MediaStore) *SchoolHandler {
	return &SchoolHandler{store: store, now: time.Now}
}

type uploadPhotoResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// UploadPhoto handles POST /v1/schools/:id/photo.
//
// @Summary      Upload a school photo
// @Tags         schools
// @Accept       image/jpeg
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "School ID"
// @Success      201  {object}  uploadPhotoResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/schools/{id}/photo [post]
func (h *SchoolHandler) UploadPhoto(c echo.Context) error {
	schoolID := c.Param("id")
	if schoolID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing school id")
	}

	content, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPhotoBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}
	if len(content) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "empty photo")
	}
	if len(content) > maxPhotoBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo too large")
	}

	path := media.SchoolPhotoPath(schoolID, h.now().UTC())
	url, err := h.store.Upload(c.Request().Context(), path, "image/jpeg", content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, uploadPhotoResponse{Path: path, URL: url})
}

// DeletePhoto handles DELETE /v1/schools/:id/photo?path=.
//
// @Summary      Delete a school photo
// @Tags         schools
// @Produce      json
// @Security     BearerAuth
// @Param        id    path   string  true  "School ID"
// @Param        path  query  string  true  "Object path returned at upload"
// @Success      204   "no content"
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/schools/{id}/photo [delete]
func (h *SchoolHandler) DeletePhoto(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing object path")
	}

	if err := h.store.Delete(c.Request().Context(), path); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
