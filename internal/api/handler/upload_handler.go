package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/api/metrics"
	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

// UploadHandler handles binary attachment intake and removal. Stored files
// are served statically under /uploads by the router.
type UploadHandler struct {
	service ports.UploadService
}

func NewUploadHandler(service ports.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Single stores one attachment from the "file" form field.
//
// @Summary      Upload a single file
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file (max 5 MiB)"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Router       /upload [post]
func (h *UploadHandler) Single(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return domain.NewUploadError("no file provided")
	}

	result, err := h.service.Store(c.Request().Context(), file)
	if err != nil {
		recordUploadRejection(err)
		return err
	}

	return respond(c, http.StatusCreated, result)
}

// Multiple stores up to the configured maximum of attachments from the
// "files" form field. The whole batch is validated before anything is
// written, so a single bad file rejects the request.
//
// @Summary      Upload multiple files
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        files  formData  file  true  "Image files (max 5, 5 MiB each)"
// @Success      201    {object}  map[string]any
// @Failure      400    {object}  map[string]string
// @Router       /upload/multiple [post]
func (h *UploadHandler) Multiple(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.NewUploadError("no files provided")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return domain.NewUploadError("no files provided")
	}

	results, err := h.service.StoreAll(c.Request().Context(), files)
	if err != nil {
		recordUploadRejection(err)
		return err
	}

	return respond(c, http.StatusCreated, results)
}

// Delete removes a stored attachment by filename.
//
// @Summary      Delete an uploaded file
// @Tags         uploads
// @Produce      json
// @Security     BearerAuth
// @Param        filename  path      string  true  "Stored filename"
// @Success      200       {object}  map[string]string
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /upload/{filename} [delete]
func (h *UploadHandler) Delete(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("filename")); err != nil {
		recordUploadRejection(err)
		return err
	}

	return respond(c, http.StatusOK, map[string]string{"message": "file deleted"})
}

func recordUploadRejection(err error) {
	var ue *domain.UploadError
	if errors.As(err, &ue) {
		metrics.UploadsRejectedTotal.Inc()
	}
}
