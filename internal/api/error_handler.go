package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// fieldError mirrors domain.FieldViolation in the wire envelope.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders per-field details for validation failures.
//   - Logs unexpected errors internally; their cause is only echoed to the
//     client outside production.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c, production)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Status: "error", Message: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		fields := make([]fieldError, 0, len(ve.Violations))
		for _, v := range ve.Violations {
			fields = append(fields, fieldError{Field: v.Field, Message: v.Message})
		}
		return http.StatusBadRequest, errorResponse{Status: "error", Message: "validation failed", Errors: fields}
	}

	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return http.StatusConflict, errorResponse{Status: "error", Message: ce.Error()}
	}

	var ue *domain.UploadError
	if errors.As(err, &ue) {
		return http.StatusBadRequest, errorResponse{Status: "error", Message: ue.Error()}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "authentication required"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "invalid credentials"}
	case errors.Is(err, domain.ErrAccountInactive):
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "account is deactivated"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Status: "error", Message: "access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Status: "error", Message: "user not found"}
	case errors.Is(err, domain.ErrBlogNotFound):
		return http.StatusNotFound, errorResponse{Status: "error", Message: "blog not found"}
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, errorResponse{Status: "error", Message: "comment not found"}
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, errorResponse{Status: "error", Message: "job not found"}
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound, errorResponse{Status: "error", Message: "asset not found"}
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound, errorResponse{Status: "error", Message: "file not found"}
	case errors.Is(err, domain.ErrJobClosed):
		return http.StatusBadRequest, errorResponse{Status: "error", Message: "job is no longer accepting applications"}
	}

	// Unexpected error: log the real cause, return a generic message. Outside
	// production the cause is included to ease debugging.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	msg := "internal server error"
	if !production {
		msg = err.Error()
	}
	return http.StatusInternalServerError, errorResponse{Status: "error", Message: msg}
}
