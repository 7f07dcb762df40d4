package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// newLimitedEcho wires the body-limit arrangement the router uses: a default
// ceiling that skips upload routes, which carry their own larger ceiling.
func newLimitedEcho() *echo.Echo {
	e := echo.New()
	e.Use(echomiddleware.BodyLimitWithConfig(echomiddleware.BodyLimitConfig{
		Skipper: uploadRoute,
		Limit:   defaultBodyLimit,
	}))

	drain := func(c echo.Context) error {
		if _, err := io.Copy(io.Discard, c.Request().Body); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	}

	uploads := e.Group("/api/v1/upload", echomiddleware.BodyLimit(uploadBodyLimit))
	uploads.POST("/multiple", drain)
	e.POST("/api/v1/blogs", drain)
	return e
}

func TestBodyLimit_UploadBatchWithinCeiling(t *testing.T) {
	e := newLimitedEcho()

	// A compliant multi-file batch: three files near the 5 MiB per-file cap
	// comfortably exceed the default JSON ceiling but must pass the upload
	// ceiling untouched.
	body := bytes.Repeat([]byte("x"), 12<<20)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/multiple", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload batch rejected by transport: got %d, want 200", rec.Code)
	}
}

func TestBodyLimit_DefaultRoutesStayCapped(t *testing.T) {
	e := newLimitedEcho()

	body := bytes.Repeat([]byte("x"), 12<<20)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized non-upload body: got %d, want 413", rec.Code)
	}
}

func TestBodyLimit_UploadCeilingStillEnforced(t *testing.T) {
	e := newLimitedEcho()

	body := bytes.Repeat([]byte("x"), 31<<20)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/multiple", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("upload body over its own ceiling: got %d, want 413", rec.Code)
	}
}
