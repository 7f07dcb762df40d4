package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return domain.ErrUserNotFound
}

func (s *stubAuthService) Deactivate(ctx context.Context, userID string) error {
	return domain.ErrUserNotFound
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.Name != "Alice" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Email: in.Email, Name: in.Name, Role: domain.RoleUser, Active: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","name":"Alice","password":"s3cret-pass"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			User *domain.User `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("expected success envelope, got %q", resp.Status)
	}
	if resp.Data.User == nil || resp.Data.User.Email != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp.Data.User)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"email":"not-an-email","name":"A","password":"short"}`)

	err := h.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Violations) == 0 {
		t.Fatal("expected field violations")
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, &domain.ConflictError{Field: "email", Value: in.Email}
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","name":"Alice","password":"s3cret-pass"}`)

	err := h.Register(c)
	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ce.Field != "email" {
		t.Fatalf("conflict must name the email field, got %q", ce.Field)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "signed.jwt.token", &domain.User{ID: "u1", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"s3cret-pass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.Token != "signed.jwt.token" {
		t.Fatalf("unexpected token %q", resp.Data.Token)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newJSONContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
