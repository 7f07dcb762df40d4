package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

type stubBlogService struct {
	listFn func(ctx context.Context, viewer *domain.Identity, filter ports.ListBlogsFilter) ([]*domain.Blog, int64, error)
	getFn  func(ctx context.Context, viewer *domain.Identity, slug, addr string) (*domain.Blog, error)
}

func (s *stubBlogService) Create(ctx context.Context, authorID string, in ports.CreateBlogInput) (*domain.Blog, error) {
	return nil, domain.ErrBlogNotFound
}

func (s *stubBlogService) List(ctx context.Context, viewer *domain.Identity, filter ports.ListBlogsFilter) ([]*domain.Blog, int64, error) {
	return s.listFn(ctx, viewer, filter)
}

func (s *stubBlogService) GetBySlug(ctx context.Context, viewer *domain.Identity, slug, addr string) (*domain.Blog, error) {
	return s.getFn(ctx, viewer, slug, addr)
}

func (s *stubBlogService) Update(ctx context.Context, caller *domain.Identity, id string, in ports.UpdateBlogInput) (*domain.Blog, error) {
	return nil, domain.ErrBlogNotFound
}

func (s *stubBlogService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	return domain.ErrBlogNotFound
}

func (s *stubBlogService) Like(ctx context.Context, callerID, id string) (*domain.Blog, error) {
	return nil, domain.ErrBlogNotFound
}

func (s *stubBlogService) Unlike(ctx context.Context, callerID, id string) (*domain.Blog, error) {
	return nil, domain.ErrBlogNotFound
}

func (s *stubBlogService) AddComment(ctx context.Context, callerID, id, text string) (*domain.Blog, error) {
	return nil, domain.ErrBlogNotFound
}

func (s *stubBlogService) DeleteComment(ctx context.Context, caller *domain.Identity, id, commentID string) error {
	return domain.ErrBlogNotFound
}

func (s *stubBlogService) Stats(ctx context.Context) (*ports.BlogStats, error) {
	return nil, domain.ErrBlogNotFound
}

func sampleBlog() *domain.Blog {
	return &domain.Blog{
		ID:       "b1",
		Title:    "Go in Production",
		Slug:     "go-in-production",
		Body:     "body",
		AuthorID: "author-1",
		Category: "engineering",
		Status:   domain.BlogPublished,
		Likes:    []string{"author-1", "u2"},
		Comments: []domain.Comment{
			{ID: "c1", UserID: "u2", Text: "nice", CreatedAt: time.Now()},
		},
	}
}

func TestBlogHandler_Get_DerivedFields(t *testing.T) {
	stub := &stubBlogService{
		getFn: func(ctx context.Context, viewer *domain.Identity, slug, addr string) (*domain.Blog, error) {
			if slug != "go-in-production" {
				t.Fatalf("unexpected slug %q", slug)
			}
			return sampleBlog(), nil
		},
	}
	h := NewBlogHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("go-in-production")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data["likeCount"] != float64(2) {
		t.Fatalf("likeCount = %v, want 2", resp.Data["likeCount"])
	}
	if resp.Data["commentCount"] != float64(1) {
		t.Fatalf("commentCount = %v, want 1", resp.Data["commentCount"])
	}
	if _, exposed := resp.Data["likes"]; exposed {
		t.Fatal("raw like set must not be serialized")
	}
	// Anonymous viewer: liked is always false.
	if resp.Data["liked"] != false {
		t.Fatalf("liked = %v, want false", resp.Data["liked"])
	}
}

func TestBlogHandler_List_PaginationEnvelope(t *testing.T) {
	stub := &stubBlogService{
		listFn: func(ctx context.Context, viewer *domain.Identity, filter ports.ListBlogsFilter) ([]*domain.Blog, int64, error) {
			if filter.Category != "engineering" {
				t.Fatalf("category filter not parsed: %+v", filter)
			}
			return []*domain.Blog{sampleBlog()}, 25, nil
		},
	}
	h := NewBlogHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?category=engineering&page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Status     string      `json:"status"`
		Pagination *Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("expected success envelope, got %q", resp.Status)
	}
	p := resp.Pagination
	if p == nil {
		t.Fatal("expected pagination block")
	}
	if p.CurrentPage != 2 || p.TotalPages != 3 || p.Total != 25 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if !p.HasNext || !p.HasPrev {
		t.Fatalf("page 2 of 3 must have both neighbours: %+v", p)
	}
}
