package ports

import (
	"context"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// ListBlogsFilter carries all query parameters for listing blog posts.
type ListBlogsFilter struct {
	Category string // optional: closed-set category
	Status   string // optional: lifecycle status; empty = caller-dependent default
	Tag      string // optional: posts carrying the tag
	Featured *bool  // optional: featured flag
	AuthorID string // optional: scope to one author
	Search   string // optional: case-insensitive match on title
	Page     int    // 1-based
	Limit    int    // rows per page (capped by the service)
}

// BlogStats is the aggregation result for the admin statistics endpoint.
type BlogStats struct {
	Total      int64            `json:"total"`
	Published  int64            `json:"published"`
	Drafts     int64            `json:"drafts"`
	Archived   int64            `json:"archived"`
	TotalViews int64            `json:"totalViews"`
	ByCategory map[string]int64 `json:"byCategory"`
}

// BlogRepository defines persistence operations for blog posts.
// A slug uniqueness violation on Create or Update surfaces as a
// *domain.ConflictError on the slug field, never as a generic error.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	List(ctx context.Context, filter ListBlogsFilter) ([]*domain.Blog, int64, error)
	Update(ctx context.Context, blog *domain.Blog) error
	Delete(ctx context.Context, id string) error

	// AddLike / RemoveLike maintain the like set; both are idempotent
	// (an identity appears at most once).
	AddLike(ctx context.Context, id, userID string) error
	RemoveLike(ctx context.Context, id, userID string) error

	AddComment(ctx context.Context, id string, comment domain.Comment) error
	RemoveComment(ctx context.Context, id, commentID string) error

	IncrementViews(ctx context.Context, id string) error
	Stats(ctx context.Context) (*BlogStats, error)
}
