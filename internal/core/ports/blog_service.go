package ports

import (
	"context"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// CreateBlogInput carries the fields for creating a blog post.
type CreateBlogInput struct {
	Title    string
	Body     string
	Excerpt  string
	Image    string
	Category string
	Tags     []string
	Status   string
	Featured bool
}

// UpdateBlogInput carries optional fields for a partial update; nil means the
// field is untouched.
type UpdateBlogInput struct {
	Title    *string
	Body     *string
	Excerpt  *string
	Image    *string
	Category *string
	Tags     *[]string
	Status   *string
	Featured *bool
}

// BlogService implements the content-management operations.
type BlogService interface {
	Create(ctx context.Context, authorID string, in CreateBlogInput) (*domain.Blog, error)
	// List returns posts visible to the viewer plus the total match count.
	// Anonymous and non-privileged viewers only see published posts.
	List(ctx context.Context, viewer *domain.Identity, filter ListBlogsFilter) ([]*domain.Blog, int64, error)
	// GetBySlug resolves one post, incrementing its view counter at most once
	// per viewer address within the dedup window.
	GetBySlug(ctx context.Context, viewer *domain.Identity, slug, viewerAddr string) (*domain.Blog, error)
	// Update applies a partial update; only the author or an admin may call
	// it. A title change re-derives the slug.
	Update(ctx context.Context, caller *domain.Identity, id string, in UpdateBlogInput) (*domain.Blog, error)
	Delete(ctx context.Context, caller *domain.Identity, id string) error

	Like(ctx context.Context, callerID, id string) (*domain.Blog, error)
	Unlike(ctx context.Context, callerID, id string) (*domain.Blog, error)

	AddComment(ctx context.Context, callerID, id, text string) (*domain.Blog, error)
	// DeleteComment permits the comment author, an admin, or the owner of the
	// parent post. Existence is checked before authorization.
	DeleteComment(ctx context.Context, caller *domain.Identity, id, commentID string) error

	Stats(ctx context.Context) (*BlogStats, error)
}
