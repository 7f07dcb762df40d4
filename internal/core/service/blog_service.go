package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// BlogService implements content management on top of the blog repository.
type BlogService struct {
	repo  ports.BlogRepository
	views ports.ViewTracker
	log   zerolog.Logger
}

func NewBlogService(repo ports.BlogRepository, views ports.ViewTracker, log zerolog.Logger) *BlogService {
	return &BlogService{repo: repo, views: views, log: log}
}

func (s *BlogService) Create(ctx context.Context, authorID string, in ports.CreateBlogInput) (*domain.Blog, error) {
	slug := domain.Slugify(in.Title)
	if slug == "" {
		return nil, domain.NewValidationError("title", "must contain at least one alphanumeric character")
	}

	status := domain.BlogStatus(in.Status)
	if status == "" {
		status = domain.BlogDraft
	}

	now := time.Now().UTC()
	blog := &domain.Blog{
		Title:     in.Title,
		Slug:      slug,
		Body:      in.Body,
		Excerpt:   in.Excerpt,
		Image:     in.Image,
		AuthorID:  authorID,
		Category:  in.Category,
		Tags:      in.Tags,
		Status:    status,
		Featured:  in.Featured,
		Likes:     []string{},
		Comments:  []domain.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("blog_id", created.ID).Str("slug", created.Slug).Msg("blog post created")
	return created, nil
}

func (s *BlogService) List(ctx context.Context, viewer *domain.Identity, filter ports.ListBlogsFilter) ([]*domain.Blog, int64, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)

	// Anonymous and non-privileged viewers only ever see published posts,
	// regardless of what status they asked for.
	if viewer == nil || (!viewer.IsAdmin() && filter.AuthorID != viewer.UserID) {
		filter.Status = string(domain.BlogPublished)
	}

	return s.repo.List(ctx, filter)
}

func (s *BlogService) GetBySlug(ctx context.Context, viewer *domain.Identity, slug, viewerAddr string) (*domain.Blog, error) {
	blog, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !blog.VisibleTo(viewer) {
		return nil, domain.ErrBlogNotFound
	}

	if first, err := s.views.FirstView(ctx, "blog", slug, viewerAddr); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("view dedup check failed, skipping count")
	} else if first {
		if err := s.repo.IncrementViews(ctx, blog.ID); err != nil {
			s.log.Warn().Err(err).Str("blog_id", blog.ID).Msg("failed to increment views")
		} else {
			blog.Views++
		}
	}

	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, caller *domain.Identity, id string, in ports.UpdateBlogInput) (*domain.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && caller.UserID != blog.AuthorID {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil && *in.Title != blog.Title {
		slug := domain.Slugify(*in.Title)
		if slug == "" {
			return nil, domain.NewValidationError("title", "must contain at least one alphanumeric character")
		}
		blog.Title = *in.Title
		blog.Slug = slug
	}
	if in.Body != nil {
		blog.Body = *in.Body
	}
	if in.Excerpt != nil {
		blog.Excerpt = *in.Excerpt
	}
	if in.Image != nil {
		blog.Image = *in.Image
	}
	if in.Category != nil {
		blog.Category = *in.Category
	}
	if in.Tags != nil {
		blog.Tags = *in.Tags
	}
	if in.Status != nil {
		blog.Status = domain.BlogStatus(*in.Status)
	}
	if in.Featured != nil {
		blog.Featured = *in.Featured
	}
	blog.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, caller *domain.Identity, id string) error {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && caller.UserID != blog.AuthorID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("blog_id", id).Str("deleted_by", caller.UserID).Msg("blog post deleted")
	return nil
}

func (s *BlogService) Like(ctx context.Context, callerID, id string) (*domain.Blog, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.AddLike(ctx, id, callerID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *BlogService) Unlike(ctx context.Context, callerID, id string) (*domain.Blog, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveLike(ctx, id, callerID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *BlogService) AddComment(ctx context.Context, callerID, id, text string) (*domain.Blog, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	comment := domain.Comment{
		ID:        uuid.NewString(),
		UserID:    callerID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddComment(ctx, id, comment); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// DeleteComment applies the three-way rule: the comment author, an admin, or
// the owner of the parent post may delete. Existence is established first —
// a missing post or comment is 404 territory, not 403.
func (s *BlogService) DeleteComment(ctx context.Context, caller *domain.Identity, id, commentID string) error {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	comment := blog.FindComment(commentID)
	if comment == nil {
		return domain.ErrCommentNotFound
	}

	if caller.UserID != comment.UserID && !caller.IsAdmin() && caller.UserID != blog.AuthorID {
		return domain.ErrForbidden
	}

	return s.repo.RemoveComment(ctx, id, commentID)
}

func (s *BlogService) Stats(ctx context.Context) (*ports.BlogStats, error) {
	return s.repo.Stats(ctx)
}

// clampPage normalizes pagination parameters to sane bounds.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
