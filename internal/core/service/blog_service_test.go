package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

type stubBlogRepo struct {
	blogs  map[string]*domain.Blog // keyed by id
	nextID int
}

func newStubBlogRepo() *stubBlogRepo {
	return &stubBlogRepo{blogs: make(map[string]*domain.Blog)}
}

func cloneBlog(b *domain.Blog) *domain.Blog {
	if b == nil {
		return nil
	}
	clone := *b
	clone.Tags = append([]string(nil), b.Tags...)
	clone.Likes = append([]string(nil), b.Likes...)
	clone.Comments = append([]domain.Comment(nil), b.Comments...)
	return &clone
}

func (r *stubBlogRepo) Create(_ context.Context, blog *domain.Blog) (*domain.Blog, error) {
	for _, b := range r.blogs {
		if b.Slug == blog.Slug {
			return nil, &domain.ConflictError{Field: "slug", Value: blog.Slug}
		}
	}
	r.nextID++
	copy := cloneBlog(blog)
	copy.ID = fmt.Sprintf("blog-%d", r.nextID)
	r.blogs[copy.ID] = cloneBlog(copy)
	return copy, nil
}

func (r *stubBlogRepo) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	if b, ok := r.blogs[id]; ok {
		return cloneBlog(b), nil
	}
	return nil, domain.ErrBlogNotFound
}

func (r *stubBlogRepo) FindBySlug(_ context.Context, slug string) (*domain.Blog, error) {
	for _, b := range r.blogs {
		if b.Slug == slug {
			return cloneBlog(b), nil
		}
	}
	return nil, domain.ErrBlogNotFound
}

func (r *stubBlogRepo) List(_ context.Context, filter ports.ListBlogsFilter) ([]*domain.Blog, int64, error) {
	var out []*domain.Blog
	for _, b := range r.blogs {
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		out = append(out, cloneBlog(b))
	}
	return out, int64(len(out)), nil
}

func (r *stubBlogRepo) Update(_ context.Context, blog *domain.Blog) error {
	for id, b := range r.blogs {
		if id != blog.ID && b.Slug == blog.Slug {
			return &domain.ConflictError{Field: "slug", Value: blog.Slug}
		}
	}
	if _, ok := r.blogs[blog.ID]; !ok {
		return domain.ErrBlogNotFound
	}
	r.blogs[blog.ID] = cloneBlog(blog)
	return nil
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.blogs[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

func (r *stubBlogRepo) AddLike(_ context.Context, id, userID string) error {
	b, ok := r.blogs[id]
	if !ok {
		return domain.ErrBlogNotFound
	}
	if !b.LikedBy(userID) {
		b.Likes = append(b.Likes, userID)
	}
	return nil
}

func (r *stubBlogRepo) RemoveLike(_ context.Context, id, userID string) error {
	b, ok := r.blogs[id]
	if !ok {
		return domain.ErrBlogNotFound
	}
	for i, u := range b.Likes {
		if u == userID {
			b.Likes = append(b.Likes[:i], b.Likes[i+1:]...)
			break
		}
	}
	return nil
}

func (r *stubBlogRepo) AddComment(_ context.Context, id string, comment domain.Comment) error {
	b, ok := r.blogs[id]
	if !ok {
		return domain.ErrBlogNotFound
	}
	b.Comments = append(b.Comments, comment)
	return nil
}

func (r *stubBlogRepo) RemoveComment(_ context.Context, id, commentID string) error {
	b, ok := r.blogs[id]
	if !ok {
		return domain.ErrBlogNotFound
	}
	for i, c := range b.Comments {
		if c.ID == commentID {
			b.Comments = append(b.Comments[:i], b.Comments[i+1:]...)
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

func (r *stubBlogRepo) IncrementViews(_ context.Context, id string) error {
	b, ok := r.blogs[id]
	if !ok {
		return domain.ErrBlogNotFound
	}
	b.Views++
	return nil
}

func (r *stubBlogRepo) Stats(_ context.Context) (*ports.BlogStats, error) {
	return &ports.BlogStats{Total: int64(len(r.blogs)), ByCategory: map[string]int64{}}, nil
}

// stubViews marks every (kind, slug, addr) triple seen and reports first sight.
type stubViews struct {
	seen map[string]bool
}

func newStubViews() *stubViews { return &stubViews{seen: make(map[string]bool)} }

func (v *stubViews) FirstView(_ context.Context, kind, slug, addr string) (bool, error) {
	key := kind + ":" + slug + ":" + addr
	if v.seen[key] {
		return false, nil
	}
	v.seen[key] = true
	return true, nil
}

func newBlogService(repo ports.BlogRepository) *BlogService {
	return NewBlogService(repo, newStubViews(), zerolog.Nop())
}

func TestBlogService_Create_DerivesSlug(t *testing.T) {
	svc := newBlogService(newStubBlogRepo())

	blog, err := svc.Create(context.Background(), "u1", ports.CreateBlogInput{
		Title: "Go Concurrency Patterns!", Body: "body", Category: "engineering", Status: "published",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if blog.Slug != "go-concurrency-patterns" {
		t.Fatalf("unexpected slug: %q", blog.Slug)
	}
}

func TestBlogService_Create_SlugConflict(t *testing.T) {
	svc := newBlogService(newStubBlogRepo())

	first, err := svc.Create(context.Background(), "u1", ports.CreateBlogInput{
		Title: "Same Title", Body: "body", Category: "engineering",
	})
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if first == nil {
		t.Fatal("expected first post")
	}

	// "same title" and "Same Title!" normalize to the same slug: the second
	// create must fail with a ConflictError naming the slug field.
	_, err = svc.Create(context.Background(), "u2", ports.CreateBlogInput{
		Title: "same title!", Body: "body", Category: "engineering",
	})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Field != "slug" {
		t.Fatalf("conflict should name the slug field, got %q", conflict.Field)
	}
}

func TestBlogService_Update_TitleChangeReslug(t *testing.T) {
	repo := newStubBlogRepo()
	svc := newBlogService(repo)
	caller := &domain.Identity{UserID: "u1", Role: domain.RoleUser}

	blog, _ := svc.Create(context.Background(), "u1", ports.CreateBlogInput{
		Title: "Original Title", Body: "body", Category: "engineering",
	})

	title := "Brand New Title"
	updated, err := svc.Update(context.Background(), caller, blog.ID, ports.UpdateBlogInput{Title: &title})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != "brand-new-title" {
		t.Fatalf("slug not re-derived: %q", updated.Slug)
	}
}

func TestBlogService_Update_ForbiddenForStranger(t *testing.T) {
	svc := newBlogService(newStubBlogRepo())
	blog, _ := svc.Create(context.Background(), "u1", ports.CreateBlogInput{
		Title: "Mine", Body: "body", Category: "engineering",
	})

	stranger := &domain.Identity{UserID: "u2", Role: domain.RoleUser}
	body := "hijacked"
	if _, err := svc.Update(context.Background(), stranger, blog.ID, ports.UpdateBlogInput{Body: &body}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := &domain.Identity{UserID: "u3", Role: domain.RoleAdmin}
	if _, err := svc.Update(context.Background(), admin, blog.ID, ports.UpdateBlogInput{Body: &body}); err != nil {
		t.Fatalf("admin update should succeed: %v", err)
	}
}

func TestBlogService_Like_IsIdempotent(t *testing.T) {
	svc := newBlogService(newStubBlogRepo())
	blog, _ := svc.Create(context.Background(), "u1", ports.CreateBlogInput{
		Title: "Likeable", Body: "body", Category: "news",
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.Like(context.Background(), "u2", blog.ID); err != nil {
			t.Fatalf("like failed: %v", err)
		}
	}
	got, _ := svc.Like(context.Background(), "u2", blog.ID)
	if got.LikeCount() != 1 {
		t.Fatalf("like set should hold each identity at most once, count = %d", got.LikeCount())
	}
}

func TestBlogService_DeleteComment_Authorization(t *testing.T) {
	// Matrix: comment author, parent owner, admin may delete; anyone else 403.
	cases := []struct {
		name    string
		caller  *domain.Identity
		wantErr error
	}{
		{"comment author", &domain.Identity{UserID: "commenter", Role: domain.RoleUser}, nil},
		{"parent owner, not author", &domain.Identity{UserID: "owner", Role: domain.RoleUser}, nil},
		{"admin", &domain.Identity{UserID: "root", Role: domain.RoleAdmin}, nil},
		{"unrelated user", &domain.Identity{UserID: "stranger", Role: domain.RoleUser}, domain.ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newBlogService(newStubBlogRepo())
			blog, _ := svc.Create(context.Background(), "owner", ports.CreateBlogInput{
				Title: "Commented " + tc.name, Body: "body", Category: "culture",
			})
			withComment, err := svc.AddComment(context.Background(), "commenter", blog.ID, "nice post")
			if err != nil {
				t.Fatalf("add comment failed: %v", err)
			}
			commentID := withComment.Comments[0].ID

			err = svc.DeleteComment(context.Background(), tc.caller, blog.ID, commentID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("DeleteComment = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestBlogService_DeleteComment_NotFoundBeforeForbidden(t *testing.T) {
	svc := newBlogService(newStubBlogRepo())
	blog, _ := svc.Create(context.Background(), "owner", ports.CreateBlogInput{
		Title: "No Comments", Body: "body", Category: "culture",
	})

	stranger := &domain.Identity{UserID: "stranger", Role: domain.RoleUser}
	if err := svc.DeleteComment(context.Background(), stranger, blog.ID, "missing"); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("missing comment should be 404 before any authorization check, got %v", err)
	}
	if err := svc.DeleteComment(context.Background(), stranger, "missing-blog", "whatever"); !errors.Is(err, domain.ErrBlogNotFound) {
		t.Fatalf("missing parent should be 404, got %v", err)
	}
}

func TestBlogService_GetBySlug_ViewDedup(t *testing.T) {
	svc := newBlogService(newStubBlogRepo())
	blog, _ := svc.Create(context.Background(), "u1", ports.CreateBlogInput{
		Title: "Viewed", Body: "body", Category: "news", Status: "published",
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.GetBySlug(context.Background(), nil, blog.Slug, "10.0.0.1"); err != nil {
			t.Fatalf("get failed: %v", err)
		}
	}
	got, _ := svc.GetBySlug(context.Background(), nil, blog.Slug, "10.0.0.2")
	if got.Views != 2 {
		t.Fatalf("expected one view per distinct address, got %d", got.Views)
	}
}

func TestBlogService_GetBySlug_DraftHiddenFromPublic(t *testing.T) {
	svc := newBlogService(newStubBlogRepo())
	blog, _ := svc.Create(context.Background(), "u1", ports.CreateBlogInput{
		Title: "Secret Draft", Body: "body", Category: "news", Status: "draft",
	})

	if _, err := svc.GetBySlug(context.Background(), nil, blog.Slug, "addr"); !errors.Is(err, domain.ErrBlogNotFound) {
		t.Fatalf("draft should be hidden from anonymous viewers, got %v", err)
	}
	owner := &domain.Identity{UserID: "u1", Role: domain.RoleUser}
	if _, err := svc.GetBySlug(context.Background(), owner, blog.Slug, "addr"); err != nil {
		t.Fatalf("owner should see own draft: %v", err)
	}
}
