package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/api/metrics"
	"github.com/devboard/devboard-api/internal/api/middleware"
	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

// BlogHandler handles HTTP requests for blog posts and their sub-resources.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// List returns a page of posts visible to the caller.
//
// @Summary      List blog posts
// @Tags         blogs
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        status    query     string  false  "Status filter (author/admin only)"
// @Param        tag       query     string  false  "Tag filter"
// @Param        featured  query     bool    false  "Featured filter"
// @Param        author    query     string  false  "Author id filter"
// @Param        search    query     string  false  "Title search"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  map[string]any
// @Router       /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	viewer, _ := middleware.CurrentIdentity(c)
	filter := listBlogsFilter(c)

	blogs, total, err := h.service.List(c.Request().Context(), viewer, filter)
	if err != nil {
		return err
	}

	return respondPage(c, http.StatusOK, newBlogViews(blogs, viewer), NewPagination(filter.Page, filter.Limit, total))
}

// Get resolves one post by slug, counting the view at most once per address
// within the dedup window.
//
// @Summary      Get a blog post by slug
// @Tags         blogs
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Router       /blogs/{slug} [get]
func (h *BlogHandler) Get(c echo.Context) error {
	viewer, _ := middleware.CurrentIdentity(c)

	blog, err := h.service.GetBySlug(c.Request().Context(), viewer, c.Param("slug"), c.RealIP())
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, newBlogView(blog, viewer))
}

// Create stores a new post authored by the caller.
//
// @Summary      Create a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBlogRequest  true  "Post details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blog, err := h.service.Create(c.Request().Context(), identity.UserID, ports.CreateBlogInput{
		Title:    req.Title,
		Body:     req.Body,
		Excerpt:  req.Excerpt,
		Image:    req.Image,
		Category: req.Category,
		Tags:     req.Tags,
		Status:   req.Status,
		Featured: req.Featured,
	})
	if err != nil {
		return err
	}

	metrics.BlogsCreatedTotal.WithLabelValues(blog.Category).Inc()
	return respond(c, http.StatusCreated, newBlogView(blog, identity))
}

// Update applies a partial update to a post.
//
// @Summary      Update a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updateBlogRequest  true  "Fields to update"
// @Success      200   {object}  map[string]any
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req updateBlogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateBlogInput{
		Title:    req.Title,
		Body:     req.Body,
		Excerpt:  req.Excerpt,
		Image:    req.Image,
		Category: req.Category,
		Status:   req.Status,
		Featured: req.Featured,
	}
	if req.Tags != nil {
		tags := []string(*req.Tags)
		in.Tags = &tags
	}

	blog, err := h.service.Update(c.Request().Context(), identity, c.Param("id"), in)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, newBlogView(blog, identity))
}

// Delete removes a post.
//
// @Summary      Delete a blog post
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	if err := h.service.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]string{"message": "blog deleted"})
}

// Like adds the caller to the post's like set; liking twice is a no-op.
//
// @Summary      Like a blog post
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /blogs/{id}/like [post]
func (h *BlogHandler) Like(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	blog, err := h.service.Like(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, newBlogView(blog, identity))
}

// Unlike removes the caller from the post's like set.
//
// @Summary      Unlike a blog post
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /blogs/{id}/like [delete]
func (h *BlogHandler) Unlike(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	blog, err := h.service.Unlike(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, newBlogView(blog, identity))
}

// AddComment appends a comment to a post.
//
// @Summary      Comment on a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      addCommentRequest  true  "Comment text"
// @Success      201   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Router       /blogs/{id}/comments [post]
func (h *BlogHandler) AddComment(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	blog, err := h.service.AddComment(c.Request().Context(), identity.UserID, c.Param("id"), req.Text)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, newBlogView(blog, identity))
}

// DeleteComment removes a comment. The comment author, an admin, or the
// owner of the parent post may delete; everyone else gets 403.
//
// @Summary      Delete a comment
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true  "Post id"
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /blogs/{id}/comments/{commentId} [delete]
func (h *BlogHandler) DeleteComment(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	if err := h.service.DeleteComment(c.Request().Context(), identity, c.Param("id"), c.Param("commentId")); err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]string{"message": "comment deleted"})
}

// Stats returns aggregate counters for the admin dashboard.
//
// @Summary      Blog statistics
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]string
// @Router       /blogs/stats [get]
func (h *BlogHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, stats)
}
