package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

type createBlogRequest struct {
	Title    string     `json:"title" validate:"required,min=3,max=200"`
	Body     string     `json:"body" validate:"required"`
	Excerpt  string     `json:"excerpt" validate:"max=500"`
	Image    string     `json:"image" validate:"omitempty,url"`
	Category string     `json:"category" validate:"required,oneof=engineering design product career culture news"`
	Tags     StringList `json:"tags"`
	Status   string     `json:"status" validate:"omitempty,oneof=draft published archived"`
	Featured bool       `json:"featured"`
}

type updateBlogRequest struct {
	Title    *string     `json:"title" validate:"omitempty,min=3,max=200"`
	Body     *string     `json:"body" validate:"omitempty,min=1"`
	Excerpt  *string     `json:"excerpt" validate:"omitempty,max=500"`
	Image    *string     `json:"image" validate:"omitempty,url"`
	Category *string     `json:"category" validate:"omitempty,oneof=engineering design product career culture news"`
	Tags     *StringList `json:"tags"`
	Status   *string     `json:"status" validate:"omitempty,oneof=draft published archived"`
	Featured *bool       `json:"featured"`
}

type addCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// blogView is the wire shape of a blog post. The like set itself is never
// exposed; only the derived count and whether the viewer is in it.
type blogView struct {
	*domain.Blog
	LikeCount    int  `json:"likeCount"`
	CommentCount int  `json:"commentCount"`
	Liked        bool `json:"liked"`
}

func newBlogView(b *domain.Blog, viewer *domain.Identity) blogView {
	v := blogView{Blog: b, LikeCount: b.LikeCount(), CommentCount: b.CommentCount()}
	if viewer != nil {
		v.Liked = b.LikedBy(viewer.UserID)
	}
	return v
}

func newBlogViews(blogs []*domain.Blog, viewer *domain.Identity) []blogView {
	views := make([]blogView, 0, len(blogs))
	for _, b := range blogs {
		views = append(views, newBlogView(b, viewer))
	}
	return views
}

// listBlogsFilter parses the list query parameters; unknown values pass
// through and fall out naturally as empty result sets.
func listBlogsFilter(c echo.Context) ports.ListBlogsFilter {
	f := ports.ListBlogsFilter{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		Tag:      c.QueryParam("tag"),
		AuthorID: c.QueryParam("author"),
		Search:   c.QueryParam("search"),
	}
	if v := c.QueryParam("featured"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Featured = &b
		}
	}
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return f
}
