package domain

import "time"

// BlogStatus represents the lifecycle state of a blog post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
	BlogArchived  BlogStatus = "archived"
)

// BlogCategories is the closed category set for blog posts.
var BlogCategories = []string{"engineering", "design", "product", "career", "culture", "news"}

// ValidBlogCategory reports whether c belongs to the closed category set.
func ValidBlogCategory(c string) bool {
	for _, v := range BlogCategories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidBlogStatus reports whether s is a known lifecycle status.
func ValidBlogStatus(s BlogStatus) bool {
	return s == BlogDraft || s == BlogPublished || s == BlogArchived
}

// Comment is a sub-resource of a blog post.
type Comment struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Blog is the content aggregate. The slug is derived from the title and
// unique across all posts; a collision surfaces as a ConflictError, never a
// generic failure.
type Blog struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Title     string     `json:"title" bson:"title"`
	Slug      string     `json:"slug" bson:"slug"`
	Body      string     `json:"body" bson:"body"`
	Excerpt   string     `json:"excerpt" bson:"excerpt"`
	Image     string     `json:"image,omitempty" bson:"image,omitempty"`
	AuthorID  string     `json:"author_id" bson:"author_id"`
	Category  string     `json:"category" bson:"category"`
	Tags      []string   `json:"tags" bson:"tags"`
	Status    BlogStatus `json:"status" bson:"status"`
	Featured  bool       `json:"featured" bson:"featured"`
	Views     int64      `json:"views" bson:"views"`
	Likes     []string   `json:"-" bson:"likes"`
	Comments  []Comment  `json:"comments" bson:"comments"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// LikeCount is derived from the stored like set on every serialization.
func (b *Blog) LikeCount() int { return len(b.Likes) }

// CommentCount is derived from the stored comment list on every serialization.
func (b *Blog) CommentCount() int { return len(b.Comments) }

// LikedBy reports whether userID is in the like set.
func (b *Blog) LikedBy(userID string) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (b *Blog) FindComment(commentID string) *Comment {
	for i := range b.Comments {
		if b.Comments[i].ID == commentID {
			return &b.Comments[i]
		}
	}
	return nil
}

// VisibleTo reports whether the caller may read the post. Published posts are
// public; drafts and archived posts are visible to their author and admins.
func (b *Blog) VisibleTo(viewer *Identity) bool {
	if b.Status == BlogPublished {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.IsAdmin() || viewer.UserID == b.AuthorID
}
