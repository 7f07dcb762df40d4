package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

const collectionBlogs = "blogs"

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection(collectionBlogs)}
}

type commentDoc struct {
	ID        string    `bson:"id"`
	UserID    string    `bson:"user_id"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"created_at"`
}

type blogDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Slug      string             `bson:"slug"`
	Body      string             `bson:"body"`
	Excerpt   string             `bson:"excerpt"`
	Image     string             `bson:"image,omitempty"`
	AuthorID  string             `bson:"author_id"`
	Category  string             `bson:"category"`
	Tags      []string           `bson:"tags"`
	Status    string             `bson:"status"`
	Featured  bool               `bson:"featured"`
	Views     int64              `bson:"views"`
	Likes     []string           `bson:"likes"`
	Comments  []commentDoc       `bson:"comments"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func blogToDoc(b *domain.Blog) blogDoc {
	comments := make([]commentDoc, 0, len(b.Comments))
	for _, c := range b.Comments {
		comments = append(comments, commentDoc{ID: c.ID, UserID: c.UserID, Text: c.Text, CreatedAt: c.CreatedAt})
	}
	return blogDoc{
		Title:     b.Title,
		Slug:      b.Slug,
		Body:      b.Body,
		Excerpt:   b.Excerpt,
		Image:     b.Image,
		AuthorID:  b.AuthorID,
		Category:  b.Category,
		Tags:      b.Tags,
		Status:    string(b.Status),
		Featured:  b.Featured,
		Views:     b.Views,
		Likes:     b.Likes,
		Comments:  comments,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (d *blogDoc) toDomain() *domain.Blog {
	comments := make([]domain.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, domain.Comment{ID: c.ID, UserID: c.UserID, Text: c.Text, CreatedAt: c.CreatedAt})
	}
	return &domain.Blog{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Slug:      d.Slug,
		Body:      d.Body,
		Excerpt:   d.Excerpt,
		Image:     d.Image,
		AuthorID:  d.AuthorID,
		Category:  d.Category,
		Tags:      d.Tags,
		Status:    domain.BlogStatus(d.Status),
		Featured:  d.Featured,
		Views:     d.Views,
		Likes:     d.Likes,
		Comments:  comments,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Create inserts a new post. The unique slug index makes a concurrent
// duplicate lose with a duplicate-key error, which is translated here into a
// recoverable ConflictError naming the slug field.
func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, blogToDoc(blog))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.ConflictError{Field: "slug", Value: blog.Slug}
		}
		return nil, fmt.Errorf("insert blog: %w", err)
	}

	created := *blog
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *BlogRepository) findOne(ctx context.Context, filter bson.M) (*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc blogDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BlogRepository) List(ctx context.Context, f ports.ListBlogsFilter) ([]*domain.Blog, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	if f.AuthorID != "" {
		filter["author_id"] = f.AuthorID
	}
	if f.Search != "" {
		filter["title"] = bson.M{"$regex": f.Search, "$options": "i"}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	defer cur.Close(ctx)

	var blogs []*domain.Blog
	for cur.Next(ctx) {
		var doc blogDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode blog: %w", err)
		}
		blogs = append(blogs, doc.toDomain())
	}
	return blogs, total, cur.Err()
}

func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	oid, err := parseID(blog.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":      blog.Title,
		"slug":       blog.Slug,
		"body":       blog.Body,
		"excerpt":    blog.Excerpt,
		"image":      blog.Image,
		"category":   blog.Category,
		"tags":       blog.Tags,
		"status":     string(blog.Status),
		"featured":   blog.Featured,
		"updated_at": blog.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ConflictError{Field: "slug", Value: blog.Slug}
		}
		return fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

// AddLike uses $addToSet so an identity appears in the like set at most once.
func (r *BlogRepository) AddLike(ctx context.Context, id, userID string) error {
	return r.updateByID(ctx, id, bson.M{"$addToSet": bson.M{"likes": userID}})
}

func (r *BlogRepository) RemoveLike(ctx context.Context, id, userID string) error {
	return r.updateByID(ctx, id, bson.M{"$pull": bson.M{"likes": userID}})
}

func (r *BlogRepository) AddComment(ctx context.Context, id string, comment domain.Comment) error {
	doc := commentDoc{ID: comment.ID, UserID: comment.UserID, Text: comment.Text, CreatedAt: comment.CreatedAt}
	return r.updateByID(ctx, id, bson.M{"$push": bson.M{"comments": doc}})
}

func (r *BlogRepository) RemoveComment(ctx context.Context, id, commentID string) error {
	return r.updateByID(ctx, id, bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}})
}

func (r *BlogRepository) IncrementViews(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
}

func (r *BlogRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

// Stats aggregates totals, per-status counts and per-category counts.
func (r *BlogRepository) Stats(ctx context.Context) (*ports.BlogStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stats := &ports.BlogStats{ByCategory: make(map[string]int64)}

	byStatus, err := r.groupCounts(ctx, "$status")
	if err != nil {
		return nil, err
	}
	for status, n := range byStatus {
		stats.Total += n
		switch domain.BlogStatus(status) {
		case domain.BlogPublished:
			stats.Published = n
		case domain.BlogDraft:
			stats.Drafts = n
		case domain.BlogArchived:
			stats.Archived = n
		}
	}

	stats.ByCategory, err = r.groupCounts(ctx, "$category")
	if err != nil {
		return nil, err
	}

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "views": bson.M{"$sum": "$views"}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate views: %w", err)
	}
	defer cur.Close(ctx)
	if cur.Next(ctx) {
		var row struct {
			Views int64 `bson:"views"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode views: %w", err)
		}
		stats.TotalViews = row.Views
	}

	return stats, cur.Err()
}

func (r *BlogRepository) groupCounts(ctx context.Context, field string) (map[string]int64, error) {
	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", field, err)
	}
	defer cur.Close(ctx)

	out := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode group row: %w", err)
		}
		out[row.ID] = row.Count
	}
	return out, cur.Err()
}

// EnsureIndexes creates the unique slug index plus the common query indexes.
func (r *BlogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
