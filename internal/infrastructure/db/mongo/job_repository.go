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

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

// salaryDoc keeps min/max loose-typed on purpose: the store does not enforce
// numeric amounts and reads must tolerate legacy string values.
type salaryDoc struct {
	Min      any    `bson:"min,omitempty"`
	Max      any    `bson:"max,omitempty"`
	Currency string `bson:"currency"`
	Period   string `bson:"period"`
}

type jobDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Slug             string             `bson:"slug"`
	ShortDescription string             `bson:"short_description"`
	Description      string             `bson:"description"`
	Requirements     []string           `bson:"requirements"`
	Responsibilities []string           `bson:"responsibilities"`
	Benefits         []string           `bson:"benefits"`
	Experience       string             `bson:"experience"`
	Department       string             `bson:"department"`
	Type             string             `bson:"type"`
	Location         string             `bson:"location"`
	Salary           *salaryDoc         `bson:"salary,omitempty"`
	Remote           bool               `bson:"remote"`
	Active           bool               `bson:"active"`
	Priority         int                `bson:"priority"`
	Deadline         *time.Time         `bson:"deadline,omitempty"`
	ApplyURL         string             `bson:"apply_url,omitempty"`
	ApplyEmail       string             `bson:"apply_email,omitempty"`
	Tags             []string           `bson:"tags"`
	Views            int64              `bson:"views"`
	Applications     int64              `bson:"applications"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func jobToDoc(j *domain.Job) jobDoc {
	doc := jobDoc{
		Title:            j.Title,
		Slug:             j.Slug,
		ShortDescription: j.ShortDescription,
		Description:      j.Description,
		Requirements:     j.Requirements,
		Responsibilities: j.Responsibilities,
		Benefits:         j.Benefits,
		Experience:       j.Experience,
		Department:       j.Department,
		Type:             j.Type,
		Location:         j.Location,
		Remote:           j.Remote,
		Active:           j.Active,
		Priority:         j.Priority,
		Deadline:         j.Deadline,
		ApplyURL:         j.ApplyURL,
		ApplyEmail:       j.ApplyEmail,
		Tags:             j.Tags,
		Views:            j.Views,
		Applications:     j.Applications,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
	}
	if j.Salary != nil {
		doc.Salary = &salaryDoc{Min: j.Salary.Min, Max: j.Salary.Max, Currency: j.Salary.Currency, Period: j.Salary.Period}
	}
	return doc
}

func (d *jobDoc) toDomain() *domain.Job {
	j := &domain.Job{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		Slug:             d.Slug,
		ShortDescription: d.ShortDescription,
		Description:      d.Description,
		Requirements:     d.Requirements,
		Responsibilities: d.Responsibilities,
		Benefits:         d.Benefits,
		Experience:       d.Experience,
		Department:       d.Department,
		Type:             d.Type,
		Location:         d.Location,
		Remote:           d.Remote,
		Active:           d.Active,
		Priority:         d.Priority,
		Deadline:         d.Deadline,
		ApplyURL:         d.ApplyURL,
		ApplyEmail:       d.ApplyEmail,
		Tags:             d.Tags,
		Views:            d.Views,
		Applications:     d.Applications,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.Salary != nil {
		j.Salary = &domain.Salary{Min: d.Salary.Min, Max: d.Salary.Max, Currency: d.Salary.Currency, Period: d.Salary.Period}
	}
	return j
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, jobToDoc(job))
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	created := *job
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *JobRepository) FindBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *JobRepository) findOne(ctx context.Context, filter bson.M) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return doc.toDomain(), nil
}

// jobListFilter translates the list filter into a Mongo query. openOnly is
// derived, not stored: it expands to active plus a deadline window against
// the supplied clock. Search and openOnly both need $or, so multi-branch
// clauses combine under $and.
func jobListFilter(f ports.ListJobsFilter, now time.Time) bson.M {
	filter := bson.M{}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Experience != "" {
		filter["experience"] = f.Experience
	}
	if f.Remote != nil {
		filter["remote"] = *f.Remote
	}
	if f.Active != nil {
		filter["active"] = *f.Active
	}

	var clauses bson.A
	if f.OpenOnly {
		filter["active"] = true
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"deadline": nil},
			bson.M{"deadline": bson.M{"$gte": now}},
		}})
	}
	if f.Search != "" {
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"title": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"location": bson.M{"$regex": f.Search, "$options": "i"}},
		}})
	}
	if len(clauses) > 0 {
		filter["$and"] = clauses
	}
	return filter
}

// List returns a page sorted by priority descending, then newest first.
func (r *JobRepository) List(ctx context.Context, f ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := jobListFilter(f, time.Now().UTC())

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.Job
	for cur.Next(ctx) {
		var doc jobDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, doc.toDomain())
	}
	return jobs, total, cur.Err()
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	oid, err := parseID(job.ID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"title":             job.Title,
		"slug":              job.Slug,
		"short_description": job.ShortDescription,
		"description":       job.Description,
		"requirements":      job.Requirements,
		"responsibilities":  job.Responsibilities,
		"benefits":          job.Benefits,
		"experience":        job.Experience,
		"department":        job.Department,
		"type":              job.Type,
		"location":          job.Location,
		"remote":            job.Remote,
		"active":            job.Active,
		"priority":          job.Priority,
		"deadline":          job.Deadline,
		"apply_url":         job.ApplyURL,
		"apply_email":       job.ApplyEmail,
		"tags":              job.Tags,
		"updated_at":        job.UpdatedAt,
	}
	if job.Salary != nil {
		set["salary"] = salaryDoc{Min: job.Salary.Min, Max: job.Salary.Max, Currency: job.Salary.Currency, Period: job.Salary.Period}
	} else {
		set["salary"] = nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) IncrementViews(ctx context.Context, id string) error {
	return r.incField(ctx, id, "views")
}

func (r *JobRepository) IncrementApplications(ctx context.Context, id string) error {
	return r.incField(ctx, id, "applications")
}

func (r *JobRepository) incField(ctx context.Context, id, field string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return fmt.Errorf("increment %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// Stats aggregates totals, counters and the per-department breakdown.
func (r *JobRepository) Stats(ctx context.Context) (*ports.JobStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stats := &ports.JobStats{ByDepartment: make(map[string]int64)}

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"total":        bson.M{"$sum": 1},
			"active":       bson.M{"$sum": bson.M{"$cond": bson.A{"$active", 1, 0}}},
			"views":        bson.M{"$sum": "$views"},
			"applications": bson.M{"$sum": "$applications"},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate job totals: %w", err)
	}
	defer cur.Close(ctx)
	if cur.Next(ctx) {
		var row struct {
			Total        int64 `bson:"total"`
			Active       int64 `bson:"active"`
			Views        int64 `bson:"views"`
			Applications int64 `bson:"applications"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode job totals: %w", err)
		}
		stats.Total = row.Total
		stats.Active = row.Active
		stats.TotalViews = row.Views
		stats.TotalApplications = row.Applications
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	byDept, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$department", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate departments: %w", err)
	}
	defer byDept.Close(ctx)
	for byDept.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := byDept.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode department row: %w", err)
		}
		stats.ByDepartment[row.ID] = row.Count
	}
	return stats, byDept.Err()
}

// EnsureIndexes creates the query indexes. The slug index is deliberately
// NOT unique: job slugs disambiguate via their timestamp suffix and the
// create path never rejects a collision.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}},
		{Keys: bson.D{{Key: "department", Value: 1}}},
		{Keys: bson.D{{Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
