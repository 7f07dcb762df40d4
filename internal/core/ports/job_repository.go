package ports

import (
	"context"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// ListJobsFilter carries all query parameters for listing job postings.
type ListJobsFilter struct {
	Department string // optional: closed-set department
	Type       string // optional: employment type
	Experience string // optional: experience level
	Remote     *bool  // optional: remote flag
	Active     *bool  // optional: active flag
	OpenOnly   bool   // only postings currently accepting applications
	Search     string // optional: case-insensitive match on title or location
	Page       int    // 1-based
	Limit      int    // rows per page (capped by the service)
}

// JobStats is the aggregation result for the admin statistics endpoint.
type JobStats struct {
	Total             int64            `json:"total"`
	Active            int64            `json:"active"`
	TotalViews        int64            `json:"totalViews"`
	TotalApplications int64            `json:"totalApplications"`
	ByDepartment      map[string]int64 `json:"byDepartment"`
}

// JobRepository defines persistence operations for job postings. Job slugs
// carry a timestamp suffix so Create never hits a uniqueness conflict.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Job, error)
	// List returns a page sorted by priority descending, then newest first.
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error

	IncrementViews(ctx context.Context, id string) error
	IncrementApplications(ctx context.Context, id string) error
	Stats(ctx context.Context) (*JobStats, error)
}
