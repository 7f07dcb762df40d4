package ports

import (
	"context"
	"time"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// SalaryInput is the optional salary sub-record on create/update. Amounts are
// numeric on the write path; loose typing exists only for stored documents.
type SalaryInput struct {
	Min      *float64
	Max      *float64
	Currency string
	Period   string
}

// CreateJobInput carries the fields for creating a job posting.
type CreateJobInput struct {
	Title            string
	ShortDescription string
	Description      string
	Requirements     []string
	Responsibilities []string
	Benefits         []string
	Experience       string
	Department       string
	Type             string
	Location         string
	Salary           *SalaryInput
	Remote           bool
	Priority         int
	Deadline         *time.Time
	ApplyURL         string
	ApplyEmail       string
	Tags             []string
}

// UpdateJobInput carries optional fields for a partial update. Nil pointers
// leave their field untouched, so removing an optional sub-record takes an
// explicit clear flag; a clear flag wins over a value supplied alongside it.
type UpdateJobInput struct {
	Title            *string
	ShortDescription *string
	Description      *string
	Requirements     *[]string
	Responsibilities *[]string
	Benefits         *[]string
	Experience       *string
	Department       *string
	Type             *string
	Location         *string
	Salary           *SalaryInput
	ClearSalary      bool
	Remote           *bool
	Active           *bool
	Priority         *int
	Deadline         *time.Time
	ClearDeadline    bool
	ApplyURL         *string
	ApplyEmail       *string
	Tags             *[]string
}

// JobService implements the job-board operations. Mutations are admin-gated
// at the routing layer; reads are public.
type JobService interface {
	Create(ctx context.Context, in CreateJobInput) (*domain.Job, error)
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	GetBySlug(ctx context.Context, slug, viewerAddr string) (*domain.Job, error)
	// Update applies a partial update. A title change re-derives the slug,
	// including a fresh timestamp suffix.
	Update(ctx context.Context, id string, in UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
	// Apply increments the application counter. Applying to a closed posting
	// fails with domain.ErrJobClosed.
	Apply(ctx context.Context, slug string) (*domain.Job, error)
	Stats(ctx context.Context) (*JobStats, error)
}
