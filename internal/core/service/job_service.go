package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

// JobService implements the job-board operations.
type JobService struct {
	repo  ports.JobRepository
	views ports.ViewTracker
	log   zerolog.Logger
}

func NewJobService(repo ports.JobRepository, views ports.ViewTracker, log zerolog.Logger) *JobService {
	return &JobService{repo: repo, views: views, log: log}
}

func (s *JobService) Create(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	now := time.Now().UTC()
	slug := domain.JobSlug(in.Title, now)
	if domain.Slugify(in.Title) == "" {
		return nil, domain.NewValidationError("title", "must contain at least one alphanumeric character")
	}

	job := &domain.Job{
		Title:            in.Title,
		Slug:             slug,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		Requirements:     emptyIfNil(in.Requirements),
		Responsibilities: emptyIfNil(in.Responsibilities),
		Benefits:         emptyIfNil(in.Benefits),
		Experience:       in.Experience,
		Department:       in.Department,
		Type:             in.Type,
		Location:         in.Location,
		Salary:           toSalary(in.Salary),
		Remote:           in.Remote,
		Active:           true,
		Priority:         in.Priority,
		Deadline:         in.Deadline,
		ApplyURL:         in.ApplyURL,
		ApplyEmail:       in.ApplyEmail,
		Tags:             emptyIfNil(in.Tags),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("job_id", created.ID).Str("slug", created.Slug).Str("department", created.Department).Msg("job posting created")
	return created, nil
}

func (s *JobService) List(ctx context.Context, filter ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}

func (s *JobService) GetBySlug(ctx context.Context, slug, viewerAddr string) (*domain.Job, error) {
	job, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if first, err := s.views.FirstView(ctx, "job", slug, viewerAddr); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("view dedup check failed, skipping count")
	} else if first {
		if err := s.repo.IncrementViews(ctx, job.ID); err != nil {
			s.log.Warn().Err(err).Str("job_id", job.ID).Msg("failed to increment views")
		} else {
			job.Views++
		}
	}

	return job, nil
}

func (s *JobService) Update(ctx context.Context, id string, in ports.UpdateJobInput) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != job.Title {
		if domain.Slugify(*in.Title) == "" {
			return nil, domain.NewValidationError("title", "must contain at least one alphanumeric character")
		}
		job.Title = *in.Title
		job.Slug = domain.JobSlug(*in.Title, time.Now().UTC())
	}
	if in.ShortDescription != nil {
		job.ShortDescription = *in.ShortDescription
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Requirements != nil {
		job.Requirements = *in.Requirements
	}
	if in.Responsibilities != nil {
		job.Responsibilities = *in.Responsibilities
	}
	if in.Benefits != nil {
		job.Benefits = *in.Benefits
	}
	if in.Experience != nil {
		job.Experience = *in.Experience
	}
	if in.Department != nil {
		job.Department = *in.Department
	}
	if in.Type != nil {
		job.Type = *in.Type
	}
	if in.Location != nil {
		job.Location = *in.Location
	}
	// A nil pointer means "untouched", so absence is cleared through the
	// explicit flags rather than by omitting the field.
	if in.ClearSalary {
		job.Salary = nil
	} else if in.Salary != nil {
		job.Salary = toSalary(in.Salary)
	}
	if in.Remote != nil {
		job.Remote = *in.Remote
	}
	if in.Active != nil {
		job.Active = *in.Active
	}
	if in.Priority != nil {
		job.Priority = *in.Priority
	}
	if in.ClearDeadline {
		job.Deadline = nil
	} else if in.Deadline != nil {
		job.Deadline = in.Deadline
	}
	if in.ApplyURL != nil {
		job.ApplyURL = *in.ApplyURL
	}
	if in.ApplyEmail != nil {
		job.ApplyEmail = *in.ApplyEmail
	}
	if in.Tags != nil {
		job.Tags = *in.Tags
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("job_id", id).Msg("job posting deleted")
	return nil
}

func (s *JobService) Apply(ctx context.Context, slug string) (*domain.Job, error) {
	job, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !job.IsOpen(time.Now().UTC()) {
		return nil, domain.ErrJobClosed
	}

	if err := s.repo.IncrementApplications(ctx, job.ID); err != nil {
		return nil, err
	}
	job.Applications++

	s.log.Info().Str("job_id", job.ID).Str("slug", slug).Msg("application recorded")
	return job, nil
}

func (s *JobService) Stats(ctx context.Context) (*ports.JobStats, error) {
	return s.repo.Stats(ctx)
}

func toSalary(in *ports.SalaryInput) *domain.Salary {
	if in == nil {
		return nil
	}
	s := &domain.Salary{Currency: in.Currency, Period: in.Period}
	if in.Min != nil {
		s.Min = *in.Min
	}
	if in.Max != nil {
		s.Max = *in.Max
	}
	return s
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
