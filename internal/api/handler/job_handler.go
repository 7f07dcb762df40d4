package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/api/metrics"
	"github.com/devboard/devboard-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings. Reads are public;
// mutations are admin-gated at the routing layer.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List returns a page of postings sorted by priority, then recency.
//
// @Summary      List job postings
// @Tags         jobs
// @Produce      json
// @Param        department  query     string  false  "Department filter"
// @Param        type        query     string  false  "Employment type filter"
// @Param        experience  query     string  false  "Experience level filter"
// @Param        remote      query     bool    false  "Remote filter"
// @Param        active      query     bool    false  "Active filter"
// @Param        openOnly    query     bool    false  "Only postings currently accepting applications"
// @Param        search      query     string  false  "Title/location search"
// @Param        page        query     int     false  "Page number (1-based)"
// @Param        limit       query     int     false  "Page size (max 100)"
// @Success      200         {object}  map[string]any
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	filter := listJobsFilter(c)

	jobs, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respondPage(c, http.StatusOK, newJobViews(jobs), NewPagination(filter.Page, filter.Limit, total))
}

// Get resolves one posting by slug, counting the view at most once per
// address within the dedup window.
//
// @Summary      Get a job posting by slug
// @Tags         jobs
// @Produce      json
// @Param        slug  path      string  true  "Posting slug"
// @Success      200   {object}  map[string]any
// @Failure      404   {object}  map[string]string
// @Router       /jobs/{slug} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"), c.RealIP())
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, newJobView(job))
}

// Create stores a new posting.
//
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Posting details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), ports.CreateJobInput{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		Experience:       req.Experience,
		Department:       req.Department,
		Type:             req.Type,
		Location:         req.Location,
		Salary:           toSalaryInput(req.Salary),
		Remote:           req.Remote,
		Priority:         req.Priority,
		Deadline:         req.Deadline,
		ApplyURL:         req.ApplyURL,
		ApplyEmail:       req.ApplyEmail,
		Tags:             req.Tags,
	})
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(job.Department).Inc()
	return respond(c, http.StatusCreated, newJobView(job))
}

// Update applies a partial update to a posting.
//
// @Summary      Update a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Posting id"
// @Param        body  body      updateJobRequest  true  "Fields to update"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateJobInput{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Experience:       req.Experience,
		Department:       req.Department,
		Type:             req.Type,
		Location:         req.Location,
		Salary:           toSalaryInput(req.Salary),
		ClearSalary:      req.ClearSalary,
		Remote:           req.Remote,
		Active:           req.Active,
		Priority:         req.Priority,
		Deadline:         req.Deadline,
		ClearDeadline:    req.ClearDeadline,
		ApplyURL:         req.ApplyURL,
		ApplyEmail:       req.ApplyEmail,
	}
	if req.Requirements != nil {
		v := []string(*req.Requirements)
		in.Requirements = &v
	}
	if req.Responsibilities != nil {
		v := []string(*req.Responsibilities)
		in.Responsibilities = &v
	}
	if req.Benefits != nil {
		v := []string(*req.Benefits)
		in.Benefits = &v
	}
	if req.Tags != nil {
		v := []string(*req.Tags)
		in.Tags = &v
	}

	job, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, newJobView(job))
}

// Delete removes a posting.
//
// @Summary      Delete a job posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Posting id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]string{"message": "job deleted"})
}

// Apply registers an application against an open posting.
//
// @Summary      Apply to a job posting
// @Tags         jobs
// @Produce      json
// @Param        slug  path      string  true  "Posting slug"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /jobs/{slug}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	job, err := h.service.Apply(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	metrics.JobApplicationsTotal.WithLabelValues(job.Department).Inc()
	return respond(c, http.StatusOK, newJobView(job))
}

// Stats returns aggregate counters for the admin dashboard.
//
// @Summary      Job statistics
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]string
// @Router       /jobs/stats [get]
func (h *JobHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, stats)
}
