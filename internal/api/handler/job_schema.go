package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

type salaryRequest struct {
	Min      *float64 `json:"min" validate:"omitempty,gte=0"`
	Max      *float64 `json:"max" validate:"omitempty,gte=0"`
	Currency string   `json:"currency" validate:"required,oneof=USD EUR GBP INR"`
	Period   string   `json:"period" validate:"required,oneof=hourly monthly yearly"`
}

type createJobRequest struct {
	Title            string         `json:"title" validate:"required,min=3,max=200"`
	ShortDescription string         `json:"shortDescription" validate:"required,max=300"`
	Description      string         `json:"description" validate:"required"`
	Requirements     StringList     `json:"requirements"`
	Responsibilities StringList     `json:"responsibilities"`
	Benefits         StringList     `json:"benefits"`
	Experience       string         `json:"experience" validate:"required,oneof=entry mid senior lead"`
	Department       string         `json:"department" validate:"required,oneof=engineering design marketing sales operations hr finance"`
	Type             string         `json:"type" validate:"required,oneof=full-time part-time contract internship"`
	Location         string         `json:"location" validate:"required"`
	Salary           *salaryRequest `json:"salary"`
	Remote           bool           `json:"remote"`
	Priority         int            `json:"priority" validate:"gte=0,lte=10"`
	Deadline         *time.Time     `json:"deadline"`
	ApplyURL         string         `json:"applyUrl" validate:"omitempty,url"`
	ApplyEmail       string         `json:"applyEmail" validate:"omitempty,email"`
	Tags             StringList     `json:"tags"`
}

type updateJobRequest struct {
	Title            *string        `json:"title" validate:"omitempty,min=3,max=200"`
	ShortDescription *string        `json:"shortDescription" validate:"omitempty,max=300"`
	Description      *string        `json:"description" validate:"omitempty,min=1"`
	Requirements     *StringList    `json:"requirements"`
	Responsibilities *StringList    `json:"responsibilities"`
	Benefits         *StringList    `json:"benefits"`
	Experience       *string        `json:"experience" validate:"omitempty,oneof=entry mid senior lead"`
	Department       *string        `json:"department" validate:"omitempty,oneof=engineering design marketing sales operations hr finance"`
	Type             *string        `json:"type" validate:"omitempty,oneof=full-time part-time contract internship"`
	Location         *string        `json:"location" validate:"omitempty,min=1"`
	Salary           *salaryRequest `json:"salary"`
	ClearSalary      bool           `json:"clearSalary"`
	Remote           *bool          `json:"remote"`
	Active           *bool          `json:"active"`
	Priority         *int           `json:"priority" validate:"omitempty,gte=0,lte=10"`
	Deadline         *time.Time     `json:"deadline"`
	ClearDeadline    bool           `json:"clearDeadline"`
	ApplyURL         *string        `json:"applyUrl" validate:"omitempty,url"`
	ApplyEmail       *string        `json:"applyEmail" validate:"omitempty,email"`
	Tags             *StringList    `json:"tags"`
}

// jobView is the wire shape of a job posting, with the derived salary line
// and open/closed state recomputed on every read.
type jobView struct {
	*domain.Job
	FormattedSalary string `json:"formattedSalary"`
	IsOpen          bool   `json:"isOpen"`
}

func newJobView(j *domain.Job) jobView {
	return jobView{
		Job:             j,
		FormattedSalary: j.Salary.Format(),
		IsOpen:          j.IsOpen(time.Now()),
	}
}

func newJobViews(jobs []*domain.Job) []jobView {
	views := make([]jobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, newJobView(j))
	}
	return views
}

func toSalaryInput(r *salaryRequest) *ports.SalaryInput {
	if r == nil {
		return nil
	}
	return &ports.SalaryInput{Min: r.Min, Max: r.Max, Currency: r.Currency, Period: r.Period}
}

func listJobsFilter(c echo.Context) ports.ListJobsFilter {
	f := ports.ListJobsFilter{
		Department: c.QueryParam("department"),
		Type:       c.QueryParam("type"),
		Experience: c.QueryParam("experience"),
		Search:     c.QueryParam("search"),
	}
	if v := c.QueryParam("remote"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Remote = &b
		}
	}
	if v := c.QueryParam("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Active = &b
		}
	}
	if b, err := strconv.ParseBool(c.QueryParam("openOnly")); err == nil {
		f.OpenOnly = b
	}
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return f
}
