package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Closed enumerations for job postings.
var (
	JobExperienceLevels = []string{"entry", "mid", "senior", "lead"}
	JobDepartments      = []string{"engineering", "design", "marketing", "sales", "operations", "hr", "finance"}
	JobTypes            = []string{"full-time", "part-time", "contract", "internship"}
	SalaryPeriods       = []string{"hourly", "monthly", "yearly"}
	SalaryCurrencies    = []string{"USD", "EUR", "GBP", "INR"}
)

// Salary is an optional sub-record on a job posting. Min and Max are
// deliberately loose-typed: the store does not enforce numeric amounts, so
// legacy documents may carry strings. Formatting degrades to "Invalid" for
// such values instead of failing the read.
type Salary struct {
	Min      any    `json:"min,omitempty" bson:"min,omitempty"`
	Max      any    `json:"max,omitempty" bson:"max,omitempty"`
	Currency string `json:"currency" bson:"currency"`
	Period   string `json:"period" bson:"period"`
}

// FormatAmount renders a single salary amount for the given period.
//
//	hourly            → "<amount>/hr" (no magnitude scaling)
//	amount >= 100000  → "<amount/100000 to 1 decimal>L"
//	amount >= 1000    → "<amount/1000 rounded>K"
//	otherwise         → bare integer
//
// Non-numeric amounts render as "Invalid".
func FormatAmount(amount any, period string) string {
	v, ok := toFloat(amount)
	if !ok {
		return "Invalid"
	}
	if period == "hourly" {
		return strconv.FormatFloat(v, 'f', -1, 64) + "/hr"
	}
	switch {
	case v >= 100000:
		return fmt.Sprintf("%.1fL", v/100000)
	case v >= 1000:
		return fmt.Sprintf("%dK", int64(math.Round(v/1000)))
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Format renders the full salary range line.
//
//	both bounds → "<min> - <max> <currency>/<period>"
//	min only    → "<min>+ <currency>/<period>"
//	max only    → "Up to <max> <currency>/<period>"
//	neither     → "Not specified"
func (s *Salary) Format() string {
	if s == nil || (s.Min == nil && s.Max == nil) {
		return "Not specified"
	}
	suffix := s.Currency + "/" + s.Period
	switch {
	case s.Min != nil && s.Max != nil:
		return fmt.Sprintf("%s - %s %s", FormatAmount(s.Min, s.Period), FormatAmount(s.Max, s.Period), suffix)
	case s.Min != nil:
		return fmt.Sprintf("%s+ %s", FormatAmount(s.Min, s.Period), suffix)
	default:
		return fmt.Sprintf("Up to %s %s", FormatAmount(s.Max, s.Period), suffix)
	}
}

// toFloat coerces the numeric types the JSON decoder and the BSON decoder can
// produce. Anything else (notably strings like "100k") is non-numeric.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Job is the job-posting aggregate.
type Job struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	Title            string     `json:"title" bson:"title"`
	Slug             string     `json:"slug" bson:"slug"`
	ShortDescription string     `json:"short_description" bson:"short_description"`
	Description      string     `json:"description" bson:"description"`
	Requirements     []string   `json:"requirements" bson:"requirements"`
	Responsibilities []string   `json:"responsibilities" bson:"responsibilities"`
	Benefits         []string   `json:"benefits" bson:"benefits"`
	Experience       string     `json:"experience" bson:"experience"`
	Department       string     `json:"department" bson:"department"`
	Type             string     `json:"type" bson:"type"`
	Location         string     `json:"location" bson:"location"`
	Salary           *Salary    `json:"salary,omitempty" bson:"salary,omitempty"`
	Remote           bool       `json:"remote" bson:"remote"`
	Active           bool       `json:"active" bson:"active"`
	Priority         int        `json:"priority" bson:"priority"`
	Deadline         *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	ApplyURL         string     `json:"apply_url,omitempty" bson:"apply_url,omitempty"`
	ApplyEmail       string     `json:"apply_email,omitempty" bson:"apply_email,omitempty"`
	Tags             []string   `json:"tags" bson:"tags"`
	Views            int64      `json:"views" bson:"views"`
	Applications     int64      `json:"applications" bson:"applications"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" bson:"updated_at"`
}

// IsOpen reports whether the posting accepts applications at the given time:
// active and either no deadline or the deadline has not passed. This is a
// derived property recomputed on every read, never stored.
func (j *Job) IsOpen(now time.Time) bool {
	if !j.Active {
		return false
	}
	return j.Deadline == nil || !now.After(*j.Deadline)
}

func inSet(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ValidJobExperience, ValidJobDepartment, ValidJobType, ValidSalaryPeriod and
// ValidSalaryCurrency check enum membership for their respective fields.
func ValidJobExperience(v string) bool  { return inSet(v, JobExperienceLevels) }
func ValidJobDepartment(v string) bool  { return inSet(v, JobDepartments) }
func ValidJobType(v string) bool        { return inSet(v, JobTypes) }
func ValidSalaryPeriod(v string) bool   { return inSet(v, SalaryPeriods) }
func ValidSalaryCurrency(v string) bool { return inSet(v, SalaryCurrencies) }
