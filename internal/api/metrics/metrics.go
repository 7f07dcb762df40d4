// Package metrics defines and registers all custom Prometheus metrics for the
// devboard API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default registry via promauto at package load;
// the router exposes them on GET /metrics together with the standard HTTP
// request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devboard"

// BlogsCreatedTotal counts newly created blog posts.
// Label:
//   - category: the closed-set category of the post (e.g. "engineering")
var BlogsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blogs_created_total",
		Help:      "Total number of blog posts created, by category.",
	},
	[]string{"category"},
)

// JobsCreatedTotal counts newly created job postings.
// Label:
//   - department: the closed-set department (e.g. "engineering")
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of job postings created, by department.",
	},
	[]string{"department"},
)

// JobApplicationsTotal counts accepted job applications.
// Label:
//   - department: the department of the posting applied to
var JobApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_applications_total",
		Help:      "Total number of accepted job applications, by department.",
	},
	[]string{"department"},
)

// UploadsRejectedTotal counts upload requests rejected by validation
// (oversized file, disallowed type, too many files, unsafe filename).
var UploadsRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Total number of upload requests rejected by validation.",
	},
)

// ViewsTotal counts deduplicated resource views.
// Label:
//   - kind: "blog" or "job"
var ViewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "views_total",
		Help:      "Total number of counted (deduplicated) resource views, by kind.",
	},
	[]string{"kind"},
)
