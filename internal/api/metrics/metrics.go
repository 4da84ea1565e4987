// Package metrics defines and registers all custom Prometheus metrics for
// the tracker API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Registration happens at init time via promauto; the HTTP middleware and
// handlers increment these directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "minijira"

// RegistrationsTotal counts successfully registered identities.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthzDeniedTotal counts ownership-authorization denials on mutating
// operations.
// Label:
//   - resource: "project" or "issue"
var AuthzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denied_total",
		Help:      "Total number of ownership checks that denied a mutation.",
	},
	[]string{"resource"},
)

// ProjectsCreatedTotal counts newly created projects.
var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

// IssuesCreatedTotal counts newly created issues.
// Label:
//   - priority: "LOW", "MEDIUM", "HIGH" or "CRITICAL"
var IssuesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issues_created_total",
		Help:      "Total number of issues created, by priority.",
	},
	[]string{"priority"},
)
