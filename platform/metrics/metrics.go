// Package metrics exposes Prometheus counters for the application.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the application's Prometheus collectors.
type Metrics struct {
	LeadsCreated         prometheus.Counter
	LeadSubmissionErrors *prometheus.CounterVec
	ChallengeResults     *prometheus.CounterVec
	StatusUpdates        prometheus.Counter
}

// New registers and returns the application metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		LeadsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homeshield_leads_created_total",
			Help: "Number of leads persisted from consultation submissions.",
		}),
		LeadSubmissionErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "homeshield_lead_submission_errors_total",
			Help: "Rejected consultation submissions by error kind.",
		}, []string{"kind"}),
		ChallengeResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "homeshield_challenge_verifications_total",
			Help: "Bot-challenge verification outcomes.",
		}, []string{"outcome"}),
		StatusUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "homeshield_lead_status_updates_total",
			Help: "Staff lead status updates.",
		}),
	}
}
