// Package metrics exposes Prometheus instrumentation for payout processing
// and retry activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PayoutRuns counts reconciliation runs, labelled by trigger ("manual" or "batch").
	PayoutRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payout_runs_total",
		Help: "Number of payout reconciliation runs.",
	}, []string{"trigger"})

	// PayoutResults counts per-coach payout outcomes by status.
	PayoutResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payout_results_total",
		Help: "Per-coach payout outcomes by status (success, skipped, failed).",
	}, []string{"status"})

	// PayoutAmountCents accumulates successfully transferred amounts.
	PayoutAmountCents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payout_amount_cents_total",
		Help: "Total amount transferred to coaches, in cents.",
	})

	// RetryAttempts counts backoff retries by policy label.
	RetryAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retry_attempts_total",
		Help: "Number of retry attempts against external collaborators, by policy label.",
	}, []string{"policy"})
)
