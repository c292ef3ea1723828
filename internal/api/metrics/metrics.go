// Package metrics defines and registers all custom Prometheus metrics for the
// policy administration API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "policyadmin"

// ── Policy metrics ────────────────────────────────────────────────────────────

// PoliciesPurchasedTotal counts successful policy purchases.
// Label:
//   - product_code: the catalog code of the purchased product
var PoliciesPurchasedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policies_purchased_total",
		Help:      "Total number of policies purchased, by product code.",
	},
	[]string{"product_code"},
)

// PoliciesCancelledTotal counts successful policy cancellations.
var PoliciesCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policies_cancelled_total",
		Help:      "Total number of policies cancelled by their holders.",
	},
)

// ── Claim metrics ─────────────────────────────────────────────────────────────

// ClaimsCreatedTotal counts newly filed claims.
var ClaimsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_created_total",
		Help:      "Total number of claims filed.",
	},
)

// ClaimsDecidedTotal counts claim decisions.
// Label:
//   - decision: "APPROVED" or "REJECTED"
var ClaimsDecidedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "claims_decided_total",
		Help:      "Total number of claim decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsRecordedTotal counts payment attempts that reached the processor.
// Labels:
//   - method: CARD, NETBANKING, OFFLINE or SIMULATED
//   - outcome: "success" or "failed"
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payment attempts, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// PaymentProcessingDuration measures end-to-end payment recording latency,
// including the processor round trip.
var PaymentProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_processing_duration_seconds",
		Help:      "Duration of payment recording from request to ledger insert.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEntriesTotal counts audit trail entries emitted.
// Label:
//   - action: the audit action label (e.g. "policy purchase")
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit trail entries emitted, by action.",
	},
	[]string{"action"},
)
