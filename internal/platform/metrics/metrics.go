// Package metrics exposes the prometheus collectors of the ledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsCommitted counts committed ledger transactions.
	TransactionsCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "transactions_committed_total",
		Help:      "Number of balanced transactions committed to the ledger.",
	})

	// TransactionsRejected counts commits refused before anything was written.
	TransactionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "transactions_rejected_total",
		Help:      "Number of commits rejected, by reason.",
	}, []string{"reason"})

	// DocumentsApproved counts approvals by document type.
	DocumentsApproved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "documents_approved_total",
		Help:      "Number of financial documents approved, by type.",
	}, []string{"type"})

	// PaymentsApplied counts applied payments by payment type.
	PaymentsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "payments_applied_total",
		Help:      "Number of payments allocated to invoices, by type.",
	}, []string{"type"})

	// OutboxDispatched counts outbox events handed to the queue.
	OutboxDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "outbox_events_dispatched_total",
		Help:      "Number of outbox events published.",
	})

	// TransactionsIndexed counts committed-transaction events consumed by the indexer.
	TransactionsIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "transactions_indexed_total",
		Help:      "Number of committed transactions processed by the indexing subscriber.",
	})

	// HTTPRequests counts handled requests by route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ledger",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)
