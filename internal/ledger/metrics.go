package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	transactionsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_transactions_submitted_total",
			Help: "Total number of transactions broadcast and recorded",
		},
		[]string{"network"},
	)

	submissionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_submission_failures_total",
			Help: "Total number of submissions rejected by the chain client",
		},
		[]string{"network", "stage"},
	)

	statusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_transaction_status_transitions_total",
			Help: "Total number of pending transactions resolved, by final status",
		},
		[]string{"network", "status"},
	)

	pendingTransactions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallet_transactions_pending",
			Help: "Number of ledger entries still pending",
		},
	)
)
