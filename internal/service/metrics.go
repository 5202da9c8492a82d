package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "omnia",
		Subsystem: "staking",
		Name:      "operations_total",
		Help:      "Staking operations by operation and result.",
	}, []string{"operation", "result"})

	persistenceFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "omnia",
		Subsystem: "staking",
		Name:      "persistence_failures_total",
		Help:      "Snapshots that could not be saved.",
	})

	disbursementFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "omnia",
		Subsystem: "staking",
		Name:      "disbursement_failures_total",
		Help:      "Reward entries that could not be recorded.",
	})

	rewardsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "omnia",
		Subsystem: "staking",
		Name:      "rewards_total",
		Help:      "Sum of estimated rewards for completed stakes.",
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "omnia",
		Subsystem: "staking",
		Name:      "active_sessions",
		Help:      "Accounts with an in-memory session.",
	})

	eventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "omnia",
		Subsystem: "events",
		Name:      "dropped_total",
		Help:      "State events not delivered to a subscriber.",
	})
)

func observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
}
