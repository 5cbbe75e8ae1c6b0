package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transitions принятые переходы состояний заявок
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesupport",
		Name:      "state_transitions_total",
		Help:      "Accepted support request state transitions.",
	}, []string{"from", "to"})

	// RejectedUpdates отклонённые изменения по типу ошибки
	RejectedUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesupport",
		Name:      "rejected_updates_total",
		Help:      "Support request mutations rejected by validation or workflow rules.",
	}, []string{"reason"})

	// DeferredFailures ошибки отложенных действий после commit
	DeferredFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesupport",
		Name:      "deferred_action_failures_total",
		Help:      "Post-commit actions that failed and were swallowed.",
	}, []string{"kind"})

	// DocumentsIssued выпущенные кредит-ноты
	DocumentsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tradesupport",
		Name:      "credit_notes_issued_total",
		Help:      "Credit notes issued on posting.",
	})
)
