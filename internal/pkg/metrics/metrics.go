package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calendar_provider_calls_total",
		Help: "Calendar provider calls by operation and result.",
	}, []string{"operation", "result"})

	NotificationsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_dispatched_total",
		Help: "Notification tasks by type and result.",
	}, []string{"type", "result"})

	SchedulingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scheduling_conflicts_total",
		Help: "Mutations rejected because of an assignee time conflict.",
	})
)

func ObserveProviderCall(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ProviderCalls.WithLabelValues(operation, result).Inc()
}
