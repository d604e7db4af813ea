package main

import (
	"dascopy/internal/usecasees/structs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Replication map[structs.MetricConst]prometheus.Counter
}

func (a *App) InitMetrics() {
	metrics := Metrics{Replication: map[structs.MetricConst]prometheus.Counter{}}

	for _, m := range []structs.MetricConst{
		structs.MetricOrderReplicated,
		structs.MetricOrderFailed,
		structs.MetricOrderCancelled,
		structs.MetricOrderReplaced,
		structs.MetricActionQueued,
		structs.MetricLocateCompleted,
		structs.MetricLocateFailed,
		structs.MetricTaskCancelled,
	} {
		metrics.Replication[m] = promauto.NewCounter(prometheus.CounterOpts{
			Name: m.ToString(),
			Help: m.ToString(),
		})
	}

	a.Metrics = &metrics
}
