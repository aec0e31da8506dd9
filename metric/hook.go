// Package metric publishes prometheus metrics for the dispatch bridge.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/txix-open/isp-kit/metrics"

	"github.com/dkavolis/rpcad/dispatch"
)

// DispatchHook observes every completed dispatch: wait duration per
// operation and a failure counter.
func DispatchHook() dispatch.Hook {
	waitTime := metrics.GetOrRegister(
		metrics.DefaultRegistry,
		prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       "rpcad_dispatch_duration_ms",
			Help:       "Time from firing the host event to completion in milliseconds",
			Objectives: metrics.DefaultObjectives,
		}, []string{"operation"}),
	)
	failures := metrics.GetOrRegister(
		metrics.DefaultRegistry,
		prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpcad_dispatch_failures_total",
			Help: "Dispatched operations completed with an error",
		}, []string{"operation"}),
	)
	return func(data dispatch.HookData) {
		waitTime.WithLabelValues(data.Operation).Observe(float64(data.WaitTime.Milliseconds()))
		if data.Failed {
			failures.WithLabelValues(data.Operation).Inc()
		}
	}
}
