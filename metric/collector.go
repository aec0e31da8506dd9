package metric

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/txix-open/isp-kit/metrics"
)

const (
	EverySecond = "* * * * * *"
)

// PendingSource reports dispatched calls still waiting on the host's
// privileged thread, grouped by operation id.
type PendingSource interface {
	PendingByOperation() map[string]int
}

// Collector samples a bridge's pending registry into a per-operation gauge on
// a cron schedule. Operations with no pending calls drop out of the gauge on
// the next sample.
type Collector struct {
	schedule cron.Schedule
	module   string
	gauge    *prometheus.GaugeVec
	closed   chan struct{}
}

func NewCollector(cronSpec string, module string) *Collector {
	schedule, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	).Parse(cronSpec)
	if err != nil {
		panic(errors.WithMessagef(err, "parse %s", cronSpec))
	}

	gauge := metrics.GetOrRegister(
		metrics.DefaultRegistry,
		prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rpcad_pending_dispatches",
			Help: "Dispatched calls waiting on the host's privileged thread",
		}, []string{"operation", "module"}),
	)

	return &Collector{
		schedule: schedule,
		module:   module,
		gauge:    gauge,
		closed:   make(chan struct{}),
	}
}

// Watch samples source until Close.
func (c *Collector) Watch(source PendingSource) {
	go func() {
		for {
			c.gauge.Reset()
			for operation, count := range source.PendingByOperation() {
				c.gauge.WithLabelValues(operation, c.module).Set(float64(count))
			}

			now := time.Now()
			nextRun := c.schedule.Next(now)
			select {
			case <-time.After(nextRun.Sub(now)):
			case <-c.closed:
				return
			}
		}
	}()
}

func (c *Collector) Close() error {
	close(c.closed)
	return nil
}
