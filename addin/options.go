package addin

import (
	"github.com/dkavolis/rpcad/metric"
	"github.com/dkavolis/rpcad/service"
)

// Notifier shows messages to the user through the host UI. The default
// discards them.
type Notifier interface {
	ShowError(message string)
}

type noopNotifier struct{}

func (noopNotifier) ShowError(message string) {
}

type Option func(o *options)

type options struct {
	notifier      Notifier
	serverOptions []service.ServerOption
	collectorCron string
}

func newOptions() *options {
	return &options{
		notifier:      noopNotifier{},
		collectorCron: metric.EverySecond,
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(o *options) {
		o.notifier = notifier
	}
}

func ServerOptions(opts ...service.ServerOption) Option {
	return func(o *options) {
		o.serverOptions = append(o.serverOptions, opts...)
	}
}

func CollectorCron(cronSpec string) Option {
	return func(o *options) {
		if cronSpec != "" {
			o.collectorCron = cronSpec
		}
	}
}
