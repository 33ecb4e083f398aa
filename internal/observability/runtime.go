// Package observability starts tracing, profiling and the pprof listener for one process
// and tears them down in reverse order.
package observability

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/excitement-engine/internal/config"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
)

// Role tags every span and profile with the process that produced it.
type Role string

const (
	RoleAPI    Role = "api"
	RoleWorker Role = "worker"
)

type stopFunc struct {
	name string
	stop func(context.Context) error
}

// Runtime owns the observability exporters started for a process.
type Runtime struct {
	logger *logging.Logger
	stops  []stopFunc
}

// Start brings up each enabled exporter. When one fails, the ones already started are
// shut down before the error is returned.
func Start(ctx context.Context, cfg config.Config, role Role, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger.Named("observability")}

	steps := []struct {
		name  string
		start func() (func(context.Context) error, error)
	}{
		{name: "uptrace", start: func() (func(context.Context) error, error) { return initUptrace(cfg, role, rt.logger) }},
		{name: "pyroscope", start: func() (func(context.Context) error, error) { return initPyroscope(cfg, role, rt.logger) }},
		{name: "pprof", start: func() (func(context.Context) error, error) { return startPprof(cfg, rt.logger) }},
	}
	for _, step := range steps {
		stop, err := step.start()
		if err != nil {
			_ = rt.Shutdown(ctx)
			return nil, crerr.Wrapf(err, "start %s", step.name)
		}
		if stop != nil {
			rt.stops = append(rt.stops, stopFunc{name: step.name, stop: stop})
		}
	}
	return rt, nil
}

// Shutdown stops exporters last-started first and reports every failure.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var combined error
	for i := len(r.stops) - 1; i >= 0; i-- {
		item := r.stops[i]
		if err := item.stop(ctx); err != nil {
			r.logger.Warn("observability shutdown failed", "exporter", item.name, "error", err)
			combined = crerr.CombineErrors(combined, crerr.Wrapf(err, "stop %s", item.name))
		}
	}
	r.stops = nil
	return combined
}
