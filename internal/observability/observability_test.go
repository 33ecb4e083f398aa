package observability

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/riskibarqy/excitement-engine/internal/config"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
)

func TestStart_AllDisabledIsNoop(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "excitement-engine",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	rt, err := Start(context.Background(), cfg, RoleWorker, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if len(rt.stops) != 0 {
		t.Fatalf("expected nothing started, got %d exporters", len(rt.stops))
	}
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_UptraceWithoutDSNIsSkipped(t *testing.T) {
	rt, err := Start(context.Background(), config.Config{UptraceEnabled: true, UptraceDSN: "  "}, RoleAPI, nil)
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if len(rt.stops) != 0 {
		t.Fatalf("expected uptrace to be skipped without a dsn")
	}
}

func TestStart_PprofListensAndStops(t *testing.T) {
	rt, err := Start(context.Background(), config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, RoleAPI, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if len(rt.stops) != 1 || rt.stops[0].name != "pprof" {
		t.Fatalf("expected pprof to be started, got %+v", rt.stops)
	}
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_PprofPortTakenFailsStartup(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer taken.Close()

	_, err = Start(context.Background(), config.Config{PprofEnabled: true, PprofAddr: taken.Addr().String()}, RoleAPI, logging.NewNop())
	if err == nil {
		t.Fatalf("expected startup to fail when the pprof port is taken")
	}
}

func TestRuntime_ShutdownReversesOrderAndCombinesErrors(t *testing.T) {
	var order []string
	rt := &Runtime{logger: logging.NewNop()}
	for _, name := range []string{"uptrace", "pyroscope", "pprof"} {
		name := name
		rt.stops = append(rt.stops, stopFunc{name: name, stop: func(context.Context) error {
			order = append(order, name)
			if name != "pyroscope" {
				return errors.New(name + " down")
			}
			return nil
		}})
	}

	err := rt.Shutdown(context.Background())
	if err == nil {
		t.Fatalf("expected combined error")
	}
	if len(order) != 3 || order[0] != "pprof" || order[2] != "uptrace" {
		t.Fatalf("expected reverse shutdown order, got %v", order)
	}
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown must be a no-op: %v", err)
	}

	var nilRuntime *Runtime
	if err := nilRuntime.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil runtime shutdown: %v", err)
	}
}

func TestProfileTags(t *testing.T) {
	tags := profileTags(config.Config{AppEnv: "prod", ServiceName: "excitement-engine", ServiceVersion: "1.2.0"}, RoleWorker)
	if tags["role"] != "worker" || tags["env"] != "prod" || tags["version"] != "1.2.0" {
		t.Fatalf("unexpected tags: %+v", tags)
	}
}
