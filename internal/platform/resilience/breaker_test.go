package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream 503")

func fail(context.Context) error    { return errUpstream }
func succeed(context.Context) error { return nil }

func newClockedBreaker(cfg Config) (*Breaker, *time.Time) {
	b := New(cfg)
	now := time.Date(2026, 10, 3, 19, 45, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_OpensThenRecoversThroughProbes(t *testing.T) {
	b, now := newClockedBreaker(Config{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, fail, nil)
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after one failure, got %s", state)
	}
	_ = b.Execute(ctx, fail, nil)
	if state := b.State(); state != StateOpen {
		t.Fatalf("expected open at the threshold, got %s", state)
	}
	if err := b.Execute(ctx, succeed, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen while cooling down, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if state := b.State(); state != StateHalfOpen {
		t.Fatalf("expected half-open after the timeout, got %s", state)
	}
	if err := b.Execute(ctx, succeed, nil); err != nil {
		t.Fatalf("expected probe to run, got %v", err)
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after a good probe, got %s", state)
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b, now := newClockedBreaker(Config{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenProbes: 2})
	ctx := context.Background()

	_ = b.Execute(ctx, fail, nil)
	*now = now.Add(2 * time.Second)

	if err := b.Execute(ctx, fail, nil); !errors.Is(err, errUpstream) {
		t.Fatalf("expected probe error to pass through, got %v", err)
	}
	if state := b.State(); state != StateOpen {
		t.Fatalf("expected failed probe to reopen, got %s", state)
	}
}

func TestBreaker_LimitsConcurrentProbes(t *testing.T) {
	b, now := newClockedBreaker(Config{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenProbes: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, fail, nil)
	*now = now.Add(2 * time.Second)

	err := b.Execute(ctx, func(ctx context.Context) error {
		if inner := b.Execute(ctx, succeed, nil); !errors.Is(inner, ErrCircuitOpen) {
			t.Fatalf("expected second probe to be rejected, got %v", inner)
		}
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("expected first probe to succeed, got %v", err)
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed, got %s", state)
	}
}

func TestBreaker_CountsOnlyDependencyFailures(t *testing.T) {
	b := New(Config{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenProbes: 1})
	var transitions []State
	b.OnStateChange(func(_, to State) {
		transitions = append(transitions, to)
	})

	errNotFound := errors.New("event not found")
	countable := func(err error) bool { return !errors.Is(err, errNotFound) }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := b.Execute(ctx, func(context.Context) error { return errNotFound }, countable); !errors.Is(err, errNotFound) {
			t.Fatalf("expected passthrough error, got %v", err)
		}
	}
	_ = b.Execute(ctx, func(context.Context) error { return context.Canceled }, countable)
	if state := b.State(); state != StateClosed {
		t.Fatalf("uncountable errors must not open the breaker, got %s", state)
	}

	_ = b.Execute(ctx, fail, countable)
	_ = b.Execute(ctx, fail, countable)

	called := false
	err := b.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	}, countable)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("open breaker must short-circuit: err=%v called=%t", err, called)
	}
	if len(transitions) != 1 || transitions[0] != StateOpen {
		t.Fatalf("unexpected transitions: %v", transitions)
	}
}

func TestBreaker_DisabledIsNil(t *testing.T) {
	b := New(Config{Enabled: false, FailureThreshold: 1})
	if b != nil {
		t.Fatalf("disabled config should yield a nil breaker")
	}
	if err := b.Execute(context.Background(), succeed, nil); err != nil {
		t.Fatalf("nil breaker execute: %v", err)
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("nil breaker state: %s", state)
	}
	b.OnStateChange(func(_, _ State) {})
}

func TestConfig_WithDefaults(t *testing.T) {
	got := Config{Enabled: true, OpenTimeout: -time.Second}.withDefaults()
	if got != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}
