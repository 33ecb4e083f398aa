package fanout

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	var active, peak atomic.Int32
	errs, err := Run(context.Background(), 3, items, func(context.Context, int) error {
		now := active.Add(1)
		for {
			old := peak.Load()
			if now <= old || peak.CompareAndSwap(old, now) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		active.Add(-1)
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(errs) != len(items) {
		t.Fatalf("unexpected error slice length: %d", len(errs))
	}
	if got := peak.Load(); got > 3 {
		t.Fatalf("peak concurrency %d exceeds 3 workers", got)
	}
}

func TestRun_IsolatesFailuresAndPanics(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	var completed atomic.Int32
	errs, err := Run(context.Background(), 2, []string{"ok-1", "fail", "panic", "ok-2"}, func(_ context.Context, item string) error {
		switch item {
		case "fail":
			return errBoom
		case "panic":
			panic("bad stats payload")
		}
		completed.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if errs[0] != nil || errs[3] != nil {
		t.Fatalf("healthy items must succeed: %v", errs)
	}
	if !errors.Is(errs[1], errBoom) {
		t.Fatalf("expected boom error, got %v", errs[1])
	}
	if errs[2] == nil {
		t.Fatalf("expected panic to surface as an error")
	}
	if completed.Load() != 2 {
		t.Fatalf("expected both healthy items to complete, got %d", completed.Load())
	}
}

func TestRun_SkipsQueuedItemsAfterCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	errs, err := Run(ctx, 1, []int{1, 2, 3}, func(context.Context, int) error {
		calls.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("no task should start after cancellation, got %d", calls.Load())
	}
	for i, e := range errs {
		if !errors.Is(e, context.Canceled) {
			t.Fatalf("item %d: expected context.Canceled, got %v", i, e)
		}
	}
}
