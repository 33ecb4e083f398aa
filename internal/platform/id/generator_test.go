package id

import (
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestGenerator_PrefixAndShape(t *testing.T) {
	got, err := NewGenerator(" run ").NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	raw, ok := strings.CutPrefix(got, "run_")
	if !ok {
		t.Fatalf("expected run_ prefix, got %q", got)
	}
	if _, err := ulid.ParseStrict(raw); err != nil {
		t.Fatalf("expected a ulid after the prefix, got %q: %v", raw, err)
	}
}

func TestGenerator_SortsWithinSameMillisecond(t *testing.T) {
	gen := NewGenerator("")
	fixed := time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC)
	gen.now = func() time.Time { return fixed }

	prev := ""
	for i := 0; i < 50; i++ {
		next, err := gen.NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if next <= prev {
			t.Fatalf("expected increasing ids, got %q after %q", next, prev)
		}
		prev = next
	}
}
