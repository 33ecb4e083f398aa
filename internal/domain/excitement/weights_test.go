package excitement

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultWeights_Valid(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Fatalf("default weights: %v", err)
	}
	if math.Abs(w.Early.Sum()-1) > 1e-9 || math.Abs(w.Late.Sum()-1) > 1e-9 {
		t.Fatalf("weights must sum to 1: early=%f late=%f", w.Early.Sum(), w.Late.Sum())
	}
	if w.Late.Table <= w.Early.Table || w.Late.Stage <= w.Early.Stage {
		t.Fatalf("late regime should weigh stage and table more")
	}
	if w.Late.Form >= w.Early.Form || w.Late.Rivalry >= w.Early.Rivalry {
		t.Fatalf("late regime should weigh form and rivalry less")
	}
}

func TestWeights_ValidateRejectsBadVectors(t *testing.T) {
	w := DefaultWeights()
	w.Early.Rivalry += 0.1
	if err := w.Validate(); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights for sum != 1, got %v", err)
	}

	w = DefaultWeights()
	w.Late.Form = -0.1
	w.Late.Table += 0.2
	if err := w.Validate(); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights for negative weight, got %v", err)
	}

	w = DefaultWeights()
	w.LateStageThreshold = 0
	if err := w.Validate(); !errors.Is(err, ErrInvalidWeights) {
		t.Fatalf("expected ErrInvalidWeights for zero threshold, got %v", err)
	}
}
