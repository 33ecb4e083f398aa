package excitement

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidWeights = errors.New("invalid excitement weights")

const weightSumTolerance = 1e-9

// ComponentWeights weighs the eight pre-match components. A usable vector sums to 1.
type ComponentWeights struct {
	Competition float64
	Stage       float64
	Form        float64
	Goals       float64
	Table       float64
	HeadToHead  float64
	Rivalry     float64
	TitleHolder float64
}

func (w ComponentWeights) Sum() float64 {
	return w.Competition + w.Stage + w.Form + w.Goals + w.Table + w.HeadToHead + w.Rivalry + w.TitleHolder
}

func (w ComponentWeights) apply(c Components) float64 {
	return w.Competition*c.Competition +
		w.Stage*c.Stage +
		w.Form*c.Form +
		w.Goals*c.Goals +
		w.Table*c.Table +
		w.HeadToHead*c.HeadToHead +
		w.Rivalry*c.Rivalry +
		w.TitleHolder*c.TitleHolder
}

func (w ComponentWeights) validate(name string) error {
	values := []float64{w.Competition, w.Stage, w.Form, w.Goals, w.Table, w.HeadToHead, w.Rivalry, w.TitleHolder}
	for _, v := range values {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s weights must be >= 0", ErrInvalidWeights, name)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: %s weights sum to %.6f, want 1", ErrInvalidWeights, name, sum)
	}
	return nil
}

// Weights holds both pre-match regimes and the stage fraction that separates them.
type Weights struct {
	Early              ComponentWeights
	Late               ComponentWeights
	LateStageThreshold float64
}

func DefaultWeights() Weights {
	return Weights{
		Early: ComponentWeights{
			Competition: 0.20,
			Stage:       0.05,
			Form:        0.15,
			Goals:       0.10,
			Table:       0.15,
			HeadToHead:  0.10,
			Rivalry:     0.15,
			TitleHolder: 0.10,
		},
		Late: ComponentWeights{
			Competition: 0.15,
			Stage:       0.15,
			Form:        0.10,
			Goals:       0.10,
			Table:       0.25,
			HeadToHead:  0.10,
			Rivalry:     0.05,
			TitleHolder: 0.10,
		},
		LateStageThreshold: 0.8,
	}
}

func (w Weights) Validate() error {
	if err := w.Early.validate("early"); err != nil {
		return err
	}
	if err := w.Late.validate("late"); err != nil {
		return err
	}
	if w.LateStageThreshold <= 0 || w.LateStageThreshold > 1 {
		return fmt.Errorf("%w: late stage threshold must be in (0,1]", ErrInvalidWeights)
	}
	return nil
}

func (w Weights) For(regime Regime) ComponentWeights {
	if regime == RegimeLate {
		return w.Late
	}
	return w.Early
}

// RegimeFor picks the late regime once the season is past the stage threshold and
// the round count exceeds the number of table rows. The second condition compares
// rounds with teams and is kept exactly as the scoring rules define it.
func (w Weights) RegimeFor(round, totalRounds, standingsCount int) Regime {
	if totalRounds <= 0 {
		return RegimeEarly
	}
	stage := float64(round) / float64(totalRounds)
	if stage > w.LateStageThreshold && totalRounds > standingsCount {
		return RegimeLate
	}
	return RegimeEarly
}
