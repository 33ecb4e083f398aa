// Package resilience guards calls to the live data provider.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Config zero values fall back to DefaultConfig, except Enabled.
type Config struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func DefaultConfig() Config {
	return Config{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenProbes:   2,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaults.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaults.OpenTimeout
	}
	if c.HalfOpenProbes < 1 {
		c.HalfOpenProbes = defaults.HalfOpenProbes
	}
	return c
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	// outcomeNeutral frees a probe slot without judging the dependency.
	outcomeNeutral
)

// Breaker opens after FailureThreshold consecutive failures, rejects calls for
// OpenTimeout, then admits HalfOpenProbes probes. All probes must succeed to close it
// again. A nil *Breaker admits everything.
type Breaker struct {
	cfg Config
	now func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	inFlight int
	passed   int
	onChange func(from, to State)
}

// New returns nil when cfg is disabled.
func New(cfg Config) *Breaker {
	if !cfg.Enabled {
		return nil
	}
	return &Breaker{cfg: cfg.withDefaults(), now: time.Now, state: StateClosed}
}

// OnStateChange runs fn after each transition, under the breaker lock.
func (b *Breaker) OnStateChange(fn func(from, to State)) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Execute runs fn unless the breaker is open. Context errors and errors for which
// countable reports false never count as failures.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error, countable func(error) bool) error {
	if b == nil {
		return fn(ctx)
	}
	if err := b.admit(); err != nil {
		return err
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.settle(outcomeSuccess)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		b.settle(outcomeNeutral)
	case countable != nil && !countable(err):
		b.settle(outcomeSuccess)
	default:
		b.settle(outcomeFailure)
	}
	return err
}

// State reports an expired open breaker as half-open without moving it.
func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.cooledDown() {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if !b.cooledDown() {
			return ErrCircuitOpen
		}
		b.moveTo(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *Breaker) settle(result outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen && b.inFlight > 0 {
		b.inFlight--
	}

	switch b.state {
	case StateClosed:
		switch result {
		case outcomeSuccess:
			b.failures = 0
		case outcomeFailure:
			b.failures++
			if b.failures >= b.cfg.FailureThreshold {
				b.moveTo(StateOpen)
			}
		}
	case StateHalfOpen:
		switch result {
		case outcomeSuccess:
			b.passed++
			if b.passed >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
				b.moveTo(StateClosed)
			}
		case outcomeFailure:
			b.moveTo(StateOpen)
		}
	case StateOpen:
		// a call admitted before the breaker opened failed late
		if result == outcomeFailure {
			b.openedAt = b.now()
		}
	}
}

func (b *Breaker) cooledDown() bool {
	return b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout
}

func (b *Breaker) moveTo(to State) {
	from := b.state
	b.state = to
	b.failures = 0
	b.inFlight = 0
	b.passed = 0
	switch to {
	case StateOpen:
		b.openedAt = b.now()
	case StateClosed:
		b.openedAt = time.Time{}
	}
	if from != to && b.onChange != nil {
		b.onChange(from, to)
	}
}
