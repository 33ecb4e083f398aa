// Package id mints prefixed ULIDs such as "run_01JA3Z...". Ids from one generator sort
// in creation order, so run ids in logs follow the schedule.
package id

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type Generator interface {
	NewID() (string, error)
}

type ULIDGenerator struct {
	prefix string
	now    func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewGenerator(prefix string) *ULIDGenerator {
	return &ULIDGenerator{
		prefix:  strings.TrimSpace(prefix),
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (g *ULIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	value, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	g.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("new ulid: %w", err)
	}

	if g.prefix == "" {
		return value.String(), nil
	}
	return g.prefix + "_" + value.String(), nil
}
