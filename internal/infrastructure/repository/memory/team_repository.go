package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/excitement-engine/internal/domain/team"
)

// TeamRepository keeps the postgres ordering: oldest team first, ties broken by id.
// The resolver relies on it when two known teams score the same.
type TeamRepository struct {
	mu    sync.RWMutex
	byID  map[string]team.Team
	order []string
}

func NewTeamRepository(seed []team.Team) *TeamRepository {
	r := &TeamRepository{byID: make(map[string]team.Team, len(seed))}
	for _, item := range seed {
		if _, dup := r.byID[item.ID]; dup {
			continue
		}
		r.insert(item)
	}
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[item.ID]; exists {
		return fmt.Errorf("team %s already exists", item.ID)
	}
	r.insert(item)
	return nil
}

func (r *TeamRepository) insert(item team.Team) {
	r.byID[item.ID] = item
	pos, _ := slices.BinarySearchFunc(r.order, item, func(id string, target team.Team) int {
		existing := r.byID[id]
		if c := existing.CreatedAt.Compare(target.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(existing.ID, target.ID)
	})
	r.order = slices.Insert(r.order, pos, item.ID)
}
