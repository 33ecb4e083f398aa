package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/excitement-engine/internal/domain/externalid"
)

type ExternalIDRepository struct {
	mu       sync.RWMutex
	mappings map[string]externalid.Mapping
}

func NewExternalIDRepository() *ExternalIDRepository {
	return &ExternalIDRepository{mappings: make(map[string]externalid.Mapping)}
}

func mappingKey(providerID, matchID string) string {
	return providerID + "|" + matchID
}

func (r *ExternalIDRepository) Get(_ context.Context, providerID, matchID string) (externalid.Mapping, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mapping, ok := r.mappings[mappingKey(providerID, matchID)]
	return mapping, ok, nil
}

func (r *ExternalIDRepository) Save(_ context.Context, mapping externalid.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := mappingKey(mapping.ProviderID, mapping.MatchID)
	if _, exists := r.mappings[key]; exists {
		return nil
	}
	r.mappings[key] = mapping
	return nil
}
