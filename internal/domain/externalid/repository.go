package externalid

import "context"

type Repository interface {
	Get(ctx context.Context, providerID, matchID string) (Mapping, bool, error)
	// Save inserts the mapping; an existing mapping for the same provider and match is kept.
	Save(ctx context.Context, mapping Mapping) error
}
