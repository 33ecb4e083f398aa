package externalid

import "time"

// Mapping ties an internal match to a provider's event id. Once stored it is never replaced.
type Mapping struct {
	ProviderID string
	MatchID    string
	ExternalID string
	CreatedAt  time.Time
}
