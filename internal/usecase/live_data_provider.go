package usecase

import (
	"context"

	"github.com/riskibarqy/excitement-engine/internal/domain/livedata"
)

// LiveDataProvider is the third-party feed live scoring reads from.
// Missing statistics are reported with found=false, not as an error.
type LiveDataProvider interface {
	ProviderID() string
	GetLiveEvents(ctx context.Context) ([]livedata.ExternalEvent, error)
	GetEventInfo(ctx context.Context, externalID string) (livedata.EventInfo, error)
	GetEventStatistics(ctx context.Context, externalID string) (livedata.Statistics, bool, error)
}
