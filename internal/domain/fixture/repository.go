package fixture

import (
	"context"

	"github.com/riskibarqy/excitement-engine/internal/domain/excitement"
)

// Repository is the match store the scoring engine reads from and writes to.
type Repository interface {
	ListUnfinished(ctx context.Context) ([]Fixture, error)
	ListLive(ctx context.Context) ([]LiveTarget, error)
	SaveScoreBreakdown(ctx context.Context, breakdown excitement.MatchScoreBreakdown) error
	SaveLiveSnapshot(ctx context.Context, snapshot excitement.LiveMatchSnapshot) error
}
