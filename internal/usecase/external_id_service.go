package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/externalid"
	"github.com/riskibarqy/excitement-engine/internal/domain/fixture"
	"github.com/riskibarqy/excitement-engine/internal/domain/livedata"
	"github.com/riskibarqy/excitement-engine/internal/domain/resolution"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
)

// EventSource lazily supplies the provider's live events for fuzzy matching.
type EventSource func(ctx context.Context) ([]livedata.ExternalEvent, error)

type ExternalIDService struct {
	repo   externalid.Repository
	cfg    resolution.EventConfig
	logger *logging.Logger
	now    func() time.Time
}

func NewExternalIDService(repo externalid.Repository, cfg resolution.EventConfig, logger *logging.Logger) *ExternalIDService {
	if logger == nil {
		logger = logging.Default()
	}
	defaults := resolution.DefaultEventConfig()
	if cfg.TeamThreshold <= 0 {
		cfg.TeamThreshold = defaults.TeamThreshold
	}
	if cfg.KickoffTolerance <= 0 {
		cfg.KickoffTolerance = defaults.KickoffTolerance
	}
	if cfg.Scorer == nil {
		cfg.Scorer = defaults.Scorer
	}

	return &ExternalIDService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ExternalIDService) Get(ctx context.Context, providerID, matchID string) (externalid.Mapping, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExternalIDService.Get")
	defer span.End()

	providerID, matchID = strings.TrimSpace(providerID), strings.TrimSpace(matchID)
	if providerID == "" || matchID == "" {
		return externalid.Mapping{}, false, invalidInputf("provider id and match id are required")
	}

	mapping, found, err := s.repo.Get(ctx, providerID, matchID)
	if err != nil {
		return externalid.Mapping{}, false, fmt.Errorf("get external id provider=%s match=%s: %w", providerID, matchID, err)
	}
	return mapping, found, nil
}

func (s *ExternalIDService) Save(ctx context.Context, mapping externalid.Mapping) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExternalIDService.Save")
	defer span.End()

	if mapping.ProviderID == "" || mapping.MatchID == "" || mapping.ExternalID == "" {
		return invalidInputf("provider id, match id and external id are required")
	}
	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = s.now().UTC()
	}

	if err := s.repo.Save(ctx, mapping); err != nil {
		return fmt.Errorf("save external id provider=%s match=%s: %w", mapping.ProviderID, mapping.MatchID, err)
	}
	return nil
}

// Resolve returns the provider's event id for item. A stored mapping always wins; only
// when none exists are the live events fuzzy-matched, and a hit is stored for next time.
func (s *ExternalIDService) Resolve(ctx context.Context, providerID string, item fixture.Fixture, events EventSource) (string, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExternalIDService.Resolve")
	defer span.End()

	existing, found, err := s.Get(ctx, providerID, item.ID)
	if err != nil {
		return "", false, err
	}
	if found {
		return existing.ExternalID, true, nil
	}

	if events == nil {
		return "", false, nil
	}
	candidates, err := events(ctx)
	if err != nil {
		return "", false, unavailable(err, "list live events provider="+providerID)
	}

	match, ok := resolution.MatchEvent(resolution.EventTarget{
		HomeName:      item.HomeTeamName,
		AwayName:      item.AwayTeamName,
		HomeShortName: item.HomeShortName,
		AwayShortName: item.AwayShortName,
		KickoffAt:     item.KickoffAt,
	}, candidates, s.cfg)
	if !ok {
		return "", false, nil
	}

	if err := s.Save(ctx, externalid.Mapping{
		ProviderID: providerID,
		MatchID:    item.ID,
		ExternalID: match.Event.ID,
	}); err != nil {
		return "", false, err
	}

	s.logger.InfoContext(ctx, "external id mapped",
		"provider_id", providerID,
		"fixture_id", item.ID,
		"external_id", match.Event.ID,
		"home_score", match.HomeScore,
		"away_score", match.AwayScore,
		"kickoff_delta", match.KickoffDelta.String(),
	)
	return match.Event.ID, true, nil
}
