package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/resolution"
	"github.com/riskibarqy/excitement-engine/internal/domain/team"
	"github.com/riskibarqy/excitement-engine/internal/platform/fuzzy"
	idgen "github.com/riskibarqy/excitement-engine/internal/platform/id"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
)

type TeamResolutionService struct {
	teamRepo team.Repository
	idGen    idgen.Generator
	cfg      resolution.EntityConfig
	logger   *logging.Logger
	now      func() time.Time

	// mu keeps two concurrent resolutions of the same new club from creating it twice.
	mu sync.Mutex
}

func NewTeamResolutionService(teamRepo team.Repository, idGen idgen.Generator, cfg resolution.EntityConfig, logger *logging.Logger) *TeamResolutionService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewGenerator("team")
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = resolution.DefaultEntityThreshold
	}

	return &TeamResolutionService{
		teamRepo: teamRepo,
		idGen:    idGen,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// ResolveOrCreate returns the known team that best matches candidate, creating a new one
// when nothing clears the threshold. created reports which path was taken.
func (s *TeamResolutionService) ResolveOrCreate(ctx context.Context, candidate resolution.Candidate) (team.Team, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamResolutionService.ResolveOrCreate")
	defer span.End()

	candidate.Name = strings.TrimSpace(candidate.Name)
	candidate.ShortName = strings.TrimSpace(candidate.ShortName)
	if candidate.Name == "" {
		return team.Team{}, false, invalidInputf("team name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	known, err := s.teamRepo.List(ctx)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("list teams: %w", err)
	}

	if match, ok := resolution.ResolveEntity(candidate, known, s.cfg); ok {
		s.logger.DebugContext(ctx, "team resolved",
			"candidate", candidate.Name,
			"team_id", match.Team.ID,
			"score", match.Score,
		)
		return match.Team, false, nil
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("generate team id: %w", err)
	}
	item := team.Team{
		ID:             teamID,
		Name:           candidate.Name,
		ShortName:      candidate.ShortName,
		NormalizedName: fuzzy.NormalizeName(candidate.Name),
		CreatedAt:      s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, false, invalidInput(err)
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, false, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created from unmatched candidate",
		"team_id", item.ID,
		"name", item.Name,
		"normalized_name", item.NormalizedName,
	)
	return item, true, nil
}
