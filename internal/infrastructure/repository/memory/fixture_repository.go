package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/excitement-engine/internal/domain/competition"
	"github.com/riskibarqy/excitement-engine/internal/domain/excitement"
	"github.com/riskibarqy/excitement-engine/internal/domain/fixture"
)

type FixtureRepository struct {
	mu         sync.RWMutex
	fixtures   []fixture.Fixture
	breakdowns map[string]excitement.MatchScoreBreakdown
	snapshots  map[string][]excitement.LiveMatchSnapshot
	tables     competition.Repository
}

// NewFixtureRepository keeps fixtures in kickoff order. tables, when set, supplies the
// league positions attached to live targets.
func NewFixtureRepository(fixtures []fixture.Fixture, tables competition.Repository) *FixtureRepository {
	items := append([]fixture.Fixture(nil), fixtures...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].KickoffAt.Before(items[j].KickoffAt)
	})

	return &FixtureRepository{
		fixtures:   items,
		breakdowns: make(map[string]excitement.MatchScoreBreakdown),
		snapshots:  make(map[string][]excitement.LiveMatchSnapshot),
		tables:     tables,
	}
}

func (r *FixtureRepository) ListUnfinished(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, item := range r.fixtures {
		if item.IsFinished() {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *FixtureRepository) ListLive(ctx context.Context) ([]fixture.LiveTarget, error) {
	r.mu.RLock()
	targets := make([]fixture.LiveTarget, 0)
	for _, item := range r.fixtures {
		if !fixture.IsLiveStatus(item.Status) {
			continue
		}

		target := fixture.LiveTarget{Fixture: item, PreMatchScore: excitement.NeutralScore}
		if breakdown, ok := r.breakdowns[item.ID]; ok {
			target.PreMatchScore = breakdown.ExcitementScore
		}
		if history := r.snapshots[item.ID]; len(history) > 0 {
			latest := history[len(history)-1].LiveExcitementScore
			target.PreviousLiveScore = &latest
		}
		targets = append(targets, target)
	}
	r.mu.RUnlock()

	if r.tables == nil {
		return targets, nil
	}
	for i := range targets {
		rows, err := r.tables.GetTable(ctx, targets[i].CompetitionID, targets[i].SeasonID)
		if err != nil {
			return nil, err
		}
		if row, ok := competition.FindRow(rows, targets[i].HomeTeamID); ok {
			targets[i].HomePosition = row.Position
		}
		if row, ok := competition.FindRow(rows, targets[i].AwayTeamID); ok {
			targets[i].AwayPosition = row.Position
		}
	}
	return targets, nil
}

func (r *FixtureRepository) SaveScoreBreakdown(_ context.Context, breakdown excitement.MatchScoreBreakdown) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.breakdowns[breakdown.FixtureID] = breakdown
	for idx := range r.fixtures {
		if r.fixtures[idx].ID == breakdown.FixtureID {
			r.fixtures[idx].ScoreUpdatedAt = breakdown.ComputedAt
			break
		}
	}
	return nil
}

func (r *FixtureRepository) SaveLiveSnapshot(_ context.Context, snapshot excitement.LiveMatchSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[snapshot.FixtureID] = append(r.snapshots[snapshot.FixtureID], snapshot)
	return nil
}

// LatestBreakdown returns the stored pre-match breakdown for a fixture.
func (r *FixtureRepository) LatestBreakdown(fixtureID string) (excitement.MatchScoreBreakdown, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	breakdown, ok := r.breakdowns[fixtureID]
	return breakdown, ok
}

// Snapshots returns the live history of a fixture, oldest first.
func (r *FixtureRepository) Snapshots(fixtureID string) []excitement.LiveMatchSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]excitement.LiveMatchSnapshot(nil), r.snapshots[fixtureID]...)
}
