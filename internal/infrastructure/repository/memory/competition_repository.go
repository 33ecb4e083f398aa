package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/excitement-engine/internal/domain/competition"
)

type CompetitionRepository struct {
	mu         sync.RWMutex
	tables     map[string][]competition.StandingRow
	rivalries  []competition.RivalryPair
	headToHead []competition.HeadToHeadRecord
}

func NewCompetitionRepository(
	standings []competition.StandingRow,
	rivalries []competition.RivalryPair,
	headToHead []competition.HeadToHeadRecord,
) *CompetitionRepository {
	tables := make(map[string][]competition.StandingRow)
	for _, row := range standings {
		key := competition.TableKey(row.CompetitionID, row.SeasonID)
		tables[key] = append(tables[key], row)
	}
	for key := range tables {
		rows := tables[key]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	}

	return &CompetitionRepository{
		tables:     tables,
		rivalries:  append([]competition.RivalryPair(nil), rivalries...),
		headToHead: append([]competition.HeadToHeadRecord(nil), headToHead...),
	}
}

func (r *CompetitionRepository) GetTable(_ context.Context, competitionID, seasonID string) ([]competition.StandingRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.tables[competition.TableKey(competitionID, seasonID)]
	return append([]competition.StandingRow(nil), rows...), nil
}

func (r *CompetitionRepository) GetRivalry(_ context.Context, teamA, teamB string) (competition.RivalryPair, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, pair := range r.rivalries {
		if pair.Involves(teamA, teamB) {
			return pair, true, nil
		}
	}
	return competition.RivalryPair{}, false, nil
}

func (r *CompetitionRepository) GetHeadToHead(_ context.Context, teamA, teamB string) ([]competition.HeadToHeadRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.HeadToHeadRecord, 0)
	for _, record := range r.headToHead {
		if (record.HomeTeamID == teamA && record.AwayTeamID == teamB) ||
			(record.HomeTeamID == teamB && record.AwayTeamID == teamA) {
			out = append(out, record)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PlayedAt.After(out[j].PlayedAt) })
	return out, nil
}

// UpsertStanding replaces the row for the team in its table.
func (r *CompetitionRepository) UpsertStanding(row competition.StandingRow) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := competition.TableKey(row.CompetitionID, row.SeasonID)
	rows := r.tables[key]
	for idx := range rows {
		if rows[idx].TeamID == row.TeamID {
			rows[idx] = row
			r.tables[key] = rows
			return
		}
	}
	rows = append(rows, row)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	r.tables[key] = rows
}
