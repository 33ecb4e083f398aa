package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/excitement-engine/internal/domain/competition"
	qb "github.com/riskibarqy/excitement-engine/internal/platform/querybuilder"
)

// headToHeadFetchLimit bounds the history pulled per pair; the calculator keeps the latest five.
const headToHeadFetchLimit = 20

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetTable(ctx context.Context, competitionID, seasonID string) ([]competition.StandingRow, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("season_id", seasonID),
		).
		OrderBy("position", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings competition=%s season=%s: %w", competitionID, seasonID, err)
	}

	out := make([]competition.StandingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func pairCondition(homeColumn, awayColumn, teamA, teamB string) qb.Condition {
	return qb.Or(
		qb.And(qb.Eq(homeColumn, teamA), qb.Eq(awayColumn, teamB)),
		qb.And(qb.Eq(homeColumn, teamB), qb.Eq(awayColumn, teamA)),
	)
}

func (r *CompetitionRepository) GetRivalry(ctx context.Context, teamA, teamB string) (competition.RivalryPair, bool, error) {
	query, args, err := qb.Select("team_a_id", "team_b_id", "value").From("rivalries").
		Where(pairCondition("team_a_id", "team_b_id", teamA, teamB)).
		Limit(1).
		ToSQL()
	if err != nil {
		return competition.RivalryPair{}, false, fmt.Errorf("build select rivalry query: %w", err)
	}

	var row rivalryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.RivalryPair{}, false, nil
		}
		return competition.RivalryPair{}, false, fmt.Errorf("get rivalry %s-%s: %w", teamA, teamB, err)
	}

	return competition.RivalryPair{TeamAID: row.TeamAID, TeamBID: row.TeamBID, Value: row.Value}, true, nil
}

func (r *CompetitionRepository) GetHeadToHead(ctx context.Context, teamA, teamB string) ([]competition.HeadToHeadRecord, error) {
	query, args, err := qb.Select("*").From("head_to_head").
		Where(pairCondition("home_team_id", "away_team_id", teamA, teamB)).
		OrderBy("played_at DESC").
		Limit(headToHeadFetchLimit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select head to head query: %w", err)
	}

	var rows []headToHeadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select head to head %s-%s: %w", teamA, teamB, err)
	}

	out := make([]competition.HeadToHeadRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, competition.HeadToHeadRecord{
			FixtureID:  row.FixtureID,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			HomeGoals:  row.HomeGoals,
			AwayGoals:  row.AwayGoals,
			PlayedAt:   row.PlayedAt.UTC(),
		})
	}
	return out, nil
}
