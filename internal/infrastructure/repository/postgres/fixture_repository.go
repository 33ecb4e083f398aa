package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/excitement-engine/internal/domain/excitement"
	"github.com/riskibarqy/excitement-engine/internal/domain/fixture"
	qb "github.com/riskibarqy/excitement-engine/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListUnfinished(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures f").
		Where(qb.NotIn("f.status", qb.Strings(fixture.FinishedStatuses))).
		OrderBy("f.kickoff_at", "f.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select unfinished fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select unfinished fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func buildListLiveQuery() (string, []any, error) {
	columns := append([]string(nil), fixtureColumns...)
	columns = append(columns,
		fmt.Sprintf("COALESCE(b.excitement_score, %g) AS pre_match_score", excitement.NeutralScore),
		"s.live_excitement_score AS previous_live_score",
		"COALESCE(hs.position, 0) AS home_position",
		"COALESCE(aws.position, 0) AS away_position",
	)

	return qb.Select(columns...).From("fixtures f").
		Join("LEFT JOIN match_score_breakdowns b ON b.fixture_id = f.id").
		Join(`LEFT JOIN LATERAL (
    SELECT live_excitement_score FROM live_match_snapshots
    WHERE fixture_id = f.id
    ORDER BY recorded_at DESC, id DESC
    LIMIT 1
) s ON TRUE`).
		Join("LEFT JOIN standings hs ON hs.competition_id = f.competition_id AND hs.season_id = f.season_id AND hs.team_id = f.home_team_id").
		Join("LEFT JOIN standings aws ON aws.competition_id = f.competition_id AND aws.season_id = f.season_id AND aws.team_id = f.away_team_id").
		Where(qb.In("f.status", qb.Strings(fixture.LiveStatuses))).
		OrderBy("f.kickoff_at", "f.id").
		ToSQL()
}

func (r *FixtureRepository) ListLive(ctx context.Context) ([]fixture.LiveTarget, error) {
	query, args, err := buildListLiveQuery()
	if err != nil {
		return nil, fmt.Errorf("build select live fixtures query: %w", err)
	}

	var rows []liveTargetModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select live fixtures: %w", err)
	}

	out := make([]fixture.LiveTarget, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// SaveScoreBreakdown overwrites the fixture's breakdown and stamps the fixture in one transaction.
func (r *FixtureRepository) SaveScoreBreakdown(ctx context.Context, breakdown excitement.MatchScoreBreakdown) error {
	upsertQuery, upsertArgs, err := qb.UpsertModel("match_score_breakdowns", newScoreBreakdownInsertModel(breakdown), "fixture_id")
	if err != nil {
		return fmt.Errorf("build upsert score breakdown query: %w", err)
	}

	stampQuery, stampArgs, err := qb.Update("fixtures").
		Set("score_updated_at", breakdown.ComputedAt.UTC()).
		SetRaw("updated_at", "NOW()").
		Where(qb.Eq("id", breakdown.FixtureID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build stamp fixture query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin score breakdown tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		return fmt.Errorf("upsert score breakdown fixture=%s: %w", breakdown.FixtureID, err)
	}
	if _, err := tx.ExecContext(ctx, stampQuery, stampArgs...); err != nil {
		return fmt.Errorf("stamp fixture=%s: %w", breakdown.FixtureID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit score breakdown tx: %w", err)
	}
	return nil
}

func (r *FixtureRepository) SaveLiveSnapshot(ctx context.Context, snapshot excitement.LiveMatchSnapshot) error {
	builder, err := qb.InsertModel("live_match_snapshots", newLiveSnapshotInsertModel(snapshot))
	if err != nil {
		return fmt.Errorf("build insert live snapshot query: %w", err)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert live snapshot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert live snapshot fixture=%s: %w", snapshot.FixtureID, err)
	}
	return nil
}
