package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/excitement-engine/internal/domain/team"
	qb "github.com/riskibarqy/excitement-engine/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	ShortName      sql.NullString `db:"short_name"`
	NormalizedName string         `db:"normalized_name"`
	CreatedAt      time.Time      `db:"created_at"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("id", "name", "short_name", "normalized_name", "created_at").
		From("teams").
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:             row.ID,
			Name:           row.Name,
			ShortName:      row.ShortName.String,
			NormalizedName: row.NormalizedName,
			CreatedAt:      row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	builder, err := qb.InsertModel("teams", teamTableModel{
		ID:             item.ID,
		Name:           item.Name,
		ShortName:      sql.NullString{String: item.ShortName, Valid: item.ShortName != ""},
		NormalizedName: item.NormalizedName,
		CreatedAt:      createdAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("team %s already exists: %w", item.ID, err)
		}
		return fmt.Errorf("insert team %s: %w", item.ID, err)
	}
	return nil
}
