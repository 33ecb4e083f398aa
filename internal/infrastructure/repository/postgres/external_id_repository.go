package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/excitement-engine/internal/domain/externalid"
	qb "github.com/riskibarqy/excitement-engine/internal/platform/querybuilder"
)

type externalIDTableModel struct {
	ProviderID string    `db:"provider_id"`
	MatchID    string    `db:"match_id"`
	ExternalID string    `db:"external_id"`
	CreatedAt  time.Time `db:"created_at"`
}

type ExternalIDRepository struct {
	db *sqlx.DB
}

func NewExternalIDRepository(db *sqlx.DB) *ExternalIDRepository {
	return &ExternalIDRepository{db: db}
}

func (r *ExternalIDRepository) Get(ctx context.Context, providerID, matchID string) (externalid.Mapping, bool, error) {
	query, args, err := qb.Select("provider_id", "match_id", "external_id", "created_at").
		From("external_id_mappings").
		Where(
			qb.Eq("provider_id", providerID),
			qb.Eq("match_id", matchID),
		).
		ToSQL()
	if err != nil {
		return externalid.Mapping{}, false, fmt.Errorf("build select external id query: %w", err)
	}

	var row externalIDTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return externalid.Mapping{}, false, nil
		}
		return externalid.Mapping{}, false, fmt.Errorf("get external id provider=%s match=%s: %w", providerID, matchID, err)
	}

	return externalid.Mapping{
		ProviderID: row.ProviderID,
		MatchID:    row.MatchID,
		ExternalID: row.ExternalID,
		CreatedAt:  row.CreatedAt.UTC(),
	}, true, nil
}

// Save is insert-only: the first mapping for a provider and match wins.
func (r *ExternalIDRepository) Save(ctx context.Context, mapping externalid.Mapping) error {
	builder, err := qb.InsertModel("external_id_mappings", externalIDTableModel{
		ProviderID: mapping.ProviderID,
		MatchID:    mapping.MatchID,
		ExternalID: mapping.ExternalID,
		CreatedAt:  mapping.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("build insert external id query: %w", err)
	}
	query, args, err := builder.OnConflict("provider_id", "match_id").DoNothing().ToSQL()
	if err != nil {
		return fmt.Errorf("build insert external id query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert external id provider=%s match=%s: %w", mapping.ProviderID, mapping.MatchID, err)
	}
	return nil
}
