package competition

import "context"

// Repository exposes tables, rivalries and head-to-head history.
type Repository interface {
	GetTable(ctx context.Context, competitionID, seasonID string) ([]StandingRow, error)
	GetRivalry(ctx context.Context, teamA, teamB string) (RivalryPair, bool, error)
	GetHeadToHead(ctx context.Context, teamA, teamB string) ([]HeadToHeadRecord, error)
}
