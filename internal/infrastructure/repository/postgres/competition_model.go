package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/competition"
)

type standingTableModel struct {
	CompetitionID string         `db:"competition_id"`
	SeasonID      string         `db:"season_id"`
	TeamID        string         `db:"team_id"`
	Position      int            `db:"position"`
	Points        int            `db:"points"`
	Played        int            `db:"played"`
	Won           int            `db:"won"`
	Draw          int            `db:"draw"`
	Lost          int            `db:"lost"`
	GoalsFor      int            `db:"goals_for"`
	GoalsAgainst  int            `db:"goals_against"`
	Form          sql.NullString `db:"form"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (m standingTableModel) toDomain() competition.StandingRow {
	return competition.StandingRow{
		CompetitionID: m.CompetitionID,
		SeasonID:      m.SeasonID,
		TeamID:        m.TeamID,
		Position:      m.Position,
		Points:        m.Points,
		Played:        m.Played,
		Won:           m.Won,
		Draw:          m.Draw,
		Lost:          m.Lost,
		GoalsFor:      m.GoalsFor,
		GoalsAgainst:  m.GoalsAgainst,
		Form:          m.Form.String,
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type rivalryTableModel struct {
	TeamAID string  `db:"team_a_id"`
	TeamBID string  `db:"team_b_id"`
	Value   float64 `db:"value"`
}

type headToHeadTableModel struct {
	FixtureID  string    `db:"fixture_id"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	HomeGoals  int       `db:"home_goals"`
	AwayGoals  int       `db:"away_goals"`
	PlayedAt   time.Time `db:"played_at"`
}
