package competition

import (
	"strings"
	"time"
)

// StandingRow is one team's line in a competition table snapshot.
type StandingRow struct {
	CompetitionID string
	SeasonID      string
	TeamID        string
	Position      int
	Points        int
	Played        int
	Won           int
	Draw          int
	Lost          int
	GoalsFor      int
	GoalsAgainst  int
	Form          string
	UpdatedAt     time.Time
}

// RivalryPair is an unordered pair of teams with a static excitement value in [0,1].
type RivalryPair struct {
	TeamAID string
	TeamBID string
	Value   float64
}

func (p RivalryPair) Involves(teamA, teamB string) bool {
	return (p.TeamAID == teamA && p.TeamBID == teamB) || (p.TeamAID == teamB && p.TeamBID == teamA)
}

// HeadToHeadRecord is a past meeting between two teams.
type HeadToHeadRecord struct {
	FixtureID  string
	HomeTeamID string
	AwayTeamID string
	HomeGoals  int
	AwayGoals  int
	PlayedAt   time.Time
}

// FindRow returns the row for teamID.
func FindRow(rows []StandingRow, teamID string) (StandingRow, bool) {
	for _, row := range rows {
		if row.TeamID == teamID {
			return row, true
		}
	}
	return StandingRow{}, false
}

// TableKey identifies one competition table.
func TableKey(competitionID, seasonID string) string {
	return strings.TrimSpace(competitionID) + ":" + strings.TrimSpace(seasonID)
}
