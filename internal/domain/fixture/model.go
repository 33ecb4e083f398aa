package fixture

import (
	"strings"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/excitement"
)

const (
	StatusScheduled = "NS"
	StatusLive      = "LIVE"
	StatusHalfTime  = "HT"
	StatusFinished  = "FT"
	StatusPostponed = "PST"
	StatusCancelled = "CANC"
)

// Fixture is one match the engine may score before kickoff.
type Fixture struct {
	ID                string
	CompetitionID     string
	SeasonID          string
	HomeTeamID        string
	AwayTeamID        string
	HomeTeamName      string
	AwayTeamName      string
	HomeShortName     string
	AwayShortName     string
	Round             int
	TotalRounds       int
	LeagueCoefficient float64
	TitleHolderTeamID string
	KickoffAt         time.Time
	Status            string
	ScoreUpdatedAt    time.Time
}

// LiveTarget is an in-play fixture together with the scores live re-scoring starts from.
type LiveTarget struct {
	Fixture
	PreMatchScore     float64
	PreviousLiveScore *float64
	HomePosition      int
	AwayPosition      int
}

// Baseline returns the score a live update blends against.
func (t LiveTarget) Baseline() float64 {
	if t.PreviousLiveScore != nil {
		return *t.PreviousLiveScore
	}
	return t.PreMatchScore
}

// ScoringContext is the subset of the fixture the calculators read.
func (f Fixture) ScoringContext() excitement.FixtureContext {
	return excitement.FixtureContext{
		ID:                f.ID,
		HomeTeamID:        f.HomeTeamID,
		AwayTeamID:        f.AwayTeamID,
		Round:             f.Round,
		TotalRounds:       f.TotalRounds,
		LeagueCoefficient: f.LeagueCoefficient,
		TitleHolderTeamID: f.TitleHolderTeamID,
		KickoffAt:         f.KickoffAt,
	}
}

func (f Fixture) IsFinished() bool {
	return IsFinishedStatus(f.Status)
}

// ScoredWithin reports whether the pre-match score was refreshed less than window ago.
func (f Fixture) ScoredWithin(now time.Time, window time.Duration) bool {
	if f.ScoreUpdatedAt.IsZero() || window <= 0 {
		return false
	}
	return now.Sub(f.ScoreUpdatedAt) < window
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// LiveStatuses lists every status of a fixture in play.
var LiveStatuses = []string{StatusLive, StatusHalfTime, "IN_PLAY", "1H", "2H", "ET", "BT", "P"}

func IsLiveStatus(status string) bool {
	normalized := NormalizeStatus(status)
	for _, live := range LiveStatuses {
		if normalized == live {
			return true
		}
	}
	return false
}

// FinishedStatuses lists every status that carries a final result.
var FinishedStatuses = []string{StatusFinished, "AET", "PEN", StatusCancelled, "AWD", "ABD"}

func IsFinishedStatus(status string) bool {
	normalized := NormalizeStatus(status)
	for _, finished := range FinishedStatuses {
		if normalized == finished {
			return true
		}
	}
	return false
}
