// Package excitement computes how worth-watching a fixture is, before kickoff and while it is in play.
// Everything here is a pure function of its inputs; loading and persisting belong to callers.
package excitement

import "time"

// Regime names the weight vector used for a pre-match score.
type Regime string

const (
	RegimeEarly Regime = "early"
	RegimeLate  Regime = "late"
)

// FixtureContext is the slice of a fixture the pre-match calculator needs.
type FixtureContext struct {
	ID                string
	HomeTeamID        string
	AwayTeamID        string
	Round             int
	TotalRounds       int
	LeagueCoefficient float64
	TitleHolderTeamID string
	KickoffAt         time.Time
}

// Components are the eight pre-match factors, each in [0,1].
type Components struct {
	Competition float64
	Stage       float64
	Form        float64
	Goals       float64
	Table       float64
	HeadToHead  float64
	Rivalry     float64
	TitleHolder float64
}

// MatchScoreBreakdown is the persisted result of one pre-match scoring pass.
// A newer breakdown replaces the previous one for the same fixture.
type MatchScoreBreakdown struct {
	FixtureID       string
	Components      Components
	ExcitementScore float64
	Regime          Regime
	ComputedAt      time.Time
}

// LiveComponents are the six in-play factors, each in [0,1].
type LiveComponents struct {
	ScoreLine     float64
	ExpectedGoals float64
	Fouls         float64
	Cards         float64
	Possession    float64
	BigChances    float64
}

// LiveMatchSnapshot is one live update cycle for a fixture. Snapshots are appended, never updated.
type LiveMatchSnapshot struct {
	FixtureID           string
	Components          LiveComponents
	TotalLiveBonus      float64
	BaseWeight          float64
	LiveWeight          float64
	LiveExcitementScore float64
	ElapsedMinutes      int
	HomeGoals           int
	AwayGoals           int
	RecordedAt          time.Time
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v != v:
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
