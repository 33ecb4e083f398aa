package excitement

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/competition"
)

const (
	// NeutralScore is returned when there is not enough data to discriminate.
	NeutralScore = 0.5

	formWindow          = 5
	maxFormPoints       = 15.0
	goalsPerGameCeiling = 2.0
	headToHeadWindow    = 2 * 365 * 24 * time.Hour
	headToHeadLimit     = 5
	pointsPerWin        = 3
)

// PreMatchInput is everything one pre-match score depends on.
type PreMatchInput struct {
	Fixture    FixtureContext
	Standings  []competition.StandingRow
	Rivalry    *competition.RivalryPair
	HeadToHead []competition.HeadToHeadRecord
	// ReferenceTime anchors the head-to-head window. Zero falls back to the kickoff time.
	ReferenceTime time.Time
}

// ComputePreMatch scores a fixture. It reports false when either team has no
// standing row, which means the fixture cannot be scored yet.
func ComputePreMatch(in PreMatchInput, w Weights) (MatchScoreBreakdown, bool) {
	home, ok := competition.FindRow(in.Standings, in.Fixture.HomeTeamID)
	if !ok {
		return MatchScoreBreakdown{}, false
	}
	away, ok := competition.FindRow(in.Standings, in.Fixture.AwayTeamID)
	if !ok {
		return MatchScoreBreakdown{}, false
	}

	ref := in.ReferenceTime
	if ref.IsZero() {
		ref = in.Fixture.KickoffAt
	}

	components := Components{
		Competition: clamp01(in.Fixture.LeagueCoefficient),
		Stage:       FixtureStage(in.Fixture.Round, in.Fixture.TotalRounds),
		Form:        (TeamForm(home) + TeamForm(away)) / 2,
		Goals:       TeamGoals(home, away),
		Table:       TableStanding(home, away, len(in.Standings), in.Fixture.Round, in.Fixture.TotalRounds),
		HeadToHead:  HeadToHead(in.HeadToHead, ref),
		Rivalry:     Rivalry(in.Rivalry),
		TitleHolder: TitleHolder(in.Fixture.TitleHolderTeamID, in.Fixture.HomeTeamID, in.Fixture.AwayTeamID),
	}

	regime := w.RegimeFor(in.Fixture.Round, in.Fixture.TotalRounds, len(in.Standings))

	return MatchScoreBreakdown{
		FixtureID:       in.Fixture.ID,
		Components:      components,
		ExcitementScore: clamp01(w.For(regime).apply(components)),
		Regime:          regime,
		ComputedAt:      in.ReferenceTime,
	}, true
}

// FixtureStage is how far through the season the round falls.
func FixtureStage(round, totalRounds int) float64 {
	if totalRounds <= 0 {
		return 0
	}
	return clamp01(float64(round) / float64(totalRounds))
}

// TeamForm converts recent results into a share of the points available over five games.
// The Form string (latest result first) wins over season totals when present.
func TeamForm(row competition.StandingRow) float64 {
	if form := strings.TrimSpace(row.Form); form != "" {
		points, counted := 0, 0
		for _, r := range strings.ToUpper(form) {
			if counted == formWindow {
				break
			}
			switch r {
			case 'W':
				points += pointsPerWin
			case 'D':
				points++
			case 'L':
			default:
				continue
			}
			counted++
		}
		if counted > 0 {
			return clamp01(float64(points) / maxFormPoints)
		}
	}

	return clamp01(float64(row.Won*pointsPerWin+row.Draw) / maxFormPoints)
}

// TeamGoals is the average goals per game of both sides against a two-per-game ceiling.
func TeamGoals(home, away competition.StandingRow) float64 {
	return clamp01((goalsPerGame(home) + goalsPerGame(away)) / 2 / goalsPerGameCeiling)
}

func goalsPerGame(row competition.StandingRow) float64 {
	if row.Played <= 0 {
		return 0
	}
	return float64(row.GoalsFor) / float64(row.Played)
}

// TableStanding multiplies position closeness, table height and the point gap relative
// to the points still available. The point-gap factor is left out once no points remain.
func TableStanding(home, away competition.StandingRow, teams, round, totalRounds int) float64 {
	if totalRounds <= 1 || teams <= 1 {
		return NeutralScore
	}
	n := float64(teams - 1)

	distance := float64(absInt(home.Position-away.Position)) - 1
	closeness := 1.0
	if denom := 1 + distance/n; denom > 0 {
		closeness = clamp01(1 / denom)
	}

	avgPosition := float64(home.Position+away.Position) / 2
	height := clamp01(1 - (avgPosition-1)/n)

	value := closeness * height

	remaining := totalRounds - round + 1
	if remaining < 0 {
		remaining = 0
	}
	maxRemainingPoints := float64(remaining * pointsPerWin)
	if denom := maxRemainingPoints - 1; denom > 0 {
		gap := float64(absInt(home.Points - away.Points))
		value *= 1 / (1 + gap/denom)
	}

	return clamp01(value)
}

// HeadToHead rates the last meetings within two years of ref: decisive results count
// three, draws one, out of fifteen. No qualifying history is neutral rather than dull.
func HeadToHead(records []competition.HeadToHeadRecord, ref time.Time) float64 {
	recent := recentMeetings(records, ref)
	if len(recent) == 0 {
		return NeutralScore
	}

	homeWins, awayWins, draws := 0, 0, 0
	for _, r := range recent {
		switch {
		case r.HomeGoals > r.AwayGoals:
			homeWins++
		case r.HomeGoals < r.AwayGoals:
			awayWins++
		default:
			draws++
		}
	}

	return math.Min(1, float64((homeWins+awayWins)*pointsPerWin+draws)/maxFormPoints)
}

func recentMeetings(records []competition.HeadToHeadRecord, ref time.Time) []competition.HeadToHeadRecord {
	out := make([]competition.HeadToHeadRecord, 0, len(records))
	for _, r := range records {
		if !ref.IsZero() {
			if r.PlayedAt.After(ref) || ref.Sub(r.PlayedAt) > headToHeadWindow {
				continue
			}
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlayedAt.After(out[j].PlayedAt)
	})
	if len(out) > headToHeadLimit {
		out = out[:headToHeadLimit]
	}
	return out
}

func Rivalry(pair *competition.RivalryPair) float64 {
	if pair == nil {
		return 0
	}
	return clamp01(pair.Value)
}

func TitleHolder(holderID, homeID, awayID string) float64 {
	if holderID == "" {
		return 0
	}
	if holderID == homeID || holderID == awayID {
		return 1
	}
	return 0
}
