package excitement

import (
	"errors"
	"fmt"
	"math"

	"github.com/riskibarqy/excitement-engine/internal/domain/livedata"
)

var ErrInvalidLiveConfig = errors.New("invalid live scoring config")

// LiveCoefficients weigh the six live components into the total live bonus.
type LiveCoefficients struct {
	ScoreLine     float64
	ExpectedGoals float64
	Fouls         float64
	Cards         float64
	Possession    float64
	BigChances    float64
}

type LiveConfig struct {
	Coefficients LiveCoefficients
	// LiveBonusScale multiplies the weighted bonus before blending.
	LiveBonusScale float64
}

func DefaultLiveConfig() LiveConfig {
	return LiveConfig{
		Coefficients: LiveCoefficients{
			ScoreLine:     0.30,
			ExpectedGoals: 0.20,
			Fouls:         0.05,
			Cards:         0.10,
			Possession:    0.10,
			BigChances:    0.25,
		},
		LiveBonusScale: 1,
	}
}

func (c LiveConfig) Validate() error {
	k := c.Coefficients
	for _, v := range []float64{k.ScoreLine, k.ExpectedGoals, k.Fouls, k.Cards, k.Possession, k.BigChances} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: coefficients must be >= 0", ErrInvalidLiveConfig)
		}
	}
	if c.LiveBonusScale <= 0 || math.IsNaN(c.LiveBonusScale) {
		return fmt.Errorf("%w: live bonus scale must be > 0", ErrInvalidLiveConfig)
	}
	return nil
}

// LiveInput is the state of one in-play fixture at a polling cycle.
type LiveInput struct {
	Baseline  float64
	Previous  *float64
	HomeGoals int
	AwayGoals int
	// Stats may be nil, which reads as all-zero statistics.
	Stats          *livedata.Statistics
	HomePosition   int
	AwayPosition   int
	ElapsedMinutes int
}

type LiveResult struct {
	Components     LiveComponents
	TotalLiveBonus float64
	Baseline       float64
	BaseWeight     float64
	LiveWeight     float64
	Score          float64
	ElapsedMinutes int
}

// Snapshot turns the result into the record appended for the fixture.
func (r LiveResult) Snapshot(in LiveInput, fixtureID string) LiveMatchSnapshot {
	return LiveMatchSnapshot{
		FixtureID:           fixtureID,
		Components:          r.Components,
		TotalLiveBonus:      r.TotalLiveBonus,
		BaseWeight:          r.BaseWeight,
		LiveWeight:          r.LiveWeight,
		LiveExcitementScore: r.Score,
		ElapsedMinutes:      r.ElapsedMinutes,
		HomeGoals:           in.HomeGoals,
		AwayGoals:           in.AwayGoals,
	}
}

// ComputeLive re-scores a fixture in play. The previous live score, when present, is the
// baseline; otherwise the pre-match score is.
func ComputeLive(in LiveInput, cfg LiveConfig) LiveResult {
	baseline := in.Baseline
	if in.Previous != nil {
		baseline = *in.Previous
	}
	baseline = clamp01(baseline)

	var stats livedata.Statistics
	if in.Stats != nil {
		stats = *in.Stats
	}

	components := LiveComponents{
		ScoreLine:     ScoreLine(in.HomeGoals, in.AwayGoals, in.HomePosition, in.AwayPosition),
		ExpectedGoals: ExpectedGoals(in.HomeGoals, in.AwayGoals, stats.Home.XG, stats.Away.XG),
		Fouls:         Fouls(stats.Home.Fouls + stats.Away.Fouls),
		Cards:         Cards(in.HomeGoals, in.AwayGoals, stats),
		Possession:    Possession(in.HomeGoals, in.AwayGoals, stats.Home.Possession, stats.Away.Possession),
		BigChances:    BigChances(in.HomeGoals, in.AwayGoals, stats.Home.BigChances, stats.Away.BigChances),
	}

	k := cfg.Coefficients
	bonus := k.ScoreLine*components.ScoreLine +
		k.ExpectedGoals*components.ExpectedGoals +
		k.Fouls*components.Fouls +
		k.Cards*components.Cards +
		k.Possession*components.Possession +
		k.BigChances*components.BigChances
	bonus = clamp01(bonus * cfg.LiveBonusScale)

	minute := clampMinute(in.ElapsedMinutes)
	baseWeight, liveWeight := BlendWeights(minute)

	return LiveResult{
		Components:     components,
		TotalLiveBonus: bonus,
		Baseline:       baseline,
		BaseWeight:     baseWeight,
		LiveWeight:     liveWeight,
		Score:          clamp01(baseline*baseWeight + bonus*liveWeight),
		ElapsedMinutes: minute,
	}
}

// ScoreLine rewards goals, penalizes one-sided margins and adds an underdog bonus when
// the lower-placed team leads.
func ScoreLine(homeGoals, awayGoals, homePosition, awayPosition int) float64 {
	points := 0.0
	switch total := homeGoals + awayGoals; {
	case total <= 0:
	case total <= 2:
		points = 30
	case total <= 4:
		points = 60
	default:
		points = 80
	}

	switch absInt(homeGoals - awayGoals) {
	case 0:
	case 1:
		points -= 10
	case 2:
		points -= 20
	default:
		points -= 30
	}

	if homePosition > 0 && awayPosition > 0 {
		gap := 0
		switch {
		case homeGoals > awayGoals && homePosition > awayPosition:
			gap = homePosition - awayPosition
		case awayGoals > homeGoals && awayPosition > homePosition:
			gap = awayPosition - homePosition
		}
		points += math.Min(40, float64(gap*4))
	}

	return clamp01(points / 100)
}

// ExpectedGoals rewards high and balanced xG, and a losing side that should be winning.
func ExpectedGoals(homeGoals, awayGoals int, homeXG, awayXG float64) float64 {
	if homeXG <= 0 && awayXG <= 0 {
		return 0
	}

	points := 0.0
	switch total := homeXG + awayXG; {
	case total < 1:
		points = 10
	case total < 2:
		points = 30
	case total < 3:
		points = 50
	default:
		points = 70
	}

	switch diff := math.Abs(homeXG - awayXG); {
	case diff < 0.3:
		points += 20
	case diff < 0.6:
		points += 10
	}

	switch {
	case homeGoals > awayGoals && awayXG > homeXG+0.5:
		points += 30
	case awayGoals > homeGoals && homeXG > awayXG+0.5:
		points += 30
	}

	return clamp01(points / 100)
}

// Fouls only ever takes points away from a clean game.
func Fouls(total int) float64 {
	penalty := 0.0
	switch {
	case total > 25:
		penalty = -40
	case total > 20:
		penalty = -25
	case total > 15:
		penalty = -10
	}
	return clamp(100+penalty, 0, 100) / 100
}

// Cards penalizes bookings and sending-offs, with a comeback bonus when the leading side
// is down a player. A raw total of exactly zero is read as the maximum value, so a
// card-free game and one whose penalty and bonus cancel both score 1.
func Cards(homeGoals, awayGoals int, stats livedata.Statistics) float64 {
	raw := 0.0
	switch yellows := stats.Home.YellowCards + stats.Away.YellowCards; {
	case yellows <= 3:
	case yellows <= 6:
		raw -= 10
	case yellows <= 9:
		raw -= 20
	default:
		raw -= 30
	}

	raw -= 40 * float64(stats.Home.RedCards+stats.Away.RedCards)

	switch {
	case homeGoals > awayGoals:
		raw += 60 * float64(stats.Home.RedCards)
	case awayGoals > homeGoals:
		raw += 60 * float64(stats.Away.RedCards)
	}

	raw = math.Min(raw, 100)
	if raw == 0 {
		raw = 100
	}
	return clamp01(raw / 100)
}

// Possession favours an even split, plus a bonus when the trailing side dominates the ball.
func Possession(homeGoals, awayGoals int, homePossession, awayPossession float64) float64 {
	if homePossession <= 0 && awayPossession <= 0 {
		return 0
	}

	points := 0.0
	switch diff := math.Abs(homePossession - awayPossession); {
	case diff <= 10:
		points = 60
	case diff <= 20:
		points = 40
	case diff <= 30:
		points = 20
	default:
		points = 10
	}

	switch {
	case homeGoals < awayGoals && homePossession >= 60:
		points += 30
	case awayGoals < homeGoals && awayPossession >= 60:
		points += 30
	}

	return clamp01(points / 100)
}

func BigChances(homeGoals, awayGoals, homeChances, awayChances int) float64 {
	total := homeChances + awayChances
	points := 0.0
	switch {
	case total <= 0:
	case total <= 2:
		points = 30
	case total <= 4:
		points = 50
	default:
		points = 70
	}

	if total > 0 && absInt(homeChances-awayChances) <= 1 {
		points += 15
	}

	switch {
	case homeGoals < awayGoals && homeChances > awayChances:
		points += 20
	case awayGoals < homeGoals && awayChances > homeChances:
		points += 20
	}

	return clamp01(points / 100)
}
