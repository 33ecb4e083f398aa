// Package resolution maps names reported by outside sources onto entities the engine already tracks.
package resolution

import (
	"strings"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/livedata"
	"github.com/riskibarqy/excitement-engine/internal/domain/team"
	"github.com/riskibarqy/excitement-engine/internal/platform/fuzzy"
)

const (
	DefaultEntityThreshold  = 75
	DefaultTeamThreshold    = 80
	DefaultKickoffTolerance = 2 * time.Hour
)

// Scorer rates two names on a 0..100 scale.
type Scorer func(a, b string) int

// Candidate is an outside record that may correspond to a known team.
type Candidate struct {
	Name      string
	ShortName string
}

type EntityConfig struct {
	// Threshold is exclusive: a score must be strictly greater to match.
	Threshold int
	Scorer    Scorer
}

func DefaultEntityConfig() EntityConfig {
	return EntityConfig{
		Threshold: DefaultEntityThreshold,
		Scorer:    fuzzy.Similarity,
	}
}

type EntityMatch struct {
	Team  team.Team
	Score int
}

// ResolveEntity returns the best known team scoring above the threshold. Ties keep the
// earlier entry. No match means the caller should create a new entity.
func ResolveEntity(candidate Candidate, known []team.Team, cfg EntityConfig) (EntityMatch, bool) {
	score := cfg.Scorer
	if score == nil {
		score = fuzzy.Similarity
	}
	candidateName := fuzzy.NormalizeName(candidate.Name)

	best := EntityMatch{Score: -1}
	found := false
	for _, item := range known {
		normalized := item.NormalizedName
		if normalized == "" {
			normalized = fuzzy.NormalizeName(item.Name)
		}

		value := score(normalized, candidateName)
		if short := shortNameScore(score, item.ShortName, candidate.ShortName); short > value {
			value = short
		}
		if value <= cfg.Threshold || value <= best.Score {
			continue
		}
		best = EntityMatch{Team: item, Score: value}
		found = true
	}

	if !found {
		return EntityMatch{}, false
	}
	return best, true
}

// EventTarget is the internal fixture a live event is being matched against.
type EventTarget struct {
	HomeName      string
	AwayName      string
	HomeShortName string
	AwayShortName string
	KickoffAt     time.Time
}

type EventConfig struct {
	// TeamThreshold must be reached by both the home and the away side.
	TeamThreshold    int
	KickoffTolerance time.Duration
	Scorer           Scorer
}

func DefaultEventConfig() EventConfig {
	return EventConfig{
		TeamThreshold:    DefaultTeamThreshold,
		KickoffTolerance: DefaultKickoffTolerance,
		Scorer:           fuzzy.Similarity,
	}
}

type EventMatch struct {
	Event        livedata.ExternalEvent
	HomeScore    int
	AwayScore    int
	KickoffDelta time.Duration
}

// MatchEvent finds the live event for target. Both team names and the kickoff time must
// agree; names alone or time alone never produce a match. Among survivors the highest
// combined name score wins, then the closest kickoff, then input order.
func MatchEvent(target EventTarget, events []livedata.ExternalEvent, cfg EventConfig) (EventMatch, bool) {
	score := cfg.Scorer
	if score == nil {
		score = fuzzy.Similarity
	}

	var best EventMatch
	found := false
	for _, event := range events {
		delta := absDuration(event.StartAt.Sub(target.KickoffAt))
		if delta > cfg.KickoffTolerance {
			continue
		}

		home := sideScore(score, target.HomeName, target.HomeShortName, event.HomeTeam, event.HomeShortName)
		if home < cfg.TeamThreshold {
			continue
		}
		away := sideScore(score, target.AwayName, target.AwayShortName, event.AwayTeam, event.AwayShortName)
		if away < cfg.TeamThreshold {
			continue
		}

		candidate := EventMatch{Event: event, HomeScore: home, AwayScore: away, KickoffDelta: delta}
		if !found || better(candidate, best) {
			best = candidate
			found = true
		}
	}

	return best, found
}

func better(a, b EventMatch) bool {
	if sa, sb := a.HomeScore+a.AwayScore, b.HomeScore+b.AwayScore; sa != sb {
		return sa > sb
	}
	return a.KickoffDelta < b.KickoffDelta
}

func sideScore(score Scorer, name, short, otherName, otherShort string) int {
	value := score(fuzzy.NormalizeName(name), fuzzy.NormalizeName(otherName))
	if s := shortNameScore(score, short, otherShort); s > value {
		value = s
	}
	return value
}

func shortNameScore(score Scorer, a, b string) int {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return -1
	}
	return score(a, b)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
