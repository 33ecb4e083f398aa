package memory

import (
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/competition"
	"github.com/riskibarqy/excitement-engine/internal/domain/fixture"
	"github.com/riskibarqy/excitement-engine/internal/domain/team"
	"github.com/riskibarqy/excitement-engine/internal/platform/fuzzy"
)

const (
	CompetitionPremierLeague = "eng-premier-league"
	SeasonCurrent            = "2025-2026"
)

type seedTeam struct {
	id, name, short string
}

var seedClubs = []seedTeam{
	{"eng-ars", "Arsenal", "ARS"},
	{"eng-liv", "Liverpool", "LIV"},
	{"eng-mci", "Manchester City", "MCI"},
	{"eng-mun", "Manchester United", "MUN"},
	{"eng-che", "Chelsea", "CHE"},
	{"eng-tot", "Tottenham Hotspur", "TOT"},
}

func SeedTeams() []team.Team {
	out := make([]team.Team, 0, len(seedClubs))
	for _, club := range seedClubs {
		out = append(out, team.Team{
			ID:             club.id,
			Name:           club.name,
			ShortName:      club.short,
			NormalizedName: fuzzy.NormalizeName(club.name),
		})
	}
	return out
}

func SeedStandings() []competition.StandingRow {
	form := []string{"WWWDW", "WDWWL", "WWLDW", "LDWLW", "DLWWD", "LLDWL"}
	out := make([]competition.StandingRow, 0, len(seedClubs))
	for idx, club := range seedClubs {
		won, draw := 18-idx*2, 5+idx%3
		lost := 30 - won - draw
		out = append(out, competition.StandingRow{
			CompetitionID: CompetitionPremierLeague,
			SeasonID:      SeasonCurrent,
			TeamID:        club.id,
			Position:      idx + 1,
			Points:        won*3 + draw,
			Played:        30,
			Won:           won,
			Draw:          draw,
			Lost:          lost,
			GoalsFor:      60 - idx*5,
			GoalsAgainst:  25 + idx*3,
			Form:          form[idx],
		})
	}
	return out
}

func SeedRivalries() []competition.RivalryPair {
	return []competition.RivalryPair{
		{TeamAID: "eng-ars", TeamBID: "eng-tot", Value: 1},
		{TeamAID: "eng-liv", TeamBID: "eng-mun", Value: 0.95},
		{TeamAID: "eng-mci", TeamBID: "eng-mun", Value: 0.9},
		{TeamAID: "eng-che", TeamBID: "eng-tot", Value: 0.6},
	}
}

func SeedHeadToHead(now time.Time) []competition.HeadToHeadRecord {
	return []competition.HeadToHeadRecord{
		{FixtureID: "h2h-1", HomeTeamID: "eng-ars", AwayTeamID: "eng-tot", HomeGoals: 2, AwayGoals: 2, PlayedAt: now.AddDate(0, -5, 0)},
		{FixtureID: "h2h-2", HomeTeamID: "eng-tot", AwayTeamID: "eng-ars", HomeGoals: 1, AwayGoals: 3, PlayedAt: now.AddDate(-1, 0, 0)},
		{FixtureID: "h2h-3", HomeTeamID: "eng-liv", AwayTeamID: "eng-mun", HomeGoals: 0, AwayGoals: 0, PlayedAt: now.AddDate(0, -8, 0)},
		{FixtureID: "h2h-4", HomeTeamID: "eng-mci", AwayTeamID: "eng-che", HomeGoals: 4, AwayGoals: 1, PlayedAt: now.AddDate(-3, 0, 0)},
	}
}

// SeedFixtures builds a matchday around now: one fixture in play, two upcoming and one finished.
func SeedFixtures(now time.Time) []fixture.Fixture {
	kickoff := now.UTC().Truncate(time.Hour)
	base := func(id, home, away string, at time.Time, status string) fixture.Fixture {
		item := fixture.Fixture{
			ID:                id,
			CompetitionID:     CompetitionPremierLeague,
			SeasonID:          SeasonCurrent,
			HomeTeamID:        home,
			AwayTeamID:        away,
			Round:             31,
			TotalRounds:       38,
			LeagueCoefficient: 0.95,
			TitleHolderTeamID: "eng-mci",
			KickoffAt:         at,
			Status:            status,
		}
		for _, club := range seedClubs {
			switch club.id {
			case home:
				item.HomeTeamName, item.HomeShortName = club.name, club.short
			case away:
				item.AwayTeamName, item.AwayShortName = club.name, club.short
			}
		}
		return item
	}

	return []fixture.Fixture{
		base("eng-2526-31-1", "eng-ars", "eng-tot", kickoff.Add(-30*time.Minute), fixture.StatusLive),
		base("eng-2526-31-2", "eng-liv", "eng-mun", kickoff.Add(3*time.Hour), fixture.StatusScheduled),
		base("eng-2526-31-3", "eng-mci", "eng-che", kickoff.Add(26*time.Hour), fixture.StatusScheduled),
		base("eng-2526-30-1", "eng-che", "eng-tot", kickoff.Add(-7*24*time.Hour), fixture.StatusFinished),
	}
}
