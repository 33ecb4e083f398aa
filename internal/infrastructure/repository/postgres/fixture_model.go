package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/excitement"
	"github.com/riskibarqy/excitement-engine/internal/domain/fixture"
)

var fixtureColumns = []string{
	"f.id",
	"f.competition_id",
	"f.season_id",
	"f.home_team_id",
	"f.away_team_id",
	"f.home_team_name",
	"f.away_team_name",
	"f.home_short_name",
	"f.away_short_name",
	"f.round",
	"f.total_rounds",
	"f.league_coefficient",
	"f.title_holder_team_id",
	"f.kickoff_at",
	"f.status",
	"f.score_updated_at",
}

type fixtureTableModel struct {
	ID                string         `db:"id"`
	CompetitionID     string         `db:"competition_id"`
	SeasonID          string         `db:"season_id"`
	HomeTeamID        string         `db:"home_team_id"`
	AwayTeamID        string         `db:"away_team_id"`
	HomeTeamName      string         `db:"home_team_name"`
	AwayTeamName      string         `db:"away_team_name"`
	HomeShortName     string         `db:"home_short_name"`
	AwayShortName     string         `db:"away_short_name"`
	Round             int            `db:"round"`
	TotalRounds       int            `db:"total_rounds"`
	LeagueCoefficient float64        `db:"league_coefficient"`
	TitleHolderTeamID sql.NullString `db:"title_holder_team_id"`
	KickoffAt         time.Time      `db:"kickoff_at"`
	Status            string         `db:"status"`
	ScoreUpdatedAt    sql.NullTime   `db:"score_updated_at"`
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:                m.ID,
		CompetitionID:     m.CompetitionID,
		SeasonID:          m.SeasonID,
		HomeTeamID:        m.HomeTeamID,
		AwayTeamID:        m.AwayTeamID,
		HomeTeamName:      m.HomeTeamName,
		AwayTeamName:      m.AwayTeamName,
		HomeShortName:     m.HomeShortName,
		AwayShortName:     m.AwayShortName,
		Round:             m.Round,
		TotalRounds:       m.TotalRounds,
		LeagueCoefficient: m.LeagueCoefficient,
		TitleHolderTeamID: m.TitleHolderTeamID.String,
		KickoffAt:         m.KickoffAt.UTC(),
		Status:            fixture.NormalizeStatus(m.Status),
		ScoreUpdatedAt:    nullTimeValue(m.ScoreUpdatedAt),
	}
}

type liveTargetModel struct {
	fixtureTableModel
	PreMatchScore     float64         `db:"pre_match_score"`
	PreviousLiveScore sql.NullFloat64 `db:"previous_live_score"`
	HomePosition      int             `db:"home_position"`
	AwayPosition      int             `db:"away_position"`
}

func (m liveTargetModel) toDomain() fixture.LiveTarget {
	return fixture.LiveTarget{
		Fixture:           m.fixtureTableModel.toDomain(),
		PreMatchScore:     m.PreMatchScore,
		PreviousLiveScore: nullFloat(m.PreviousLiveScore),
		HomePosition:      m.HomePosition,
		AwayPosition:      m.AwayPosition,
	}
}

type scoreBreakdownInsertModel struct {
	FixtureID       string    `db:"fixture_id"`
	Competition     float64   `db:"competition"`
	Stage           float64   `db:"stage"`
	Form            float64   `db:"form"`
	Goals           float64   `db:"goals"`
	TableStanding   float64   `db:"table_standing"`
	HeadToHead      float64   `db:"head_to_head"`
	Rivalry         float64   `db:"rivalry"`
	TitleHolder     float64   `db:"title_holder"`
	ExcitementScore float64   `db:"excitement_score"`
	Regime          string    `db:"regime"`
	ComputedAt      time.Time `db:"computed_at"`
}

func newScoreBreakdownInsertModel(b excitement.MatchScoreBreakdown) scoreBreakdownInsertModel {
	return scoreBreakdownInsertModel{
		FixtureID:       b.FixtureID,
		Competition:     b.Components.Competition,
		Stage:           b.Components.Stage,
		Form:            b.Components.Form,
		Goals:           b.Components.Goals,
		TableStanding:   b.Components.Table,
		HeadToHead:      b.Components.HeadToHead,
		Rivalry:         b.Components.Rivalry,
		TitleHolder:     b.Components.TitleHolder,
		ExcitementScore: b.ExcitementScore,
		Regime:          string(b.Regime),
		ComputedAt:      b.ComputedAt.UTC(),
	}
}

type liveSnapshotInsertModel struct {
	FixtureID           string    `db:"fixture_id"`
	ScoreLine           float64   `db:"score_line"`
	ExpectedGoals       float64   `db:"expected_goals"`
	Fouls               float64   `db:"fouls"`
	Cards               float64   `db:"cards"`
	Possession          float64   `db:"possession"`
	BigChances          float64   `db:"big_chances"`
	TotalLiveBonus      float64   `db:"total_live_bonus"`
	BaseWeight          float64   `db:"base_weight"`
	LiveWeight          float64   `db:"live_weight"`
	LiveExcitementScore float64   `db:"live_excitement_score"`
	ElapsedMinutes      int       `db:"elapsed_minutes"`
	HomeGoals           int       `db:"home_goals"`
	AwayGoals           int       `db:"away_goals"`
	RecordedAt          time.Time `db:"recorded_at"`
}

func newLiveSnapshotInsertModel(s excitement.LiveMatchSnapshot) liveSnapshotInsertModel {
	return liveSnapshotInsertModel{
		FixtureID:           s.FixtureID,
		ScoreLine:           s.Components.ScoreLine,
		ExpectedGoals:       s.Components.ExpectedGoals,
		Fouls:               s.Components.Fouls,
		Cards:               s.Components.Cards,
		Possession:          s.Components.Possession,
		BigChances:          s.Components.BigChances,
		TotalLiveBonus:      s.TotalLiveBonus,
		BaseWeight:          s.BaseWeight,
		LiveWeight:          s.LiveWeight,
		LiveExcitementScore: s.LiveExcitementScore,
		ElapsedMinutes:      s.ElapsedMinutes,
		HomeGoals:           s.HomeGoals,
		AwayGoals:           s.AwayGoals,
		RecordedAt:          s.RecordedAt.UTC(),
	}
}
