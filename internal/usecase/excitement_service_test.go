package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/competition"
	"github.com/riskibarqy/excitement-engine/internal/domain/excitement"
	"github.com/riskibarqy/excitement-engine/internal/domain/externalid"
	"github.com/riskibarqy/excitement-engine/internal/domain/fixture"
	"github.com/riskibarqy/excitement-engine/internal/domain/livedata"
	"github.com/riskibarqy/excitement-engine/internal/domain/resolution"
	competitionmock "github.com/riskibarqy/excitement-engine/internal/mocks/domain/competition"
	externalidmock "github.com/riskibarqy/excitement-engine/internal/mocks/domain/externalid"
	fixturemock "github.com/riskibarqy/excitement-engine/internal/mocks/domain/fixture"
	usecasemock "github.com/riskibarqy/excitement-engine/internal/mocks/usecase"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)

type fixedIDGenerator string

func (g fixedIDGenerator) NewID() (string, error) { return string(g), nil }

type excitementHarness struct {
	fixtures     *fixturemock.Repository
	competitions *competitionmock.Repository
	externalIDs  *externalidmock.Repository
	provider     *usecasemock.LiveDataProvider
	service      *ExcitementService
}

func newExcitementHarness(t *testing.T, cfg ExcitementConfig) excitementHarness {
	t.Helper()

	h := excitementHarness{
		fixtures:     fixturemock.NewRepository(t),
		competitions: competitionmock.NewRepository(t),
		externalIDs:  externalidmock.NewRepository(t),
		provider:     usecasemock.NewLiveDataProvider(t),
	}
	h.provider.On("ProviderID").Return("livescore").Maybe()

	externalIDService := NewExternalIDService(h.externalIDs, resolution.DefaultEventConfig(), logging.NewNop())
	externalIDService.now = func() time.Time { return testNow }

	service, err := NewExcitementService(
		h.fixtures,
		h.competitions,
		externalIDService,
		h.provider,
		fixedIDGenerator("run_test"),
		cfg,
		logging.NewNop(),
	)
	if err != nil {
		t.Fatalf("new excitement service: %v", err)
	}
	service.now = func() time.Time { return testNow }
	h.service = service
	return h
}

func sampleFixture(id, home, away string) fixture.Fixture {
	return fixture.Fixture{
		ID:                id,
		CompetitionID:     "epl",
		SeasonID:          "2025",
		HomeTeamID:        home,
		AwayTeamID:        away,
		HomeTeamName:      "Home " + home,
		AwayTeamName:      "Away " + away,
		Round:             20,
		TotalRounds:       38,
		LeagueCoefficient: 0.9,
		KickoffAt:         testNow.Add(24 * time.Hour),
		Status:            fixture.StatusScheduled,
	}
}

func sampleTable(teamIDs ...string) []competition.StandingRow {
	rows := make([]competition.StandingRow, 0, len(teamIDs))
	for i, teamID := range teamIDs {
		rows = append(rows, competition.StandingRow{
			CompetitionID: "epl",
			SeasonID:      "2025",
			TeamID:        teamID,
			Position:      i + 1,
			Points:        40 - i*3,
			Played:        19,
			Won:           12 - i,
			Draw:          4,
			Lost:          3 + i,
			GoalsFor:      35 - i*2,
			GoalsAgainst:  15 + i,
			Form:          "WWDLW",
		})
	}
	return rows
}

func TestExcitementService_RunPreMatch_MemoizesLookupsPerRun(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{Concurrency: 1})
	ctx := context.Background()

	items := []fixture.Fixture{
		sampleFixture("fx-1", "ars", "che"),
		sampleFixture("fx-2", "che", "ars"),
	}
	h.fixtures.On("ListUnfinished", mock.Anything).Return(items, nil).Once()
	h.competitions.
		On("GetTable", mock.Anything, "epl", "2025").
		Return(sampleTable("ars", "che", "liv", "mci"), nil).
		Once()
	h.competitions.
		On("GetRivalry", mock.Anything, "ars", "che").
		Return(competition.RivalryPair{TeamAID: "ars", TeamBID: "che", Value: 0.8}, true, nil).
		Once()
	h.competitions.On("GetHeadToHead", mock.Anything, "ars", "che").Return(nil, nil).Once()
	h.competitions.On("GetHeadToHead", mock.Anything, "che", "ars").Return(nil, nil).Once()

	saved := make(map[string]excitement.MatchScoreBreakdown)
	h.fixtures.
		On("SaveScoreBreakdown", mock.Anything, mock.AnythingOfType("excitement.MatchScoreBreakdown")).
		Run(func(args mock.Arguments) {
			breakdown := args.Get(1).(excitement.MatchScoreBreakdown)
			saved[breakdown.FixtureID] = breakdown
		}).
		Return(nil).
		Twice()

	result, err := h.service.RunPreMatch(ctx, PreMatchRunOptions{})
	if err != nil {
		t.Fatalf("run pre-match: %v", err)
	}
	if result.Total != 2 || result.Scored != 2 || result.Skipped != 0 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.RunID != "run_test" || result.Mode != RunModePreMatch {
		t.Fatalf("unexpected run identity: %+v", result)
	}

	for _, id := range []string{"fx-1", "fx-2"} {
		breakdown, ok := saved[id]
		if !ok {
			t.Fatalf("breakdown for %s not saved", id)
		}
		if breakdown.ExcitementScore < 0 || breakdown.ExcitementScore > 1 {
			t.Fatalf("score out of range for %s: %v", id, breakdown.ExcitementScore)
		}
		if breakdown.Components.Rivalry != 0.8 {
			t.Fatalf("rivalry not applied for %s: %v", id, breakdown.Components.Rivalry)
		}
		if !breakdown.ComputedAt.Equal(testNow) {
			t.Fatalf("unexpected computed at for %s: %v", id, breakdown.ComputedAt)
		}
	}
}

func TestExcitementService_RunPreMatch_SkipsFreshScoresUnlessForced(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{})
	ctx := context.Background()

	item := sampleFixture("fx-1", "ars", "che")
	item.ScoreUpdatedAt = testNow.Add(-time.Hour)

	h.fixtures.On("ListUnfinished", mock.Anything).Return([]fixture.Fixture{item}, nil).Once()

	result, err := h.service.RunPreMatch(ctx, PreMatchRunOptions{})
	if err != nil {
		t.Fatalf("run pre-match: %v", err)
	}
	if result.Skipped != 1 || result.Scored != 0 {
		t.Fatalf("expected fresh fixture to be skipped, got %+v", result)
	}

	h.fixtures.On("ListUnfinished", mock.Anything).Return([]fixture.Fixture{item}, nil).Once()
	h.competitions.On("GetTable", mock.Anything, "epl", "2025").Return(sampleTable("ars", "che"), nil).Once()
	h.competitions.On("GetRivalry", mock.Anything, "ars", "che").Return(competition.RivalryPair{}, false, nil).Once()
	h.competitions.On("GetHeadToHead", mock.Anything, "ars", "che").Return(nil, nil).Once()
	h.fixtures.On("SaveScoreBreakdown", mock.Anything, mock.Anything).Return(nil).Once()

	result, err = h.service.RunPreMatch(ctx, PreMatchRunOptions{Force: true})
	if err != nil {
		t.Fatalf("run forced pre-match: %v", err)
	}
	if result.Scored != 1 {
		t.Fatalf("expected forced run to score, got %+v", result)
	}
}

func TestExcitementService_RunPreMatch_MissingStandingIsSkipped(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{})
	ctx := context.Background()

	h.fixtures.
		On("ListUnfinished", mock.Anything).
		Return([]fixture.Fixture{sampleFixture("fx-1", "ars", "new")}, nil).
		Once()
	h.competitions.On("GetTable", mock.Anything, "epl", "2025").Return(sampleTable("ars", "che"), nil).Once()
	h.competitions.On("GetRivalry", mock.Anything, "ars", "new").Return(competition.RivalryPair{}, false, nil).Once()
	h.competitions.On("GetHeadToHead", mock.Anything, "ars", "new").Return(nil, nil).Once()

	result, err := h.service.RunPreMatch(ctx, PreMatchRunOptions{})
	if err != nil {
		t.Fatalf("run pre-match: %v", err)
	}
	if result.Skipped != 1 || result.Failed != 0 {
		t.Fatalf("expected skip without failure, got %+v", result)
	}
}

func TestExcitementService_RunPreMatch_IsolatesFailures(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{Concurrency: 3})
	ctx := context.Background()

	broken := sampleFixture("fx-broken", "ars", "che")
	broken.CompetitionID = "cup"
	panicking := sampleFixture("fx-panic", "liv", "mci")
	healthy := sampleFixture("fx-ok", "ars", "che")

	h.fixtures.
		On("ListUnfinished", mock.Anything).
		Return([]fixture.Fixture{broken, panicking, healthy}, nil).
		Once()
	h.competitions.On("GetTable", mock.Anything, "cup", "2025").Return(nil, errors.New("db timeout")).Once()
	h.competitions.
		On("GetTable", mock.Anything, "epl", "2025").
		Return(sampleTable("ars", "che", "liv", "mci"), nil).
		Once()
	h.competitions.On("GetRivalry", mock.Anything, "ars", "che").Return(competition.RivalryPair{}, false, nil).Once()
	h.competitions.On("GetRivalry", mock.Anything, "liv", "mci").Return(competition.RivalryPair{}, false, nil).Once()
	h.competitions.On("GetHeadToHead", mock.Anything, "ars", "che").Return(nil, nil).Once()
	h.competitions.On("GetHeadToHead", mock.Anything, "liv", "mci").Return(nil, nil).Once()
	h.fixtures.
		On("SaveScoreBreakdown", mock.Anything, mock.MatchedBy(func(b excitement.MatchScoreBreakdown) bool {
			return b.FixtureID == "fx-panic"
		})).
		Return(func(context.Context, excitement.MatchScoreBreakdown) error { panic("disk on fire") }).
		Once()
	h.fixtures.
		On("SaveScoreBreakdown", mock.Anything, mock.MatchedBy(func(b excitement.MatchScoreBreakdown) bool {
			return b.FixtureID == "fx-ok"
		})).
		Return(nil).
		Once()

	result, err := h.service.RunPreMatch(ctx, PreMatchRunOptions{})
	if err != nil {
		t.Fatalf("per-fixture failures must not fail the run: %v", err)
	}
	if result.Total != 3 || result.Scored != 1 || result.Failed != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestExcitementService_RunPreMatch_ListingFailureFailsRun(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{})
	h.fixtures.On("ListUnfinished", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := h.service.RunPreMatch(context.Background(), PreMatchRunOptions{})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestNewExcitementService_RejectsInvalidWeights(t *testing.T) {
	t.Parallel()

	weights := excitement.DefaultWeights()
	weights.Early.Rivalry += 0.3

	_, err := NewExcitementService(nil, nil, nil, nil, nil, ExcitementConfig{Weights: weights}, logging.NewNop())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !errors.Is(err, excitement.ErrInvalidWeights) {
		t.Fatalf("expected the weights error to stay in the chain, got %v", err)
	}
}

func liveTarget(id, home, away string) fixture.LiveTarget {
	item := sampleFixture(id, home, away)
	item.KickoffAt = testNow.Add(-10 * time.Minute)
	item.Status = fixture.StatusLive
	return fixture.LiveTarget{
		Fixture:       item,
		PreMatchScore: 0.6,
		HomePosition:  1,
		AwayPosition:  2,
	}
}

func minutePtr(v int) *int { return &v }

func TestExcitementService_RunLive_UsesStoredMappingWithoutFeed(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{LiveStatsDelay: 0})
	ctx := context.Background()

	h.fixtures.On("ListLive", mock.Anything).Return([]fixture.LiveTarget{liveTarget("fx-1", "ars", "che")}, nil).Once()
	h.externalIDs.
		On("Get", mock.Anything, "livescore", "fx-1").
		Return(externalid.Mapping{ProviderID: "livescore", MatchID: "fx-1", ExternalID: "ev-77"}, true, nil).
		Once()
	h.provider.
		On("GetEventInfo", mock.Anything, "ev-77").
		Return(livedata.EventInfo{ID: "ev-77", Status: "1H", Period: 1, Elapsed: minutePtr(10)}, nil).
		Once()
	h.provider.On("GetEventStatistics", mock.Anything, "ev-77").Return(livedata.Statistics{}, true, nil).Once()

	var snapshot excitement.LiveMatchSnapshot
	h.fixtures.
		On("SaveLiveSnapshot", mock.Anything, mock.AnythingOfType("excitement.LiveMatchSnapshot")).
		Run(func(args mock.Arguments) { snapshot = args.Get(1).(excitement.LiveMatchSnapshot) }).
		Return(nil).
		Once()

	result, err := h.service.RunLive(ctx)
	if err != nil {
		t.Fatalf("run live: %v", err)
	}
	if result.Scored != 1 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if snapshot.FixtureID != "fx-1" || snapshot.ElapsedMinutes != 10 {
		t.Fatalf("unexpected snapshot identity: %+v", snapshot)
	}
	if math.Abs(snapshot.BaseWeight-0.7) > 1e-9 {
		t.Fatalf("unexpected base weight: %v", snapshot.BaseWeight)
	}
	want := 0.6*0.7 + 0.15*0.3
	if math.Abs(snapshot.LiveExcitementScore-want) > 1e-9 {
		t.Fatalf("unexpected live score: got=%v want=%v", snapshot.LiveExcitementScore, want)
	}
	if !snapshot.RecordedAt.Equal(testNow) {
		t.Fatalf("unexpected recorded at: %v", snapshot.RecordedAt)
	}
}

func TestExcitementService_RunLive_ResolvesUnmappedTargetsFromOneFeedFetch(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{Concurrency: 2, LiveStatsDelay: 0})
	ctx := context.Background()

	first := liveTarget("fx-1", "ars", "che")
	first.HomeTeamName, first.AwayTeamName = "Arsenal", "Chelsea"
	second := liveTarget("fx-2", "liv", "mci")
	second.HomeTeamName, second.AwayTeamName = "Liverpool", "Manchester City"

	h.fixtures.On("ListLive", mock.Anything).Return([]fixture.LiveTarget{first, second}, nil).Once()
	h.externalIDs.On("Get", mock.Anything, "livescore", "fx-1").Return(externalid.Mapping{}, false, nil).Once()
	h.externalIDs.On("Get", mock.Anything, "livescore", "fx-2").Return(externalid.Mapping{}, false, nil).Once()
	h.provider.
		On("GetLiveEvents", mock.Anything).
		Return([]livedata.ExternalEvent{
			{ID: "ev-1", HomeTeam: "Arsenal FC", AwayTeam: "Chelsea FC", StartAt: first.KickoffAt},
			{ID: "ev-2", HomeTeam: "Liverpool", AwayTeam: "Manchester City FC", StartAt: second.KickoffAt.Add(5 * time.Minute)},
		}, nil).
		Once()
	h.externalIDs.
		On("Save", mock.Anything, externalid.Mapping{ProviderID: "livescore", MatchID: "fx-1", ExternalID: "ev-1", CreatedAt: testNow}).
		Return(nil).
		Once()
	h.externalIDs.
		On("Save", mock.Anything, externalid.Mapping{ProviderID: "livescore", MatchID: "fx-2", ExternalID: "ev-2", CreatedAt: testNow}).
		Return(nil).
		Once()
	for _, id := range []string{"ev-1", "ev-2"} {
		h.provider.On("GetEventInfo", mock.Anything, id).Return(livedata.EventInfo{ID: id, HomeGoals: 1, Elapsed: minutePtr(50)}, nil).Once()
		h.provider.On("GetEventStatistics", mock.Anything, id).Return(livedata.Statistics{}, true, nil).Once()
	}
	h.fixtures.On("SaveLiveSnapshot", mock.Anything, mock.Anything).Return(nil).Twice()

	result, err := h.service.RunLive(ctx)
	if err != nil {
		t.Fatalf("run live: %v", err)
	}
	if result.Scored != 2 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestExcitementService_RunLive_MissingStatisticsSkips(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{})
	ctx := context.Background()

	h.fixtures.On("ListLive", mock.Anything).Return([]fixture.LiveTarget{liveTarget("fx-1", "ars", "che")}, nil).Once()
	h.externalIDs.
		On("Get", mock.Anything, "livescore", "fx-1").
		Return(externalid.Mapping{ExternalID: "ev-1"}, true, nil).
		Once()
	h.provider.On("GetEventInfo", mock.Anything, "ev-1").Return(livedata.EventInfo{ID: "ev-1"}, nil).Once()
	h.provider.On("GetEventStatistics", mock.Anything, "ev-1").Return(livedata.Statistics{}, false, nil).Once()

	result, err := h.service.RunLive(ctx)
	if err != nil {
		t.Fatalf("run live: %v", err)
	}
	if result.Skipped != 1 || result.Scored != 0 {
		t.Fatalf("expected skip, got %+v", result)
	}
}

func TestExcitementService_RunLive_SpacesStatisticsCalls(t *testing.T) {
	t.Parallel()

	const delay = 40 * time.Millisecond
	h := newExcitementHarness(t, ExcitementConfig{Concurrency: 3, LiveStatsDelay: delay})
	ctx := context.Background()

	targets := []fixture.LiveTarget{
		liveTarget("fx-1", "ars", "che"),
		liveTarget("fx-2", "liv", "mci"),
		liveTarget("fx-3", "tot", "new"),
	}
	h.fixtures.On("ListLive", mock.Anything).Return(targets, nil).Once()

	var (
		mu    sync.Mutex
		calls []time.Time
	)
	for _, target := range targets {
		externalID := "ev-" + target.ID
		h.externalIDs.
			On("Get", mock.Anything, "livescore", target.ID).
			Return(externalid.Mapping{ExternalID: externalID}, true, nil).
			Once()
		h.provider.On("GetEventInfo", mock.Anything, externalID).Return(livedata.EventInfo{ID: externalID}, nil).Once()
		h.provider.
			On("GetEventStatistics", mock.Anything, externalID).
			Run(func(mock.Arguments) {
				mu.Lock()
				calls = append(calls, time.Now())
				mu.Unlock()
			}).
			Return(livedata.Statistics{}, true, nil).
			Once()
	}
	h.fixtures.On("SaveLiveSnapshot", mock.Anything, mock.Anything).Return(nil).Times(3)

	startedAt := time.Now()
	result, err := h.service.RunLive(ctx)
	if err != nil {
		t.Fatalf("run live: %v", err)
	}
	if result.Scored != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if elapsed := time.Since(startedAt); elapsed < 2*delay-5*time.Millisecond {
		t.Fatalf("statistics calls were not spaced: elapsed=%s", elapsed)
	}
	if len(calls) != 3 {
		t.Fatalf("unexpected statistics call count: %d", len(calls))
	}
}

func TestExcitementService_RunLive_CancelledContextDrainsAsSkipped(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h.fixtures.
		On("ListLive", mock.Anything).
		Return([]fixture.LiveTarget{liveTarget("fx-1", "ars", "che"), liveTarget("fx-2", "liv", "mci")}, nil).
		Once()

	result, err := h.service.RunLive(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Total != 2 || result.Skipped != 2 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestExcitementService_RunLive_FeedFailureOnlyFailsUnmappedTargets(t *testing.T) {
	t.Parallel()

	h := newExcitementHarness(t, ExcitementConfig{Concurrency: 1, LiveStatsDelay: 0})
	ctx := context.Background()

	h.fixtures.
		On("ListLive", mock.Anything).
		Return([]fixture.LiveTarget{liveTarget("fx-1", "ars", "che"), liveTarget("fx-2", "liv", "mci")}, nil).
		Once()
	h.externalIDs.On("Get", mock.Anything, "livescore", "fx-1").Return(externalid.Mapping{}, false, nil).Once()
	h.externalIDs.On("Get", mock.Anything, "livescore", "fx-2").Return(externalid.Mapping{ExternalID: "ev-2"}, true, nil).Once()
	h.provider.On("GetLiveEvents", mock.Anything).Return(nil, errors.New("feed down")).Once()
	h.provider.On("GetEventInfo", mock.Anything, "ev-2").Return(livedata.EventInfo{ID: "ev-2"}, nil).Once()
	h.provider.On("GetEventStatistics", mock.Anything, "ev-2").Return(livedata.Statistics{}, true, nil).Once()
	h.fixtures.On("SaveLiveSnapshot", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := h.service.RunLive(ctx)
	if err != nil {
		t.Fatalf("run live: %v", err)
	}
	if result.Scored != 1 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
