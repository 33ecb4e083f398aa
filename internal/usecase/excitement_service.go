package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/competition"
	"github.com/riskibarqy/excitement-engine/internal/domain/excitement"
	"github.com/riskibarqy/excitement-engine/internal/domain/fixture"
	"github.com/riskibarqy/excitement-engine/internal/domain/livedata"
	"github.com/riskibarqy/excitement-engine/internal/platform/cache"
	"github.com/riskibarqy/excitement-engine/internal/platform/fanout"
	idgen "github.com/riskibarqy/excitement-engine/internal/platform/id"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
	"golang.org/x/time/rate"
)

const (
	RunModePreMatch = "prematch"
	RunModeLive     = "live"

	defaultPreMatchFreshness = 2 * time.Hour
	defaultLiveStatsDelay    = time.Second
)

type ExcitementConfig struct {
	Weights     excitement.Weights
	Live        excitement.LiveConfig
	Concurrency int

	// PreMatchFreshness is how long a stored pre-match score is trusted before a
	// non-forced run recomputes it.
	PreMatchFreshness time.Duration
	// LiveStatsDelay spaces consecutive statistics calls to the live provider.
	// Zero disables pacing; a negative value falls back to the default.
	LiveStatsDelay    time.Duration
}

type PreMatchRunOptions struct {
	Force bool
}

// BatchResult summarizes one run. Total = Scored + Skipped + Failed.
type BatchResult struct {
	RunID      string `json:"run_id"`
	Mode       string `json:"mode"`
	Total      int    `json:"total"`
	Scored     int    `json:"scored"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
	DurationMS int64  `json:"duration_ms"`
}

type ExcitementService struct {
	fixtureRepo     fixture.Repository
	competitionRepo competition.Repository
	externalIDs     *ExternalIDService
	provider        LiveDataProvider
	idGen           idgen.Generator
	cfg             ExcitementConfig
	logger          *logging.Logger
	now             func() time.Time
}

func NewExcitementService(
	fixtureRepo fixture.Repository,
	competitionRepo competition.Repository,
	externalIDs *ExternalIDService,
	provider LiveDataProvider,
	idGen idgen.Generator,
	cfg ExcitementConfig,
	logger *logging.Logger,
) (*ExcitementService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewGenerator("run")
	}
	if cfg.Weights == (excitement.Weights{}) {
		cfg.Weights = excitement.DefaultWeights()
	}
	if cfg.Live == (excitement.LiveConfig{}) {
		cfg.Live = excitement.DefaultLiveConfig()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = fanout.DefaultWorkers
	}
	if cfg.PreMatchFreshness <= 0 {
		cfg.PreMatchFreshness = defaultPreMatchFreshness
	}
	if cfg.LiveStatsDelay < 0 {
		cfg.LiveStatsDelay = defaultLiveStatsDelay
	}

	if err := cfg.Weights.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if err := cfg.Live.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	return &ExcitementService{
		fixtureRepo:     fixtureRepo,
		competitionRepo: competitionRepo,
		externalIDs:     externalIDs,
		provider:        provider,
		idGen:           idGen,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}, nil
}

type taskOutcome int

const (
	outcomeScored taskOutcome = iota
	outcomeSkipped
)

// batchCounter tallies task outcomes from pool workers.
type batchCounter struct {
	scored  atomic.Int64
	skipped atomic.Int64
}

func (c *batchCounter) record(outcome taskOutcome) {
	switch outcome {
	case outcomeScored:
		c.scored.Add(1)
	case outcomeSkipped:
		c.skipped.Add(1)
	}
}

func (s *ExcitementService) newRunID() string {
	runID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Sprintf("run_%d", s.now().UnixNano())
	}
	return runID
}

// runBatch fans items out on the worker pool and folds per-item errors into the result.
// Items cancelled before or during their pipeline count as skipped.
func runBatch[T any](
	ctx context.Context,
	s *ExcitementService,
	result *BatchResult,
	logger *logging.Logger,
	items []T,
	itemID func(T) string,
	task func(ctx context.Context, item T) (taskOutcome, error),
) error {
	startedAt := s.now()
	result.Total = len(items)

	var counter batchCounter
	errs, err := fanout.Run(ctx, s.cfg.Concurrency, items, func(ctx context.Context, item T) error {
		outcome, err := task(ctx, item)
		if err != nil {
			return err
		}
		counter.record(outcome)
		return nil
	})
	if err != nil {
		return err
	}

	for i, itemErr := range errs {
		if itemErr == nil {
			continue
		}
		if errors.Is(itemErr, context.Canceled) || errors.Is(itemErr, context.DeadlineExceeded) {
			counter.skipped.Add(1)
			continue
		}
		result.Failed++
		logger.WarnContext(ctx, "score match failed",
			"fixture_id", itemID(items[i]),
			"error", itemErr,
		)
	}
	result.Scored = int(counter.scored.Load())
	result.Skipped = int(counter.skipped.Load())
	result.DurationMS = s.now().Sub(startedAt).Milliseconds()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s run %s interrupted: %w", result.Mode, result.RunID, ctxErr)
	}
	return nil
}

// RunPreMatch computes a fresh pre-match score for every unfinished fixture.
func (s *ExcitementService) RunPreMatch(ctx context.Context, opts PreMatchRunOptions) (result BatchResult, err error) {
	result = BatchResult{RunID: s.newRunID(), Mode: RunModePreMatch}
	ctx, span := startRunSpan(ctx, result)
	defer func() { endRunSpan(span, result, err) }()
	logger := s.logger.With("run_id", result.RunID, "mode", result.Mode)

	fixtures, err := s.fixtureRepo.ListUnfinished(ctx)
	if err != nil {
		return result, unavailable(err, "list unfinished fixtures")
	}
	logger.InfoContext(ctx, "pre-match run started", "fixtures", len(fixtures), "force", opts.Force)

	run := &preMatchRun{
		tables:    cache.NewMemo(),
		rivalries: cache.NewMemo(),
		force:     opts.Force,
		logger:    logger,
	}
	err = runBatch(ctx, s, &result, logger, fixtures,
		func(item fixture.Fixture) string { return item.ID },
		func(ctx context.Context, item fixture.Fixture) (taskOutcome, error) {
			return s.scorePreMatch(ctx, run, item)
		},
	)

	logger.InfoContext(ctx, "pre-match run finished",
		"total", result.Total,
		"scored", result.Scored,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"table_loads", run.tables.Loads(),
		"rivalry_loads", run.rivalries.Loads(),
		"duration_ms", result.DurationMS,
	)
	return result, err
}

// RunLive re-scores every fixture currently in play.
func (s *ExcitementService) RunLive(ctx context.Context) (result BatchResult, err error) {
	result = BatchResult{RunID: s.newRunID(), Mode: RunModeLive}
	ctx, span := startRunSpan(ctx, result)
	defer func() { endRunSpan(span, result, err) }()
	logger := s.logger.With("run_id", result.RunID, "mode", result.Mode)

	if s.provider == nil || s.externalIDs == nil {
		return result, unavailable(nil, "live data provider is not configured")
	}

	targets, err := s.fixtureRepo.ListLive(ctx)
	if err != nil {
		return result, unavailable(err, "list live fixtures")
	}
	logger.InfoContext(ctx, "live run started", "fixtures", len(targets))

	limit := rate.Inf
	if s.cfg.LiveStatsDelay > 0 {
		limit = rate.Every(s.cfg.LiveStatsDelay)
	}
	run := &liveRun{
		providerID: s.provider.ProviderID(),
		feed:       cache.NewMemo(),
		pacer:      rate.NewLimiter(limit, 1),
		logger:     logger,
	}
	err = runBatch(ctx, s, &result, logger, targets,
		func(item fixture.LiveTarget) string { return item.ID },
		func(ctx context.Context, item fixture.LiveTarget) (taskOutcome, error) {
			return s.scoreLive(ctx, run, item)
		},
	)

	logger.InfoContext(ctx, "live run finished",
		"total", result.Total,
		"scored", result.Scored,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"feed_loads", run.feed.Loads(),
		"duration_ms", result.DurationMS,
	)
	return result, err
}

type preMatchRun struct {
	tables    *cache.Memo
	rivalries *cache.Memo
	force     bool
	logger    *logging.Logger
}

// rivalryLookup memoizes absence as well as presence.
type rivalryLookup struct {
	pair  competition.RivalryPair
	found bool
}

func (s *ExcitementService) scorePreMatch(ctx context.Context, run *preMatchRun, item fixture.Fixture) (taskOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExcitementService.scorePreMatch", fixtureAttr(item.ID))
	defer span.End()

	now := s.now().UTC()
	if item.IsFinished() {
		return outcomeSkipped, nil
	}
	if !run.force && item.ScoredWithin(now, s.cfg.PreMatchFreshness) {
		run.logger.DebugContext(ctx, "pre-match score still fresh", "fixture_id", item.ID)
		return outcomeSkipped, nil
	}

	tableKey := competition.TableKey(item.CompetitionID, item.SeasonID)
	standings, err := cache.Load(ctx, run.tables, tableKey, func(ctx context.Context) ([]competition.StandingRow, error) {
		return s.competitionRepo.GetTable(ctx, item.CompetitionID, item.SeasonID)
	})
	if err != nil {
		return 0, fmt.Errorf("get table %s: %w", tableKey, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	pairKey := item.HomeTeamID + ":" + item.AwayTeamID
	reverseKey := item.AwayTeamID + ":" + item.HomeTeamID
	rivalry, err := cache.Load(ctx, run.rivalries, pairKey, func(ctx context.Context) (rivalryLookup, error) {
		pair, found, err := s.competitionRepo.GetRivalry(ctx, item.HomeTeamID, item.AwayTeamID)
		return rivalryLookup{pair: pair, found: found}, err
	}, reverseKey)
	if err != nil {
		return 0, fmt.Errorf("get rivalry %s: %w", pairKey, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	headToHead, err := s.competitionRepo.GetHeadToHead(ctx, item.HomeTeamID, item.AwayTeamID)
	if err != nil {
		return 0, fmt.Errorf("get head to head %s: %w", pairKey, err)
	}

	input := excitement.PreMatchInput{
		Fixture:       item.ScoringContext(),
		Standings:     standings,
		HeadToHead:    headToHead,
		ReferenceTime: now,
	}
	if rivalry.found {
		pair := rivalry.pair
		input.Rivalry = &pair
	}

	breakdown, ok := excitement.ComputePreMatch(input, s.cfg.Weights)
	if !ok {
		run.logger.DebugContext(ctx, "standing row missing, fixture not scored",
			"fixture_id", item.ID,
			"table", tableKey,
		)
		return outcomeSkipped, nil
	}
	breakdown.ComputedAt = now

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.fixtureRepo.SaveScoreBreakdown(ctx, breakdown); err != nil {
		return 0, fmt.Errorf("save score breakdown: %w", err)
	}

	run.logger.DebugContext(ctx, "pre-match score saved",
		"fixture_id", item.ID,
		"score", breakdown.ExcitementScore,
		"regime", string(breakdown.Regime),
	)
	return outcomeScored, nil
}

type liveRun struct {
	providerID string
	// feed holds the provider's live event list, fetched at most once per run and only
	// when some fixture still needs its external id resolved.
	feed   *cache.Memo
	pacer  *rate.Limiter
	logger *logging.Logger
}

const liveFeedKey = "live-events"

func (r *liveRun) events(provider LiveDataProvider) EventSource {
	return func(ctx context.Context) ([]livedata.ExternalEvent, error) {
		return cache.Load(ctx, r.feed, liveFeedKey, provider.GetLiveEvents)
	}
}

func (s *ExcitementService) scoreLive(ctx context.Context, run *liveRun, item fixture.LiveTarget) (taskOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExcitementService.scoreLive", fixtureAttr(item.ID))
	defer span.End()

	externalID, found, err := s.externalIDs.Resolve(ctx, run.providerID, item.Fixture, run.events(s.provider))
	if err != nil {
		return 0, err
	}
	if !found {
		run.logger.DebugContext(ctx, "no live event matched fixture", "fixture_id", item.ID)
		return outcomeSkipped, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	info, err := s.provider.GetEventInfo(ctx, externalID)
	if err != nil {
		return 0, fmt.Errorf("get event info %s: %w", externalID, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := run.pacer.Wait(ctx); err != nil {
		return 0, err
	}
	stats, found, err := s.provider.GetEventStatistics(ctx, externalID)
	if err != nil {
		return 0, fmt.Errorf("get event statistics %s: %w", externalID, err)
	}
	if !found {
		run.logger.DebugContext(ctx, "statistics not available yet",
			"fixture_id", item.ID,
			"external_id", externalID,
		)
		return outcomeSkipped, nil
	}

	now := s.now().UTC()
	minute, ok := excitement.ElapsedMinutes(info, now)
	if !ok {
		run.logger.WarnContext(ctx, "match clock unavailable, assuming default minute",
			"fixture_id", item.ID,
			"external_id", externalID,
			"minute", minute,
		)
	}

	input := excitement.LiveInput{
		Baseline:       item.PreMatchScore,
		Previous:       item.PreviousLiveScore,
		HomeGoals:      info.HomeGoals,
		AwayGoals:      info.AwayGoals,
		Stats:          &stats,
		HomePosition:   item.HomePosition,
		AwayPosition:   item.AwayPosition,
		ElapsedMinutes: minute,
	}
	live := excitement.ComputeLive(input, s.cfg.Live)
	snapshot := live.Snapshot(input, item.ID)
	snapshot.RecordedAt = now

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.fixtureRepo.SaveLiveSnapshot(ctx, snapshot); err != nil {
		return 0, fmt.Errorf("save live snapshot: %w", err)
	}

	run.logger.DebugContext(ctx, "live score saved",
		"fixture_id", item.ID,
		"minute", minute,
		"score", snapshot.LiveExcitementScore,
		"bonus", snapshot.TotalLiveBonus,
	)
	return outcomeScored, nil
}
