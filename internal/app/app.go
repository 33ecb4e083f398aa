// Package app assembles repositories, the live provider and the scoring services from config.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/excitement-engine/external/livescore"
	"github.com/riskibarqy/excitement-engine/internal/config"
	"github.com/riskibarqy/excitement-engine/internal/domain/competition"
	"github.com/riskibarqy/excitement-engine/internal/domain/externalid"
	"github.com/riskibarqy/excitement-engine/internal/domain/fixture"
	"github.com/riskibarqy/excitement-engine/internal/domain/team"
	"github.com/riskibarqy/excitement-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/excitement-engine/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/excitement-engine/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/excitement-engine/internal/platform/id"
	"github.com/riskibarqy/excitement-engine/internal/platform/logging"
	"github.com/riskibarqy/excitement-engine/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Container holds the wired services shared by the api and the worker.
type Container struct {
	Config      config.Config
	Logger      *logging.Logger
	Excitement  *usecase.ExcitementService
	ExternalIDs *usecase.ExternalIDService
	Teams       *usecase.TeamResolutionService

	db *sqlx.DB
}

type repositories struct {
	fixtures     fixture.Repository
	competitions competition.Repository
	externalIDs  externalid.Repository
	teams        team.Repository
}

// Build opens storage and constructs the services. Close releases the database handle.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	c := &Container{Config: cfg, Logger: logger}

	var repos repositories
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		repos = newMemoryRepositories(time.Now().UTC())
		logger.Warn("using in-memory storage with seed data", "storage_driver", cfg.StorageDriver)
	default:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.db = db
		repos = repositories{
			fixtures:     postgres.NewFixtureRepository(db),
			competitions: postgres.NewCompetitionRepository(db),
			externalIDs:  postgres.NewExternalIDRepository(db),
			teams:        postgres.NewTeamRepository(db),
		}
		target := resolveDBTarget(cfg.DBURL, cfg.ServiceName)
		logger.Info("postgres storage ready", "db_name", target.Name, "db_host", target.Host)
	}

	var provider usecase.LiveDataProvider
	if cfg.LivescoreEnabled {
		provider = livescore.NewClient(livescore.ClientConfig{
			BaseURL:           cfg.LivescoreBaseURL,
			Token:             cfg.LivescoreToken,
			ProviderID:        cfg.LivescoreProviderID,
			Timeout:           cfg.LivescoreTimeout,
			MaxRetries:        cfg.LivescoreMaxRetries,
			RequestsPerSecond: cfg.LivescoreRequestsPerSecond,
			Burst:             cfg.LivescoreBurst,
			CircuitBreaker:    cfg.LivescoreCircuit,
			Logger:            logger,
		})
	} else {
		logger.Info("live data provider disabled", "reason", "LIVESCORE_ENABLED=false")
	}

	c.ExternalIDs = usecase.NewExternalIDService(repos.externalIDs, cfg.EventConfig(), logger)
	c.Teams = usecase.NewTeamResolutionService(repos.teams, idgen.NewGenerator("team"), cfg.EntityConfig(), logger)

	excitementSvc, err := usecase.NewExcitementService(
		repos.fixtures,
		repos.competitions,
		c.ExternalIDs,
		provider,
		idgen.NewGenerator("run"),
		usecase.ExcitementConfig{
			Weights:           cfg.PreMatchWeights,
			Live:              cfg.LiveScoring,
			Concurrency:       cfg.ScoringConcurrency,
			PreMatchFreshness: cfg.PreMatchFreshness,
			LiveStatsDelay:    cfg.LiveStatsDelay,
		},
		logger,
	)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("build excitement service: %w", err)
	}
	c.Excitement = excitementSvc

	return c, nil
}

func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// NewHTTPServer builds the internal api server on top of the container's services.
func NewHTTPServer(c *Container) (*http.Server, error) {
	if c.Config.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(c.Excitement, c.Teams, c.ExternalIDs, c.Logger)
	router := httpapi.NewRouter(handler, c.Config.InternalJobToken, c.Logger)

	return &http.Server{
		Addr:              c.Config.HTTPAddr,
		Handler:           router,
		ReadTimeout:       c.Config.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      c.Config.WriteTimeout,
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	target := resolveDBTarget(cfg.DBURL, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", target.DSN,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(target.Name),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(max(cfg.ScoringConcurrency*2, 4))
	db.SetMaxIdleConns(max(cfg.ScoringConcurrency, 2))
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func newMemoryRepositories(now time.Time) repositories {
	competitions := memory.NewCompetitionRepository(
		memory.SeedStandings(),
		memory.SeedRivalries(),
		memory.SeedHeadToHead(now),
	)
	return repositories{
		fixtures:     memory.NewFixtureRepository(memory.SeedFixtures(now), competitions),
		competitions: competitions,
		externalIDs:  memory.NewExternalIDRepository(),
		teams:        memory.NewTeamRepository(memory.SeedTeams()),
	}
}
