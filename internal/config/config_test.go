package config

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/excitement-engine/internal/domain/excitement"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageDriverPostgres {
		t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
	}
	if cfg.PreMatchWeights != excitement.DefaultWeights() {
		t.Fatalf("expected default pre-match weights, got %+v", cfg.PreMatchWeights)
	}
	if cfg.LiveScoring != excitement.DefaultLiveConfig() {
		t.Fatalf("expected default live config, got %+v", cfg.LiveScoring)
	}
	if cfg.EntityThreshold != 75 || cfg.EventTeamThreshold != 80 {
		t.Fatalf("unexpected thresholds: entity=%d event=%d", cfg.EntityThreshold, cfg.EventTeamThreshold)
	}
	if cfg.ScoringConcurrency != 2 || cfg.PreMatchFreshness != 2*time.Hour || cfg.LiveStatsDelay != time.Second {
		t.Fatalf("unexpected scoring defaults: %+v", cfg)
	}
	if cfg.SchedulePreMatchCron != "*/30 * * * *" || cfg.ScheduleLiveCron != "@every 1m" {
		t.Fatalf("unexpected schedules: %q %q", cfg.SchedulePreMatchCron, cfg.ScheduleLiveCron)
	}
	if !cfg.LivescoreCircuit.Enabled || cfg.LivescoreCircuit.FailureThreshold != 5 {
		t.Fatalf("unexpected circuit defaults: %+v", cfg.LivescoreCircuit)
	}
	if got := cfg.EventConfig(); got.TeamThreshold != 80 || got.KickoffTolerance != 2*time.Hour || got.Scorer == nil {
		t.Fatalf("unexpected event config: %+v", got)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "excitement-engine-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "excitement-engine-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("memory accepted", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " Memory ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageDriverMemory {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("unknown rejected", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_WeightOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("valid override keeps unnamed components", func(t *testing.T) {
		t.Setenv("EXCITEMENT_EARLY_WEIGHTS", "competition:0.15, rivalry:0.20")
		t.Setenv("EXCITEMENT_LATE_STAGE_THRESHOLD", "0.75")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		early := cfg.PreMatchWeights.Early
		if early.Competition != 0.15 || early.Rivalry != 0.20 {
			t.Fatalf("override not applied: %+v", early)
		}
		if early.Form != excitement.DefaultWeights().Early.Form {
			t.Fatalf("unnamed component changed: %+v", early)
		}
		if cfg.PreMatchWeights.LateStageThreshold != 0.75 {
			t.Fatalf("unexpected late stage threshold: %v", cfg.PreMatchWeights.LateStageThreshold)
		}
	})

	t.Run("sum not one rejected", func(t *testing.T) {
		t.Setenv("EXCITEMENT_LATE_WEIGHTS", "table:0.9")
		_, err := Load()
		if !errors.Is(err, excitement.ErrInvalidWeights) {
			t.Fatalf("expected ErrInvalidWeights, got %v", err)
		}
	})

	t.Run("unknown component rejected", func(t *testing.T) {
		t.Setenv("EXCITEMENT_EARLY_WEIGHTS", "hype:0.2")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown component")
		}
	})
}

func TestLoad_LiveCoefficientOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("EXCITEMENT_LIVE_COEFFICIENTS", "score_line:0.25,big_chances:0.30")
	t.Setenv("EXCITEMENT_LIVE_BONUS_SCALE", "1.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LiveScoring.Coefficients.ScoreLine != 0.25 || cfg.LiveScoring.Coefficients.BigChances != 0.30 {
		t.Fatalf("unexpected coefficients: %+v", cfg.LiveScoring.Coefficients)
	}
	if cfg.LiveScoring.LiveBonusScale != 1.5 {
		t.Fatalf("unexpected bonus scale: %v", cfg.LiveScoring.LiveBonusScale)
	}
}

func TestLoad_ScoringLimits(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cases := map[string]string{
		"SCORING_CONCURRENCY":             "0",
		"SCORING_PREMATCH_FRESHNESS":      "0s",
		"SCORING_LIVE_STATS_DELAY":        "-1s",
		"RESOLUTION_ENTITY_THRESHOLD":     "101",
		"RESOLUTION_EVENT_TEAM_THRESHOLD": "abc",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}

	t.Run("zero stats delay disables pacing", func(t *testing.T) {
		t.Setenv("SCORING_LIVE_STATS_DELAY", "0s")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.LiveStatsDelay != 0 {
			t.Fatalf("expected zero delay, got %s", cfg.LiveStatsDelay)
		}
	})
}

func TestLoad_LivescoreConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("enabled requires base url", func(t *testing.T) {
		t.Setenv("LIVESCORE_ENABLED", "true")
		t.Setenv("LIVESCORE_BASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when LIVESCORE_ENABLED=true without LIVESCORE_BASE_URL")
		}
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("LIVESCORE_ENABLED", "true")
		t.Setenv("LIVESCORE_BASE_URL", "https://feed.example.com/v2")
		t.Setenv("LIVESCORE_TOKEN", "tok")
		t.Setenv("LIVESCORE_TIMEOUT", "4s")
		t.Setenv("LIVESCORE_MAX_RETRIES", "3")
		t.Setenv("LIVESCORE_REQUESTS_PER_SECOND", "2.5")
		t.Setenv("LIVESCORE_CIRCUIT_ENABLED", "false")
		t.Setenv("LIVESCORE_CIRCUIT_OPEN_TIMEOUT", "30s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.LivescoreBaseURL != "https://feed.example.com/v2" || cfg.LivescoreToken != "tok" {
			t.Fatalf("unexpected livescore endpoint config: %+v", cfg)
		}
		if cfg.LivescoreTimeout != 4*time.Second || cfg.LivescoreMaxRetries != 3 || cfg.LivescoreRequestsPerSecond != 2.5 {
			t.Fatalf("unexpected livescore client config: %+v", cfg)
		}
		if cfg.LivescoreCircuit.Enabled || cfg.LivescoreCircuit.OpenTimeout != 30*time.Second {
			t.Fatalf("unexpected circuit config: %+v", cfg.LivescoreCircuit)
		}
	})
}

func TestLoad_ProdRequiresInternalJobToken(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without INTERNAL_JOB_TOKEN in prod")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "job-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.InternalJobToken != "job-secret" {
		t.Fatalf("unexpected internal job token: %q", cfg.InternalJobToken)
	}
}
