package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("SOCCER_API_TOKEN", "provider-token")
	t.Setenv("SYNC_TOKEN", "sync-token")
	t.Setenv("HOME_CLUB_ID", "10")
	t.Setenv("DEFAULT_SEASON_ID", "2025")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiredFields(t *testing.T) {
	t.Run("provider token", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SOCCER_API_TOKEN", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without SOCCER_API_TOKEN")
		}
	})

	t.Run("sync token", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SYNC_TOKEN", "  ")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without SYNC_TOKEN")
		}
	})

	t.Run("home club id", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("HOME_CLUB_ID", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for HOME_CLUB_ID=0")
		}
	})

	t.Run("default season id", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DEFAULT_SEASON_ID", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without DEFAULT_SEASON_ID")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStackEnabled {
		t.Fatalf("expected BetterStackEnabled=true")
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel.String())
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Run("default wildcard", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://kaisarfc.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://kaisarfc.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 30*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_SoccerAPIConfigParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SOCCER_API_BASE_URL", "https://provider.example.com/v1")
	t.Setenv("SOCCER_API_TIMEOUT", "15s")
	t.Setenv("SOCCER_API_MAX_RETRIES", "3")
	t.Setenv("SOCCER_API_GAME_PAGE_SIZE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SoccerAPIBaseURL != "https://provider.example.com/v1" {
		t.Fatalf("unexpected base url: %q", cfg.SoccerAPIBaseURL)
	}
	if cfg.SoccerAPITimeout != 15*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.SoccerAPITimeout)
	}
	if cfg.SoccerAPIMaxRetries != 3 {
		t.Fatalf("unexpected max retries: %d", cfg.SoccerAPIMaxRetries)
	}
	if cfg.SoccerAPIGamePageSize != 25 {
		t.Fatalf("unexpected game page size: %d", cfg.SoccerAPIGamePageSize)
	}
	if !cfg.SoccerAPICircuitEnabled {
		t.Fatalf("expected circuit breaker enabled by default")
	}
}

func TestLoad_SyncDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HomeClubID != 10 {
		t.Fatalf("unexpected home club id: %d", cfg.HomeClubID)
	}
	if cfg.DefaultSeasonID != 2025 {
		t.Fatalf("unexpected default season id: %d", cfg.DefaultSeasonID)
	}
	if cfg.SyncRunTimeout != 2*time.Minute {
		t.Fatalf("unexpected sync run timeout: %s", cfg.SyncRunTimeout)
	}
	if cfg.SchedulerEnabled {
		t.Fatalf("expected scheduler disabled by default")
	}
	if cfg.SyncLeagueTableInterval != 15*time.Minute {
		t.Fatalf("unexpected league table interval: %s", cfg.SyncLeagueTableInterval)
	}
	if cfg.SyncMatchesInterval != 10*time.Minute {
		t.Fatalf("unexpected matches interval: %s", cfg.SyncMatchesInterval)
	}
	if cfg.SyncPlayersInterval != 6*time.Hour {
		t.Fatalf("unexpected players interval: %s", cfg.SyncPlayersInterval)
	}
	if cfg.SyncTeamStatsInterval != time.Hour {
		t.Fatalf("unexpected team stats interval: %s", cfg.SyncTeamStatsInterval)
	}
}

func TestLoad_SchedulerIntervalValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SYNC_MATCHES_INTERVAL", "-5m")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative SYNC_MATCHES_INTERVAL")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn=https://token@api.uptrace.dev/123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}
