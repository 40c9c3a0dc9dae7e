package soccerapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kaisarfc/club-backend/internal/platform/logging"
	"github.com/kaisarfc/club-backend/internal/platform/resilience"
	"github.com/kaisarfc/club-backend/internal/usecase"
)

const testToken = "secret-provider-token"

func newTestClient(t *testing.T, baseURL string, mutate func(*ClientConfig)) *Client {
	t.Helper()

	cfg := ClientConfig{
		BaseURL: baseURL,
		Token:   testToken,
		Timeout: 5 * time.Second,
		Logger:  logging.NewNop(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestFetchScoreTable_MapsRowsAndSendsToken(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/scoretable" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"team_id":10,"team":" Kaisar FC ","logo_url":"https://cdn.example/kaisar.png","played":22,"won":16,"drawn":4,"lost":2,"goals":"53:19","points":52}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	rows, err := client.FetchScoreTable(context.Background(), 2025)
	if err != nil {
		t.Fatalf("FetchScoreTable: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got=%d", len(rows))
	}
	if rows[0].TeamID != 10 || rows[0].TeamName != "Kaisar FC" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if rows[0].Goals != "53:19" || rows[0].Points != 52 {
		t.Fatalf("unexpected row totals: %+v", rows[0])
	}

	query := gotQuery.Load().(url.Values)
	if got := query["season_id"]; len(got) != 1 || got[0] != "2025" {
		t.Fatalf("expected season_id=2025, got=%v", got)
	}
	if got := query["apikey"]; len(got) != 1 || got[0] != testToken {
		t.Fatalf("expected apikey query param, got=%v", got)
	}
}

func TestFetchScoreTable_RejectsInvalidSeason(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://localhost:1", nil)
	if _, err := client.FetchScoreTable(context.Background(), 0); err == nil {
		t.Fatalf("expected error for season id 0")
	}
}

func TestProviderNotFound_MapsToUpstreamNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no such season"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	_, err := client.FetchScoreTable(context.Background(), 1999)
	if !errors.Is(err, usecase.ErrUpstreamNotFound) {
		t.Fatalf("expected ErrUpstreamNotFound, got=%v", err)
	}
}

func TestExecuteRequest_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *ClientConfig) {
		cfg.MaxRetries = 1
	})
	if _, err := client.FetchScoreTable(context.Background(), 2025); err != nil {
		t.Fatalf("expected retry to recover, got=%v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 requests, got=%d", got)
	}
}

func TestExecuteRequest_NonRetryableStatusFailsOnce(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *ClientConfig) {
		cfg.MaxRetries = 3
	})
	_, err := client.FetchScoreTable(context.Background(), 2025)
	if err == nil {
		t.Fatalf("expected error for status 400")
	}
	if errors.Is(err, usecase.ErrUpstreamUnavailable) {
		t.Fatalf("status 400 must not map to ErrUpstreamUnavailable, got=%v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected a single request, got=%d", got)
	}
}

func TestTransientFailure_MapsToUpstreamUnavailableAndRedactsToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Echo the raw query so the token would leak into the error body.
		http.Error(w, "denied for "+r.URL.RawQuery, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	_, err := client.FetchScoreTable(context.Background(), 2025)
	if !errors.Is(err, usecase.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got=%v", err)
	}
	if strings.Contains(err.Error(), testToken) {
		t.Fatalf("token leaked into error: %v", err)
	}
	if !strings.Contains(err.Error(), "REDACTED") {
		t.Fatalf("expected redaction marker in error, got=%v", err)
	}
}

func TestCircuitBreaker_OpensAfterFailuresAndShortCircuits(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	if _, err := client.FetchScoreTable(context.Background(), 2025); !errors.Is(err, usecase.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable on first failure, got=%v", err)
	}
	requestsSoFar := hits.Load()

	_, err := client.FetchScoreTable(context.Background(), 2026)
	if !errors.Is(err, usecase.ErrUpstreamUnavailable) {
		t.Fatalf("expected short-circuited error, got=%v", err)
	}
	if got := hits.Load(); got != requestsSoFar {
		t.Fatalf("open breaker must not reach the server, requests went %d -> %d", requestsSoFar, got)
	}
}

func TestGamesPager_WalksPagesUntilTotal(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var offsets []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset := r.URL.Query().Get("offset")
		mu.Lock()
		offsets = append(offsets, offset)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch offset {
		case "0":
			_, _ = w.Write([]byte(`{"data":[{"id":1,"season_id":2025,"home_team":{"id":10,"name":"Kaisar FC"},"away_team":{"id":20,"name":"Garuda United"}},{"id":2,"season_id":2025,"home_team":{"id":30,"name":"Persikota"},"away_team":{"id":10,"name":"Kaisar FC"}}],"meta":{"total":3,"limit":2,"offset":0}}`))
		case "2":
			_, _ = w.Write([]byte(`{"data":[{"id":3,"season_id":2025,"home_team":{"id":10,"name":"Kaisar FC"},"away_team":{"id":40,"name":"Bhayangkara"}}],"meta":{"total":3,"limit":2,"offset":2}}`))
		default:
			t.Errorf("unexpected offset %q", offset)
			_, _ = w.Write([]byte(`{"data":[]}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *ClientConfig) {
		cfg.GamePageSize = 2
	})
	source := client.Games(2025, 0)

	ctx := context.Background()
	first, more, err := source.Next(ctx)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first) != 2 || !more {
		t.Fatalf("expected full first page with more=true, got len=%d more=%v", len(first), more)
	}

	second, more, err := source.Next(ctx)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second) != 1 || more {
		t.Fatalf("expected final page of one with more=false, got len=%d more=%v", len(second), more)
	}
	if second[0].ID != 3 {
		t.Fatalf("unexpected match id %d", second[0].ID)
	}

	extra, more, err := source.Next(ctx)
	if err != nil || extra != nil || more {
		t.Fatalf("exhausted pager must return nil,false,nil; got %v,%v,%v", extra, more, err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(offsets) != 2 {
		t.Fatalf("expected exactly two page requests, got offsets=%v", offsets)
	}
}

func TestGamesPager_ScopesToTeamWhenSet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("team_id"); got != "10" {
			t.Errorf("expected team_id=10, got=%q", got)
		}
		_, _ = w.Write([]byte(`{"data":[],"meta":{"total":0}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	if _, _, err := client.Games(2025, 10).Next(context.Background()); err != nil {
		t.Fatalf("Next: %v", err)
	}
}

func TestFetchGameDetails_InfersDetailsFromLineups(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":42,"season_id":2025,"tour":7,"date":"2025-09-14","time":"19:30","home_team":{"id":10,"name":"Kaisar FC"},"away_team":{"id":20,"name":"Garuda United"},"home_score":2,"away_score":1,"venue":"Stadion Kaisar","status":"finished","lineups":[{"player_id":501,"player":" Rizky Putra ","team_id":10,"number":9,"position":"FW","starting":true}],"events":[{"minute":55,"type":"goal","team_id":10,"player_id":501,"detail":"header"}]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	game, err := client.FetchGameDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("FetchGameDetails: %v", err)
	}
	if !game.HasDetails {
		t.Fatalf("expected HasDetails for a game with lineups")
	}
	if len(game.Lineups) != 1 || game.Lineups[0].PlayerName != "Rizky Putra" {
		t.Fatalf("unexpected lineups: %+v", game.Lineups)
	}
	if len(game.Events) != 1 || game.Events[0].Minute != 55 {
		t.Fatalf("unexpected events: %+v", game.Events)
	}
	if game.HomeScore == nil || *game.HomeScore != 2 {
		t.Fatalf("unexpected home score: %v", game.HomeScore)
	}
}

func TestFetchTeamPlayers_MapsStats(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":501,"team_id":10,"first_name":"Rizky","last_name":"Putra","number":9,"position":"FW","nationality":"Indonesia","birth_date":"2000-02-11","height_cm":178,"weight_kg":72,"photo":"rizky-putra.jpg","photo_url":"https://cdn.example/rizky.jpg","stats":{"season_id":2025,"matches":21,"goals":14,"assists":5,"yellow_cards":2,"red_cards":0,"minutes":1810}}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	players, err := client.FetchTeamPlayers(context.Background(), 10, 2025)
	if err != nil {
		t.Fatalf("FetchTeamPlayers: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("expected one player, got=%d", len(players))
	}
	p := players[0]
	if p.ID != 501 || p.Number != 9 || p.PhotoFilename != "rizky-putra.jpg" {
		t.Fatalf("unexpected player: %+v", p)
	}
	if p.Stats.Goals != 14 || p.Stats.Minutes != 1810 {
		t.Fatalf("unexpected stats: %+v", p.Stats)
	}
}

func TestFetchTeamStats_MapsAggregate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/10/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"team_id":10,"season_id":2025,"matches":22,"wins":16,"draws":4,"losses":2,"goals":"53:19","clean_sheets":11,"yellow_cards":31,"red_cards":1,"shots":280,"shots_on_target":121,"possession_pct":58.4}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	stats, err := client.FetchTeamStats(context.Background(), 10, 2025)
	if err != nil {
		t.Fatalf("FetchTeamStats: %v", err)
	}
	if stats.Goals != "53:19" || stats.CleanSheets != 11 || stats.PossessionPct != 58.4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
