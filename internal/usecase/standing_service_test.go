package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/kaisarfc/club-backend/internal/domain/media"
	"github.com/kaisarfc/club-backend/internal/domain/standing"
	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	"github.com/kaisarfc/club-backend/internal/infrastructure/repository/memory"
	"github.com/kaisarfc/club-backend/internal/platform/logging"
)

func TestStandingService_GetLeagueTable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	standingRepo := memory.NewStandingRepository()
	mediaRepo := memory.NewMediaRepository([]media.TeamAsset{{TeamID: 10, Filename: "kaisar.png"}})
	runRepo := memory.NewSyncRunRepository()

	seed := []standing.Row{
		{SeasonID: 2025, TeamID: 22, TeamName: "Rivals United", Position: 2, TeamLogoURL: "https://cdn.provider.example/22.png"},
		{SeasonID: 2025, TeamID: 10, TeamName: "Kaisar FC", Position: 1, IsKaisar: true, TeamLogoURL: "https://cdn.provider.example/10.png"},
	}
	for _, row := range seed {
		if err := standingRepo.Create(ctx, row); err != nil {
			t.Fatalf("seed standings: %v", err)
		}
	}

	finishedAt := time.Date(2025, 8, 30, 9, 0, 0, 0, time.UTC)
	if err := runRepo.Record(ctx, syncrun.Run{
		EntityType: syncrun.EntityLeagueTable,
		State:      syncrun.StateDone,
		Success:    true,
		FinishedAt: &finishedAt,
	}); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	svc := NewStandingService(standingRepo, mediaRepo, runRepo, 2025, logging.NewNop())

	view, err := svc.GetLeagueTable(ctx, 0)
	if err != nil {
		t.Fatalf("get league table: %v", err)
	}
	if view.SeasonID != 2025 {
		t.Fatalf("default season must apply, got %d", view.SeasonID)
	}
	if len(view.Rows) != 2 || view.Rows[0].Position != 1 {
		t.Fatalf("rows must be ordered by position: %+v", view.Rows)
	}
	if view.Rows[0].TeamLogoURL != "/media/teams/kaisar.png" {
		t.Fatalf("local logo must override the provider url, got %q", view.Rows[0].TeamLogoURL)
	}
	if view.Rows[1].TeamLogoURL != "https://cdn.provider.example/22.png" {
		t.Fatalf("teams without local asset keep the provider url, got %q", view.Rows[1].TeamLogoURL)
	}
	if view.LastSyncAt == nil || !view.LastSyncAt.Equal(finishedAt) {
		t.Fatalf("last sync must come from the recorded run: %v", view.LastSyncAt)
	}
}

func TestStandingService_GetLeagueTable_FailedRunKeepsLastSuccessfulSync(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runRepo := memory.NewSyncRunRepository()

	lastSuccess := time.Date(2025, 8, 30, 9, 0, 0, 0, time.UTC)
	finishedAt := lastSuccess.Add(time.Hour)
	if err := runRepo.Record(ctx, syncrun.Run{
		EntityType:    syncrun.EntityLeagueTable,
		State:         syncrun.StateFailed,
		Success:       false,
		FinishedAt:    &finishedAt,
		ErrorDetail:   "provider is temporarily unavailable",
		LastSuccessAt: &lastSuccess,
	}); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	svc := NewStandingService(
		memory.NewStandingRepository(),
		memory.NewMediaRepository(nil),
		runRepo,
		2025,
		logging.NewNop(),
	)

	view, err := svc.GetLeagueTable(ctx, 2025)
	if err != nil {
		t.Fatalf("get league table: %v", err)
	}
	if view.LastSyncAt == nil || !view.LastSyncAt.Equal(lastSuccess) {
		t.Fatalf("failed run must fall back to the last successful sync, got %v", view.LastSyncAt)
	}
}

func TestStandingService_GetLeagueTable_NoRunMeansNoLastSync(t *testing.T) {
	t.Parallel()

	svc := NewStandingService(
		memory.NewStandingRepository(),
		memory.NewMediaRepository(nil),
		memory.NewSyncRunRepository(),
		2025,
		logging.NewNop(),
	)

	view, err := svc.GetLeagueTable(context.Background(), 2025)
	if err != nil {
		t.Fatalf("get league table: %v", err)
	}
	if len(view.Rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(view.Rows))
	}
	if view.LastSyncAt != nil {
		t.Fatalf("no recorded run must leave last sync empty")
	}
}
