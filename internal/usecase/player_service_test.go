package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kaisarfc/club-backend/internal/domain/player"
	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	"github.com/kaisarfc/club-backend/internal/infrastructure/repository/memory"
	"github.com/kaisarfc/club-backend/internal/platform/logging"
)

func TestPlayerService_ListPlayers_SortedByJerseyNumber(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := memory.NewPlayerRepository()
	runRepo := memory.NewSyncRunRepository()

	seed := []player.Player{
		{ExternalID: 2, TeamID: 10, UpstreamFields: player.UpstreamFields{Name: "Bima Al Farizi", JerseyNumber: 5}},
		{ExternalID: 1, TeamID: 10, UpstreamFields: player.UpstreamFields{Name: "Rizky Putra", JerseyNumber: 19}},
		{ExternalID: 3, TeamID: 44, UpstreamFields: player.UpstreamFields{Name: "Other Team", JerseyNumber: 1}},
	}
	for _, p := range seed {
		if err := playerRepo.Create(ctx, p); err != nil {
			t.Fatalf("seed player: %v", err)
		}
	}

	finishedAt := time.Date(2025, 8, 30, 6, 0, 0, 0, time.UTC)
	if err := runRepo.Record(ctx, syncrun.Run{
		EntityType: syncrun.EntityPlayers,
		State:      syncrun.StateDone,
		Success:    true,
		FinishedAt: &finishedAt,
	}); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	svc := NewPlayerService(playerRepo, runRepo, 10, 2025, logging.NewNop())

	view, err := svc.ListPlayers(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if view.TeamID != 10 || view.SeasonID != 2025 {
		t.Fatalf("defaults must apply: %+v", view)
	}
	if len(view.Players) != 2 {
		t.Fatalf("only the requested team's players belong in the squad, got %d", len(view.Players))
	}
	if view.Players[0].JerseyNumber != 5 || view.Players[1].JerseyNumber != 19 {
		t.Fatalf("players must be sorted by jersey number: %+v", view.Players)
	}
	if view.LastSyncAt == nil || !view.LastSyncAt.Equal(finishedAt) {
		t.Fatalf("last sync must come from the recorded run: %v", view.LastSyncAt)
	}
}

func TestPlayerService_GetPlayer_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewPlayerService(memory.NewPlayerRepository(), memory.NewSyncRunRepository(), 10, 2025, logging.NewNop())

	if _, err := svc.GetPlayer(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
