package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/kaisarfc/club-backend/internal/domain/syncrun"
	"github.com/kaisarfc/club-backend/internal/usecase"
)

type syncTriggerRequest struct {
	SeasonID    int64 `json:"season_id" validate:"gte=0"`
	TeamID      int64 `json:"team_id" validate:"gte=0"`
	MatchID     int64 `json:"match_id" validate:"gte=0"`
	SyncDetails bool  `json:"sync_details"`
	Force       bool  `json:"force"`
}

type syncRunDTO struct {
	EntityType     string     `json:"entity_type"`
	SeasonID       int64      `json:"season_id,omitempty"`
	TeamID         int64      `json:"team_id,omitempty"`
	State          string     `json:"state"`
	Success        bool       `json:"success"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	LastSuccessAt  *time.Time `json:"last_success_at,omitempty"`
	ItemsProcessed int        `json:"items_processed"`
	ItemsCreated   int        `json:"items_created"`
	ItemsUpdated   int        `json:"items_updated"`
	ItemsFailed    int        `json:"items_failed"`
	Error          string     `json:"error,omitempty"`
}

type syncAllDTO struct {
	Success bool         `json:"success"`
	Runs    []syncRunDTO `json:"runs"`
	Skipped []string     `json:"skipped,omitempty"`
}

var entityTypeBySlug = map[string]syncrun.EntityType{
	"league-table": syncrun.EntityLeagueTable,
	"matches":      syncrun.EntityMatches,
	"players":      syncrun.EntityPlayers,
	"team-stats":   syncrun.EntityTeamStats,
}

func (h *Handler) TriggerLeagueTableSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerLeagueTableSync")
	defer span.End()

	h.triggerSync(ctx, w, r, h.syncService.SyncLeagueTable)
}

func (h *Handler) TriggerMatchesSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerMatchesSync")
	defer span.End()

	h.triggerSync(ctx, w, r, h.syncService.SyncMatches)
}

func (h *Handler) TriggerPlayersSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerPlayersSync")
	defer span.End()

	h.triggerSync(ctx, w, r, h.syncService.SyncPlayers)
}

func (h *Handler) TriggerTeamStatsSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerTeamStatsSync")
	defer span.End()

	h.triggerSync(ctx, w, r, h.syncService.SyncTeamStats)
}

func (h *Handler) TriggerSyncAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerSyncAll")
	defer span.End()

	input, err := h.decodeSyncInput(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.syncService.SyncAll(ctx, input)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync all failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := syncAllDTO{
		Success: result.AllSucceeded(),
		Runs:    make([]syncRunDTO, 0, len(result.Runs)),
	}
	for _, run := range result.Runs {
		dto.Runs = append(dto.Runs, runToDTO(run))
	}
	for _, entityType := range result.Skipped {
		dto.Skipped = append(dto.Skipped, string(entityType))
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) GetSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSyncStatus")
	defer span.End()

	slug := r.PathValue("entityType")
	entityType, ok := entityTypeBySlug[slug]
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown sync entity %q", usecase.ErrInvalidInput, slug))
		return
	}

	run, err := h.syncService.Status(ctx, entityType)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, runToDTO(run))
}

// triggerSync runs one entity sync and answers 200 with the run summary even
// when individual records failed; only a run-level failure maps to an error
// status.
func (h *Handler) triggerSync(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	run func(ctx context.Context, input usecase.SyncInput) (syncrun.Run, error),
) {
	input, err := h.decodeSyncInput(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := run(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "sync trigger failed",
			"entity_type", string(result.EntityType),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, runToDTO(result))
}

func (h *Handler) decodeSyncInput(r *http.Request) (usecase.SyncInput, error) {
	var req syncTriggerRequest

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return usecase.SyncInput{}, fmt.Errorf("%w: read request body", usecase.ErrInvalidInput)
	}
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &req); err != nil {
			return usecase.SyncInput{}, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return usecase.SyncInput{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return usecase.SyncInput{
		SeasonID:    req.SeasonID,
		TeamID:      req.TeamID,
		MatchID:     req.MatchID,
		SyncDetails: req.SyncDetails,
		Force:       req.Force,
	}, nil
}

func runToDTO(run syncrun.Run) syncRunDTO {
	return syncRunDTO{
		EntityType:     string(run.EntityType),
		SeasonID:       run.SeasonID,
		TeamID:         run.TeamID,
		State:          string(run.State),
		Success:        run.Success,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		LastSuccessAt:  run.LastSuccess(),
		ItemsProcessed: run.ItemsProcessed,
		ItemsCreated:   run.ItemsCreated,
		ItemsUpdated:   run.ItemsUpdated,
		ItemsFailed:    run.ItemsFailed,
		Error:          run.ErrorDetail,
	}
}
