package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/kaisarfc/club-backend/internal/usecase"
)

type Handler struct {
	standingService  *usecase.StandingService
	playerService    *usecase.PlayerService
	teamStatsService *usecase.TeamStatsService
	syncService      *usecase.SyncService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	standingService *usecase.StandingService,
	playerService *usecase.PlayerService,
	teamStatsService *usecase.TeamStatsService,
	syncService *usecase.SyncService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		standingService:  standingService,
		playerService:    playerService,
		teamStatsService: teamStatsService,
		syncService:      syncService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTable")
	defer span.End()

	seasonID, err := queryInt64(r, "season_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	view, err := h.standingService.GetLeagueTable(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league table failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID, err := queryInt64(r, "team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonID, err := queryInt64(r, "season_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	view, err := h.teamStatsService.GetTeamStats(ctx, teamID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "team_id", teamID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID, err := queryInt64(r, "team_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonID, err := queryInt64(r, "season_id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	view, err := h.playerService.ListPlayers(ctx, teamID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, _ := strconv.ParseInt(r.PathValue("playerID"), 10, 64)
	item, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, item)
}

// queryInt64 parses an optional numeric query parameter. Absent means zero so
// the service default applies; a present but malformed value is a client error.
func queryInt64(r *http.Request, key string) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}
