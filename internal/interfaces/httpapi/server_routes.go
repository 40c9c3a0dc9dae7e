package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/league-table", handler.GetLeagueTable)
	mux.HandleFunc("GET /v1/team-stats", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
}

func registerSyncRoutes(mux *http.ServeMux, handler *Handler, syncToken string) {
	mux.Handle("POST /v1/sync/league-table", RequireSyncToken(syncToken, http.HandlerFunc(handler.TriggerLeagueTableSync)))
	mux.Handle("POST /v1/sync/matches", RequireSyncToken(syncToken, http.HandlerFunc(handler.TriggerMatchesSync)))
	mux.Handle("POST /v1/sync/players", RequireSyncToken(syncToken, http.HandlerFunc(handler.TriggerPlayersSync)))
	mux.Handle("POST /v1/sync/team-stats", RequireSyncToken(syncToken, http.HandlerFunc(handler.TriggerTeamStatsSync)))
	mux.Handle("POST /v1/sync/all", RequireSyncToken(syncToken, http.HandlerFunc(handler.TriggerSyncAll)))

	mux.Handle("GET /v1/sync/{entityType}", RequireSyncToken(syncToken, http.HandlerFunc(handler.GetSyncStatus)))
}
