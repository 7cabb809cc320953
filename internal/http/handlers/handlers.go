package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/esports-hub-service/internal/app/hub"
	"github.com/preston-bernstein/esports-hub-service/internal/app/teams"
	"github.com/preston-bernstein/esports-hub-service/internal/live"
	"github.com/preston-bernstein/esports-hub-service/internal/timeutil"
)

const liveCacheControl = "public, s-maxage=30, stale-while-revalidate=60"

// Handler wires HTTP routes to the view services.
type Handler struct {
	hub      *hub.Service
	teams    *teams.Service
	logger   *slog.Logger
	statusFn func() live.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the service is always ready.
func NewHandler(hubSvc *hub.Service, teamSvc *teams.Service, logger *slog.Logger, statusFn func() live.Status) *Handler {
	return &Handler{
		hub:      hubSvc,
		teams:    teamSvc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Leagues lists leagues by priority, optionally fuzzy-filtered by ?q=.
func (h *Handler) Leagues(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	view, err := h.hub.Leagues(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		writeServiceError(w, r, err, "leagues", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, logger)
}

// Schedule returns one schedule page split into upcoming, completed, and live.
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	q := r.URL.Query()
	view, err := h.hub.Schedule(r.Context(), splitList(q["leagueId"]), strings.TrimSpace(q.Get("pageToken")))
	if err != nil {
		writeServiceError(w, r, err, "schedule", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, logger)
}

// Live returns the matches currently in progress.
func (h *Handler) Live(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	view, err := h.hub.Live(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "live matches", logger)
		return
	}
	w.Header().Set("Cache-Control", liveCacheControl)
	writeJSON(w, nethttp.StatusOK, view, logger)
}

// Standings returns the ranking tables for ?tournamentId=a,b.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	ids := splitList(r.URL.Query()["tournamentId"])
	if len(ids) == 0 {
		writeError(w, r, nethttp.StatusBadRequest, "tournamentId query parameter is required", logger)
		return
	}
	view, err := h.hub.Standings(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err, "standings", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, logger)
}

// Matches returns date-grouped matches for the schedule or results tab.
func (h *Handler) Matches(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	q := r.URL.Query()
	view, err := h.hub.Matches(r.Context(), hub.ParseTab(q.Get("tab")), timeutil.ResolveTimezone(q.Get("tz")))
	if err != nil {
		writeServiceError(w, r, err, "matches", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, logger)
}

// MatchDetail returns a single match with games, head-to-head, and recent form.
func (h *Handler) MatchDetail(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", logger)
		return
	}
	view, err := h.hub.MatchDetail(r.Context(), id, timeutil.ResolveTimezone(r.URL.Query().Get("tz")))
	if err != nil {
		writeServiceError(w, r, err, "match", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, logger)
}

// Events returns tournament cards, optionally filtered by ?region=.
func (h *Handler) Events(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	view, err := h.hub.Events(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		writeServiceError(w, r, err, "events", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, logger)
}

// EventDetail returns a league's current tournament with its upcoming matches.
func (h *Handler) EventDetail(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	leagueID := strings.TrimSpace(chi.URLParam(r, "leagueId"))
	if leagueID == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid league id", logger)
		return
	}
	view, err := h.hub.EventDetail(r.Context(), leagueID)
	if err != nil {
		writeServiceError(w, r, err, "event", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, logger)
}

// Sidebar returns the live, upcoming, and completed rails plus league event summaries.
func (h *Handler) Sidebar(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	view, err := h.hub.Sidebar(r.Context(), timeutil.ResolveTimezone(r.URL.Query().Get("tz")))
	if err != nil {
		writeServiceError(w, r, err, "sidebar", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view, logger)
}

// Team returns a team roster by slug.
func (h *Handler) Team(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.teams == nil {
		writeError(w, r, nethttp.StatusNotFound, "team not found", logger)
		return
	}
	team, err := h.teams.TeamBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, r, err, "team", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, team, logger)
}

// NotFound answers unknown routes with the JSON error envelope.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", loggerFromContext(r, h.logger))
}

// MethodNotAllowed answers known routes requested with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", loggerFromContext(r, h.logger))
}

// splitList accepts both repeated parameters and comma-separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
