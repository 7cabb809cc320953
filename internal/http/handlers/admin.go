package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/http/requestutil"
	"github.com/preston-bernstein/esports-hub-service/internal/logging"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
)

// AdminHandler exposes admin-only endpoints (e.g., response cache purge).
type AdminHandler struct {
	purger providers.Purger
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. purger may be nil when no cache is configured.
func NewAdminHandler(purger providers.Purger, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		purger: purger,
		token:  token,
		logger: logger,
	}
}

// PurgeCache drops every cached upstream response so the next request revalidates.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.purger == nil {
		writeError(w, r, http.StatusServiceUnavailable, "cache not configured", logger)
		return
	}

	start := time.Now()
	if err := h.purger.Purge(r.Context()); err != nil {
		logging.Error(logger, "admin cache purge failed", err)
		writeError(w, r, http.StatusInternalServerError, "failed to purge cache", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	logging.Info(logger, "admin cache purged",
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	token, ok := requestutil.BearerToken(r)
	return ok && requestutil.TokenMatches(token, h.token)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}
