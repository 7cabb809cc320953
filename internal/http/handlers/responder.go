package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/esports-hub-service/internal/app"
	"github.com/preston-bernstein/esports-hub-service/internal/http/middleware"
	"github.com/preston-bernstein/esports-hub-service/internal/http/requestutil"
	"github.com/preston-bernstein/esports-hub-service/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps app and upstream errors onto a response. Anything that is not a
// caller mistake is reported as an upstream failure for the named resource.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, resource string, logger *slog.Logger) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "invalid "+resource+" request", logger)
	case errors.Is(err, app.ErrNotFound):
		writeError(w, r, http.StatusNotFound, resource+" not found", logger)
	default:
		logging.Warn(logger, "upstream fetch failed", slog.String("resource", resource), slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "Failed to fetch "+resource, logger)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
