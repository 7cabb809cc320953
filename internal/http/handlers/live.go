package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/esports-hub-service/internal/live"
	"github.com/preston-bernstein/esports-hub-service/internal/logging"
)

// LiveSocket upgrades requests to websocket connections fed by the live hub.
type LiveSocket struct {
	ctx      context.Context
	hub      *live.Hub
	upgrader *websocket.Upgrader
	logger   *slog.Logger
}

// NewLiveSocket builds the websocket endpoint. ctx bounds the lifetime of every connection,
// so pass the server context rather than a request context.
func NewLiveSocket(ctx context.Context, hub *live.Hub, allowedOrigins []string, logger *slog.Logger) *LiveSocket {
	if ctx == nil {
		ctx = context.Background()
	}
	return &LiveSocket{
		ctx:      ctx,
		hub:      hub,
		upgrader: live.NewUpgrader(allowedOrigins),
		logger:   logger,
	}
}

func (s *LiveSocket) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, s.logger)
	if s.hub == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "live updates unavailable", logger)
		return
	}
	if err := s.ctx.Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", logger)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logging.Warn(logger, "websocket upgrade failed", slog.Any("err", err))
		return
	}
	client := s.hub.Serve(s.ctx, conn)
	logging.Info(logger, "websocket client connected", logging.FieldClientID, client.ID)
}
