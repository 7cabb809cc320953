package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/esports-hub-service/internal/logging"
)

// logWithEndpoint logs through the request logger when present and always tags the endpoint.
func logWithEndpoint(ctx context.Context, logger *slog.Logger, level slog.Level, endpoint string, msg string, args ...any) {
	args = append(args, slog.String(logging.FieldEndpoint, endpoint))
	logging.Log(ctx, logger, level, msg, args...)
}
