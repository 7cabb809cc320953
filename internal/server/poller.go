package server

import (
	"context"

	"github.com/preston-bernstein/esports-hub-service/internal/live"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() live.Status
}

// Scheduler runs background jobs alongside the poller.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop() error
}
