package testutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/preston-bernstein/esports-hub-service/internal/live"
)

// StubPoller records Start and Stop calls and reports a fixed status.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  live.Status
}

func (p *StubPoller) Start(context.Context) { p.StartCalls++ }

func (p *StubPoller) Stop(context.Context) error {
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() live.Status { return p.StatusVal }

// serverBase supplies Addr, Handler, and the shutdown counter shared by the server doubles.
// Zero values fall back to ":0" and an empty mux.
type serverBase struct {
	AddrVal       string
	HandlerVal    http.Handler
	ShutdownCalls int
}

func (s *serverBase) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *serverBase) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}

// StubHTTPServer returns the configured errors from ListenAndServe and Shutdown.
type StubHTTPServer struct {
	serverBase
	ListenCalls int
	ListenErr   error
	ShutdownErr error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(context.Context) error {
	s.ShutdownCalls++
	return s.ShutdownErr
}

// BlockingHTTPServer holds Shutdown until Unblock is closed or the context expires.
type BlockingHTTPServer struct {
	serverBase
	Unblock chan struct{}
}

func (b *BlockingHTTPServer) ListenAndServe() error { return nil }

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}

// ErrHTTPServer fails ListenAndServe as if the port were taken.
type ErrHTTPServer struct {
	serverBase
}

func (e *ErrHTTPServer) ListenAndServe() error { return errors.New("listen failure") }

func (e *ErrHTTPServer) Shutdown(context.Context) error {
	e.ShutdownCalls++
	return nil
}

// CloseableHTTPServer reports http.ErrServerClosed, the result of a clean shutdown.
type CloseableHTTPServer struct {
	serverBase
}

func (c *CloseableHTTPServer) ListenAndServe() error { return http.ErrServerClosed }

func (c *CloseableHTTPServer) Shutdown(context.Context) error {
	c.ShutdownCalls++
	return nil
}
