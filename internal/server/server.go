package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/esports-hub-service/internal/app/hub"
	"github.com/preston-bernstein/esports-hub-service/internal/app/teams"
	"github.com/preston-bernstein/esports-hub-service/internal/config"
	httpserver "github.com/preston-bernstein/esports-hub-service/internal/http"
	"github.com/preston-bernstein/esports-hub-service/internal/http/handlers"
	"github.com/preston-bernstein/esports-hub-service/internal/live"
	"github.com/preston-bernstein/esports-hub-service/internal/logging"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
	"github.com/preston-bernstein/esports-hub-service/internal/scheduler"
	"github.com/preston-bernstein/esports-hub-service/internal/store"
	"github.com/preston-bernstein/esports-hub-service/internal/transform"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	sources       sourceStack
	store         *store.MemoryStore
	hubService    *hub.Service
	teamsService  *teams.Service
	broadcaster   *live.Hub
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	scheduler     Scheduler
	metricsStop   func(context.Context) error

	// connCtx bounds websocket connections; it is cancelled during shutdown.
	connCtx    context.Context
	cancelConn context.CancelFunc
}

// New constructs a server with the configured provider, cache, poller, and scheduler.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

// newServerWithSource wraps a caller-supplied base source; used by tests to avoid the network.
func newServerWithSource(cfg config.Config, logger *slog.Logger, source providers.Source) *Server {
	return newServerWithMetrics(cfg, logger, source, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, source providers.Source, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	var sources sourceStack
	if source == nil {
		sources = factory.build(cfg)
	} else {
		sources = factory.wrap(cfg, source)
	}

	loc := cfg.Location()
	palette := transform.NewPalette()
	memoryStore := store.NewMemoryStore()
	hubSvc := hub.NewService(sources.source, palette,
		hub.WithLiveReader(memoryStore),
		hub.WithLocation(loc),
		hub.WithLogger(logger),
	)
	teamSvc := teams.NewService(sources.source, palette)

	broadcaster := live.NewHub(memoryStore, cfg.WSSendBuffer, logger, recorder)
	plr := live.NewPoller(sources.source, memoryStore, broadcaster, palette, logger, recorder, cfg.LivePollInterval)

	var sched Scheduler
	if s, err := scheduler.New(sources.source, logger, recorder, cfg.CatalogRefreshInterval, loc); err != nil {
		logging.Warn(logger, "scheduler setup failed, catalog warm disabled", "err", err)
	} else {
		sched = s
	}

	connCtx, cancelConn := context.WithCancel(context.Background())
	srv := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		sources:       sources,
		store:         memoryStore,
		hubService:    hubSvc,
		teamsService:  teamSvc,
		broadcaster:   broadcaster,
		metricsServer: metricsSrv,
		poller:        plr,
		scheduler:     sched,
		metricsStop:   metricsShutdown,
		connCtx:       connCtx,
		cancelConn:    cancelConn,
	}
	srv.httpServer = srv.buildHTTPServer()
	return srv
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller, sched Scheduler) *Server {
	connCtx, cancelConn := context.WithCancel(context.Background())
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
		scheduler:  sched,
		connCtx:    connCtx,
		cancelConn: cancelConn,
	}
}

func (s *Server) buildHTTPServer() httpServer {
	var statusFn func() live.Status
	if s.poller != nil {
		statusFn = s.poller.Status
	}

	logger := s.logger
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	routes := httpserver.Routes{
		API:  handlers.NewHandler(s.hubService, s.teamsService, s.logger, statusFn),
		Live: handlers.NewLiveSocket(s.connCtx, s.broadcaster, s.cfg.CORSAllowedOrigins, s.logger),
	}
	// Admin endpoints are mounted only when a token is configured.
	if s.cfg.AdminToken != "" && s.sources.purger != nil {
		routes.Admin = handlers.NewAdminHandler(s.sources.purger, s.cfg.AdminToken, s.logger)
	}
	router := httpserver.NewRouter(routes, httpserver.Options{
		Logger:         logger,
		Recorder:       s.metrics,
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller, scheduler, and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	if s.broadcaster != nil {
		go s.broadcaster.Run(s.connCtx)
	}
	s.startServer(stop)
	s.poller.Start(ctx)
	if s.scheduler != nil {
		if err := s.scheduler.Start(ctx); err != nil && s.logger != nil {
			s.logger.Warn("scheduler failed to start", "error", err)
		}
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.scheduler != nil {
		if err := s.scheduler.Stop(); err != nil && s.logger != nil {
			s.logger.Warn("failed to stop scheduler", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	// Hijacked websocket connections are not tracked by http.Server.Shutdown.
	if s.cancelConn != nil {
		s.cancelConn()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Stop the rate limiter ticker and release the cache connection pool.
	s.sources.close()

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
