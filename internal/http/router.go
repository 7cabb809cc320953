package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/esports-hub-service/internal/http/handlers"
	"github.com/preston-bernstein/esports-hub-service/internal/http/middleware"
	"github.com/preston-bernstein/esports-hub-service/internal/http/requestutil"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
)

const corsMaxAge = 300

// Routes groups the handlers mounted by NewRouter. Admin and Live are optional.
type Routes struct {
	API   *handlers.Handler
	Admin *handlers.AdminHandler
	Live  nethttp.Handler
}

// Options configures the middleware stack.
type Options struct {
	Logger         *slog.Logger
	Recorder       *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers HTTP routes on a chi router wrapped in recovery, CORS, and request logging.
func NewRouter(routes Routes, opts Options) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(opts.Logger, opts.Recorder, next)
	})
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(corsOptions(opts.AllowedOrigins)))

	api := routes.API
	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	r.Get("/health", api.Health)
	r.Get("/ready", api.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/leagues", api.Leagues)
		r.Get("/schedule", api.Schedule)
		r.Get("/live", api.Live)
		r.Get("/standings", api.Standings)
		r.Get("/matches", api.Matches)
		r.Get("/matches/{id}", api.MatchDetail)
		r.Get("/events", api.Events)
		r.Get("/events/{leagueId}", api.EventDetail)
		r.Get("/sidebar", api.Sidebar)
		r.Get("/teams/{slug}", api.Team)
	})

	if routes.Live != nil {
		r.Method(nethttp.MethodGet, "/ws/live", routes.Live)
	}
	if routes.Admin != nil {
		r.Post("/admin/cache/purge", routes.Admin.PurgeCache)
	}
	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestutil.HeaderRequestID},
		ExposedHeaders: []string{requestutil.HeaderRequestID},
		MaxAge:         corsMaxAge,
	}
}
