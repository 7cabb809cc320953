// Package scheduler runs background jobs that keep the response cache warm.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/esports-hub-service/internal/logging"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
)

const (
	// JobCatalogWarm names the leagues and tournaments refresh.
	JobCatalogWarm = "catalog_warm"

	defaultInterval   = time.Hour
	defaultJobTimeout = 30 * time.Second
	warmConcurrency   = 4
)

// Scheduler refreshes slow-moving catalog data (leagues, their tournaments, the first schedule
// page) on an interval so page views hit a warm cache.
type Scheduler struct {
	s        gocron.Scheduler
	source   providers.Source
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// New constructs a Scheduler in loc. A nil loc uses UTC.
func New(source providers.Source, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, loc *time.Location) (*Scheduler, error) {
	if interval <= 0 {
		interval = defaultInterval
	}
	if loc == nil {
		loc = time.UTC
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{
		s:        s,
		source:   source,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		timeout:  defaultJobTimeout,
	}, nil
}

// Start registers the jobs and starts the scheduler. The catalog job runs once immediately.
// Jobs stop receiving work when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	_, err := s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.runCatalogWarm),
		gocron.WithName(JobCatalogWarm),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		s.cancel()
		return fmt.Errorf("failed to create catalog warm job: %w", err)
	}

	s.s.Start()
	logging.Info(s.logger, "scheduler started",
		logging.FieldJob, JobCatalogWarm,
		logging.FieldDurationMS, s.interval.Milliseconds(),
	)
	return nil
}

// Stop cancels running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return s.s.Shutdown()
}

func (s *Scheduler) runCatalogWarm() {
	parent := s.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()

	start := time.Now()
	count, err := s.WarmCatalog(ctx)
	s.metrics.RecordJobRun(JobCatalogWarm, time.Since(start), err)
	if err != nil {
		logging.Error(s.logger, "catalog warm failed", err,
			logging.FieldJob, JobCatalogWarm,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		return
	}
	logging.Info(s.logger, "catalog warmed",
		logging.FieldJob, JobCatalogWarm,
		logging.FieldCount, count,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

// WarmCatalog fetches leagues, then every league's tournaments and the default schedule page.
// Calls bypass fresh cache entries so each run replaces them before they lapse. It returns the
// number of leagues refreshed. Per-league failures are joined; one bad league does not stop the
// rest.
func (s *Scheduler) WarmCatalog(ctx context.Context) (int, error) {
	ctx = providers.WithRefresh(ctx)
	leagues, err := s.source.Leagues(ctx)
	if err != nil {
		return 0, fmt.Errorf("warm leagues: %w", err)
	}

	ids := make([]string, 0, len(leagues.Data.Leagues))
	for _, l := range leagues.Data.Leagues {
		if l.ID != "" {
			ids = append(ids, l.ID)
		}
	}

	errs := make([]error, len(ids)+1)
	var g errgroup.Group
	g.SetLimit(warmConcurrency)
	g.Go(func() error {
		if _, err := s.source.Schedule(ctx, nil, ""); err != nil {
			errs[len(ids)] = fmt.Errorf("warm schedule: %w", err)
		}
		return nil
	})
	for i, id := range ids {
		g.Go(func() error {
			if _, err := s.source.Tournaments(ctx, id); err != nil {
				errs[i] = fmt.Errorf("warm tournaments for %s: %w", id, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return len(ids), errors.Join(errs...)
}
