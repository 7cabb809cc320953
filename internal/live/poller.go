package live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/esports-hub-service/internal/domain/matches"
	"github.com/preston-bernstein/esports-hub-service/internal/logging"
	"github.com/preston-bernstein/esports-hub-service/internal/metrics"
	"github.com/preston-bernstein/esports-hub-service/internal/providers"
	"github.com/preston-bernstein/esports-hub-service/internal/store"
	"github.com/preston-bernstein/esports-hub-service/internal/transform"
)

const (
	defaultInterval = 30 * time.Second
	// readyFailureThreshold is the number of consecutive failures after which the poller reports not ready.
	readyFailureThreshold = 3
)

// Sink stores the latest live snapshot.
type Sink interface {
	SetLive(live []matches.Match, at time.Time)
}

// Publisher pushes a fresh snapshot to subscribers.
type Publisher interface {
	Publish(snap store.LiveSnapshot)
}

// Poller fetches live matches on an interval, stores them, and publishes each refresh.
type Poller struct {
	source    providers.Source
	sink      Sink
	publisher Publisher
	palette   *transform.Palette
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureThreshold
}

// NewPoller constructs a Poller with sane defaults. publisher may be nil.
func NewPoller(source providers.Source, sink Sink, publisher Publisher, palette *transform.Palette, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if palette == nil {
		palette = transform.NewPalette()
	}
	return &Poller{
		source:    source,
		sink:      sink,
		publisher: publisher,
		palette:   palette,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "live poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Warm the snapshot on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "live poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "live poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) fetchOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)
	raw, err := p.source.Live(ctx)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "live poll failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		p.recordFailure(err, start)
		return
	}

	at := p.now()
	live := transform.ScheduleEvents(raw.Data.Schedule.Events, at, p.palette)
	if p.sink != nil {
		p.sink.SetLive(live, at)
	}
	if p.publisher != nil {
		p.publisher.Publish(store.LiveSnapshot{Matches: live, UpdatedAt: at})
	}
	p.recordSuccess(start)
	logging.Info(p.logger, "live poll refreshed matches",
		logging.FieldCount, len(live),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
