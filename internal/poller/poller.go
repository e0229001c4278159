// Package poller keeps a metric snapshot fresh by reading a counter
// immediately on start and then on every tick of a fixed interval.
package poller

//go:generate mockgen -source=poller.go -destination=mock_poller.go -package=poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sbilibin2017/flagwatch/internal/models"
)

// DefaultInterval is the time between two scheduled reads.
const DefaultInterval = 10 * time.Second

// FailureMessage is the user-facing message of a failed read.
const FailureMessage = "Failed to load"

// ErrAlreadyStarted is returned when Start is called more than once.
var ErrAlreadyStarted = errors.New("poller: already started")

// Counter retrieves the current value of the polled metric.
type Counter interface {
	// Count returns a non-negative count or an error.
	Count(ctx context.Context) (int64, error)
}

// Opt configures a Poller.
type Opt func(*Poller)

// WithInterval sets the poll interval to the first positive duration.
func WithInterval(intervals ...time.Duration) Opt {
	return func(p *Poller) {
		for _, d := range intervals {
			if d > 0 {
				p.interval = d
				return
			}
		}
	}
}

// WithLogger sets the logger used to report failed reads.
func WithLogger(logger *zap.Logger) Opt {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTicker replaces the ticker constructor.
func WithTicker(newTicker TickerFunc) Opt {
	return func(p *Poller) {
		if newTicker != nil {
			p.newTicker = newTicker
		}
	}
}

// WithClock replaces the wall clock used for LastUpdated.
func WithClock(now func() time.Time) Opt {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

// Poller owns a MetricSnapshot and refreshes it from a Counter.
//
// Every read is tagged with a sequence number when it is issued. A result
// is applied only if its number is higher than that of every result applied
// before it, so a slow stale read can never overwrite a newer one. A read
// whose context ends before it resolves is dropped and leaves the snapshot
// as the last applied read set it.
type Poller struct {
	counter   Counter
	interval  time.Duration
	newTicker TickerFunc
	now       func() time.Time
	logger    *zap.Logger

	mu       sync.RWMutex
	snapshot models.MetricSnapshot
	issued   uint64
	applied  uint64
	inFlight int
	settled  models.Status
	idle     *sync.Cond
	started  bool
	stopped  bool
	ticker   Ticker
	stopCh   chan struct{}
	loopDone chan struct{}
}

// New creates an idle poller reading from counter.
func New(counter Counter, opts ...Opt) *Poller {
	p := &Poller{
		counter:   counter,
		interval:  DefaultInterval,
		newTicker: NewTimeTicker,
		now:       time.Now,
		logger:    zap.NewNop(),
		snapshot:  models.MetricSnapshot{Status: models.StatusIdle},
		settled:   models.StatusIdle,
	}
	p.idle = sync.NewCond(&p.mu)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the configured poll interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start issues one read immediately and then one per interval until Stop
// is called or ctx is done. ctx is also the context of every read, so Stop
// leaves reads already in flight running. onFirstLoad, when set, is called
// once before Start returns, before the first read resolves.
func (p *Poller) Start(ctx context.Context, onFirstLoad func()) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.started = true
	p.ticker = p.newTicker(p.interval)
	p.stopCh = make(chan struct{})
	p.loopDone = make(chan struct{})
	ticker, stopCh, loopDone := p.ticker, p.stopCh, p.loopDone
	p.mu.Unlock()

	if onFirstLoad != nil {
		onFirstLoad()
	}

	p.issue(ctx)

	go p.loop(ctx, ticker, stopCh, loopDone)
	return nil
}

func (p *Poller) loop(ctx context.Context, ticker Ticker, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.issue(ctx)
		}
	}
}

// Stop cancels the repeating timer. It is safe to call more than once and
// before Start. Reads already in flight still complete and are applied.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.stopCh)
	loopDone := p.loopDone
	p.mu.Unlock()

	<-loopDone
}

// Wait blocks until no read is in flight. It may be called concurrently
// with Refresh and with reads issued by the timer.
func (p *Poller) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.inFlight > 0 {
		p.idle.Wait()
	}
}

// Run starts the poller, blocks until ctx is done, then stops it and waits
// for reads in flight.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Start(ctx, nil); err != nil {
		return err
	}
	<-ctx.Done()
	p.Stop()
	p.Wait()
	return nil
}

// Refresh performs one read right away, independent of the timer phase,
// and returns the snapshot after its result has been handled.
func (p *Poller) Refresh(ctx context.Context) models.MetricSnapshot {
	seq := p.begin()
	p.resolve(ctx, seq)
	return p.Snapshot()
}

// Snapshot returns a copy of the current snapshot.
func (p *Poller) Snapshot() models.MetricSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot.Clone()
}

// issue starts an asynchronous read.
func (p *Poller) issue(ctx context.Context) {
	seq := p.begin()
	go p.resolve(ctx, seq)
}

// begin marks a new read as in flight and returns its sequence number.
func (p *Poller) begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.issued++
	p.inFlight++
	p.snapshot.Status = models.StatusLoading
	return p.issued
}

// resolve runs read seq and applies its outcome.
func (p *Poller) resolve(ctx context.Context, seq uint64) {
	n, err := p.counter.Count(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.done()

	if err != nil && ctx.Err() != nil {
		p.logger.Debug("dropping read ended by its context",
			zap.Uint64("seq", seq),
			zap.Error(err),
		)
		return
	}
	if seq <= p.applied {
		p.logger.Debug("discarding stale read",
			zap.Uint64("seq", seq),
			zap.Uint64("applied", p.applied),
		)
		return
	}
	p.applied = seq

	if err != nil {
		p.fail(seq, err)
		return
	}

	now := p.now()
	p.snapshot.Value = &n
	p.snapshot.Status = models.StatusReady
	p.snapshot.ErrorMessage = ""
	p.snapshot.LastUpdated = &now
	p.settled = models.StatusReady
}

// done marks one read as resolved. When none is left in flight a dropped
// read no longer leaves the snapshot loading. Must be called with p.mu held.
func (p *Poller) done() {
	p.inFlight--
	if p.inFlight > 0 {
		return
	}
	p.snapshot.Status = p.settled
	p.idle.Broadcast()
}

// fail records a failed read. Must be called with p.mu held.
func (p *Poller) fail(seq uint64, err error) {
	p.snapshot.Status = models.StatusFailed
	p.snapshot.ErrorMessage = FailureMessage
	if p.snapshot.Value == nil {
		zero := int64(0)
		p.snapshot.Value = &zero
	}
	p.settled = models.StatusFailed

	p.logger.Warn("read failed", zap.Uint64("seq", seq), zap.Error(err))
}
