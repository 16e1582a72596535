// Package clock provides the per-view wall clock that refreshes on a fixed interval.
package clock

import (
	"context"
	"sync"
	"time"
)

// Option configures a Ticker.
type Option func(*Ticker)

// WithNow replaces the time source.
func WithNow(now func() time.Time) Option {
	return func(t *Ticker) { t.now = now }
}

// WithOnTick registers a callback run after every tick with the new timestamp.
func WithOnTick(fn func(time.Time)) Option {
	return func(t *Ticker) { t.onTick = fn }
}

// Ticker holds the current timestamp of a view and refreshes it every interval
// while started.
type Ticker struct {
	interval time.Duration
	loc      *time.Location
	now      func() time.Time
	onTick   func(time.Time)

	mu      sync.RWMutex
	current time.Time
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a stopped Ticker. A nil loc means UTC.
func New(interval time.Duration, loc *time.Location, opts ...Option) *Ticker {
	if loc == nil {
		loc = time.UTC
	}
	t := &Ticker{
		interval: interval,
		loc:      loc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start resets the held timestamp and launches the refresh loop. Calling
// Start on a running Ticker does nothing.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.current = t.now()

	go t.run(ctx, t.done)
}

func (t *Ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			ts := t.now()
			t.mu.Lock()
			t.current = ts
			t.mu.Unlock()
			if t.onTick != nil {
				t.onTick(ts)
			}
			timer.Reset(t.interval)
		}
	}
}

// Stop cancels the refresh loop and waits for it to exit. Stop on a stopped
// Ticker does nothing.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the refresh loop is active.
func (t *Ticker) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cancel != nil
}

// Now returns the held timestamp in the Ticker's location.
func (t *Ticker) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current.In(t.loc)
}
