// Package session tracks mounted dashboard views. A view is mounted on
// creation and torn down on Delete or after sitting idle, which always stops
// its clock.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"smart-dashboard-backend/internal/city"
	"smart-dashboard-backend/internal/clock"
	"smart-dashboard-backend/internal/home"
	"smart-dashboard-backend/internal/metrics"
	"smart-dashboard-backend/internal/sample"
)

// Kind is the type of dashboard a session shows.
type Kind string

const (
	KindCity Kind = "city"
	KindHome Kind = "home"
)

var ErrNotFound = errors.New("view session not found")

// Options configures a Registry.
type Options struct {
	IdleTTL         time.Duration
	CleanupInterval time.Duration
	TickInterval    time.Duration
	Location        *time.Location
}

type entry struct {
	kind Kind
	city *city.View
	home *home.View
}

func (e *entry) close() {
	switch e.kind {
	case KindCity:
		e.city.Close()
	case KindHome:
		e.home.Close()
	}
}

// Registry owns every mounted view.
type Registry struct {
	ctx     context.Context
	opts    Options
	views   *cache.Cache
	metrics *metrics.Metrics
	log     *zap.Logger
	newID   func() string
}

// NewRegistry creates an empty registry. Clocks of mounted views stop when ctx is done.
func NewRegistry(ctx context.Context, opts Options, m *metrics.Metrics, log *zap.Logger) *Registry {
	r := &Registry{
		ctx:     ctx,
		opts:    opts,
		views:   cache.New(opts.IdleTTL, opts.CleanupInterval),
		metrics: m,
		log:     log,
		newID:   uuid.NewString,
	}
	r.views.OnEvicted(r.onEvicted)
	return r
}

func (r *Registry) newClock() *clock.Ticker {
	return clock.New(r.opts.TickInterval, r.opts.Location, clock.WithOnTick(func(time.Time) {
		r.metrics.ClockTicks.Inc()
	}))
}

// CreateCity mounts a new city view.
func (r *Registry) CreateCity() (string, *city.View) {
	v := city.NewView(sample.NewCity(), r.newClock())
	v.Mount(r.ctx)
	id := r.add(&entry{kind: KindCity, city: v})
	return id, v
}

// CreateHome mounts a new home view.
func (r *Registry) CreateHome() (string, *home.View) {
	v := home.NewView(sample.NewHome(), r.newClock())
	v.Mount(r.ctx)
	id := r.add(&entry{kind: KindHome, home: v})
	return id, v
}

func (r *Registry) add(e *entry) string {
	id := r.newID()
	r.views.Set(id, e, cache.DefaultExpiration)
	r.metrics.ActiveSessions.WithLabelValues(string(e.kind)).Inc()
	r.log.Info("view mounted", zap.String("session", id), zap.String("kind", string(e.kind)))
	return id
}

// lookup returns the entry and pushes its idle deadline forward.
func (r *Registry) lookup(id string, kind Kind) (*entry, error) {
	v, found := r.views.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	e := v.(*entry)
	if e.kind != kind {
		return nil, ErrNotFound
	}
	if err := r.views.Replace(id, e, cache.DefaultExpiration); err != nil {
		// Expired between Get and Replace.
		return nil, ErrNotFound
	}
	return e, nil
}

// City returns a mounted city view.
func (r *Registry) City(id string) (*city.View, error) {
	e, err := r.lookup(id, KindCity)
	if err != nil {
		return nil, err
	}
	return e.city, nil
}

// Home returns a mounted home view.
func (r *Registry) Home(id string) (*home.View, error) {
	e, err := r.lookup(id, KindHome)
	if err != nil {
		return nil, err
	}
	return e.home, nil
}

// Delete unmounts a view of the given kind.
func (r *Registry) Delete(id string, kind Kind) error {
	if _, err := r.lookup(id, kind); err != nil {
		return err
	}
	r.views.Delete(id)
	return nil
}

// Len returns the number of mounted views, including expired ones not yet swept.
func (r *Registry) Len() int {
	return r.views.ItemCount()
}

// Close unmounts every view.
func (r *Registry) Close() {
	r.views.DeleteExpired()
	for id := range r.views.Items() {
		r.views.Delete(id)
	}
}

func (r *Registry) onEvicted(id string, v interface{}) {
	e := v.(*entry)
	e.close()
	r.metrics.ActiveSessions.WithLabelValues(string(e.kind)).Dec()
	r.log.Info("view unmounted", zap.String("session", id), zap.String("kind", string(e.kind)))
}
