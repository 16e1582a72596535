// Package api serves the dashboards over HTTP.
package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"smart-dashboard-backend/internal/metrics"
	"smart-dashboard-backend/internal/notification"
	"smart-dashboard-backend/internal/sample"
	"smart-dashboard-backend/internal/session"
	"smart-dashboard-backend/internal/store"
)

// Notifier queues device change notices. notification.WorkerPool implements it.
type Notifier interface {
	Dispatch(n notification.Notice) bool
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	sessions *session.Registry
	store    store.Store
	notifier Notifier
	webpush  *webpush.Options
	metrics  *metrics.Metrics
	log      *zap.Logger

	knownDevices map[string]bool
	now          func() time.Time
}

// NewHandler creates a new API handler. notifier may be nil when push
// notifications are disabled.
func NewHandler(sessions *session.Registry, s store.Store, notifier Notifier, webpushOptions *webpush.Options, m *metrics.Metrics, log *zap.Logger) *Handler {
	known := make(map[string]bool)
	for _, d := range sample.NewHome().Devices {
		known[d.ID] = true
	}
	return &Handler{
		sessions:     sessions,
		store:        s,
		notifier:     notifier,
		webpush:      webpushOptions,
		metrics:      m,
		log:          log,
		knownDevices: known,
		now:          func() time.Time { return time.Now().UTC() },
	}
}
