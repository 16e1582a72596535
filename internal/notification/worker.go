package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"smart-dashboard-backend/internal/metrics"
	"smart-dashboard-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Subscriptions is the part of the store the workers need.
type Subscriptions interface {
	SubscriptionsForDevice(ctx context.Context, deviceID string) ([]model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// Notice announces a device status change.
type Notice struct {
	DeviceID   string             `json:"deviceId"`
	DeviceName string             `json:"deviceName"`
	Status     model.DeviceStatus `json:"status"`
}

// errGone marks a subscription the push service no longer accepts.
var errGone = errors.New("subscription gone")

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size       int
	jobs       chan Notice
	store      Subscriptions
	webpush    *webpush.Options
	sender     NotificationSender
	maxRetries int
	newBackOff func() backoff.BackOff
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s Subscriptions, webpushOptions *webpush.Options, maxRetries int, m *metrics.Metrics, log *zap.Logger) *WorkerPool {
	return &WorkerPool{
		size:       size,
		jobs:       make(chan Notice, size*16),
		store:      s,
		webpush:    webpushOptions,
		sender:     &WebPushSender{},
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		metrics:    m,
		log:        log,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log := wp.log.With(zap.Int("worker", id))
	log.Debug("notification worker started")
	for {
		select {
		case n := <-wp.jobs:
			wp.notifySubscribers(ctx, n)
		case <-ctx.Done():
			log.Debug("notification worker shutting down")
			return
		}
	}
}

// Dispatch queues a notice. It never blocks; when the queue is full the
// notice is dropped and false is returned.
func (wp *WorkerPool) Dispatch(n Notice) bool {
	select {
	case wp.jobs <- n:
		return true
	default:
		wp.log.Warn("notification queue full, dropping notice", zap.String("device", n.DeviceID))
		wp.metrics.NotificationsSent.WithLabelValues("dropped").Inc()
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Notice {
	return wp.jobs
}

func (wp *WorkerPool) notifySubscribers(ctx context.Context, n Notice) {
	subs, err := wp.store.SubscriptionsForDevice(ctx, n.DeviceID)
	if err != nil {
		wp.log.Error("fetching subscriptions failed", zap.String("device", n.DeviceID), zap.Error(err))
		return
	}
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		wp.log.Error("encoding notice failed", zap.String("device", n.DeviceID), zap.Error(err))
		return
	}

	wp.log.Info("sending notifications", zap.String("device", n.DeviceID), zap.Int("subscribers", len(subs)))
	for _, sub := range subs {
		wp.sendNotification(ctx, sub, payload)
	}
}

// sendNotification sends one web push, retrying transient failures.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	op := func() error {
		resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(errGone)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("push service returned %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("push service rejected notification: %d", resp.StatusCode))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(wp.newBackOff(), uint64(wp.maxRetries)), ctx)
	err := backoff.Retry(op, policy)
	switch {
	case err == nil:
		wp.metrics.NotificationsSent.WithLabelValues("sent").Inc()
	case errors.Is(err, errGone):
		wp.metrics.NotificationsSent.WithLabelValues("expired").Inc()
		wp.log.Info("subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			wp.log.Error("deleting expired subscription failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	default:
		wp.metrics.NotificationsSent.WithLabelValues("failed").Inc()
		wp.log.Warn("sending notification failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
	}
}
