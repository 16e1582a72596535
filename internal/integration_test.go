package internal

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smart-dashboard-backend/config"
	"smart-dashboard-backend/internal/api"
	"smart-dashboard-backend/internal/db"
	"smart-dashboard-backend/internal/home"
	"smart-dashboard-backend/internal/metrics"
	"smart-dashboard-backend/internal/model"
	"smart-dashboard-backend/internal/notification"
	"smart-dashboard-backend/internal/session"
	"smart-dashboard-backend/internal/store"
)

type stack struct {
	router   http.Handler
	store    store.Store
	metrics  *metrics.Metrics
	sessions *session.Registry
}

// newStack wires the service the way dashboardd serve does, on a private
// in-memory sqlite database.
func newStack(t *testing.T, pushStatus int) (*stack, *httptest.Server, *atomic.Int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Database.DSN = "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000

	log := zap.NewNop()
	gormDB, err := db.Init(&cfg.Database, log)
	require.NoError(t, err)
	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })

	var pushes atomic.Int32
	pushService := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushes.Add(1)
		assert.Equal(t, "aes128gcm", r.Header.Get("Content-Encoding"))
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "vapid "))
		w.WriteHeader(pushStatus)
	}))
	t.Cleanup(pushService.Close)

	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	require.NoError(t, err)
	push := &webpush.Options{
		VAPIDPublicKey:  publicKey,
		VAPIDPrivateKey: privateKey,
		Subscriber:      "ops@example.com",
		TTL:             60,
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := metrics.New()
	s := store.NewGormStore(gormDB)
	sessions := session.NewRegistry(ctx, session.Options{
		IdleTTL:         time.Minute,
		CleanupInterval: time.Minute,
		TickInterval:    10 * time.Millisecond,
		Location:        cfg.Clock.Location,
	}, m, log)
	t.Cleanup(sessions.Close)

	pool := notification.NewWorkerPool(1, s, push, 0, m, log)
	pool.Start(ctx)

	h := api.NewHandler(sessions, s, pool, push, m, log)
	return &stack{router: api.NewRouter(h, cfg.Server), store: s, metrics: m, sessions: sessions}, pushService, &pushes
}

func (s *stack) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// browserKeys returns a p256dh/auth pair as a browser would.
func browserKeys(t *testing.T) (string, string) {
	t.Helper()
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	require.NoError(t, err)
	auth := make([]byte, 16)
	_, err = rand.Read(auth)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()), base64.RawURLEncoding.EncodeToString(auth)
}

func (s *stack) subscribe(t *testing.T, endpoint string, devices ...string) {
	t.Helper()
	p256dh, auth := browserKeys(t)
	body, err := json.Marshal(map[string]any{
		"endpoint":           endpoint,
		"p256dh":             p256dh,
		"auth":               auth,
		"subscribed_devices": devices,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPut, "/api/subscriptions", string(body)).Code)
}

func (s *stack) mountHome(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/views/home", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

// TestHomeDashboardLifecycle mounts a home view, mutates devices, reads the
// activity log back from sqlite and checks that subscribers are notified.
func TestHomeDashboardLifecycle(t *testing.T) {
	s, pushService, pushes := newStack(t, http.StatusCreated)
	s.subscribe(t, pushService.URL+"/sub/1", "lock-1")

	id := s.mountHome(t)
	base := "/api/views/home/" + id

	t.Run("toggle notifies subscribers", func(t *testing.T) {
		w := s.do(t, http.MethodPost, base+"/devices/lock-1/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)

		require.Eventually(t, func() bool { return pushes.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
		require.Eventually(t, func() bool {
			return testutil.ToFloat64(s.metrics.NotificationsSent.WithLabelValues("sent")) == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("unsubscribed device sends nothing", func(t *testing.T) {
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, base+"/devices/light-1/toggle", "").Code)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(1), pushes.Load())
	})

	t.Run("value is clamped and logged", func(t *testing.T) {
		w := s.do(t, http.MethodPut, base+"/devices/light-2/value", `{"value":140}`)
		require.Equal(t, http.StatusOK, w.Code)
		var change home.Change
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &change))
		assert.True(t, change.Clamped)
		assert.Equal(t, 100.0, *change.After.Value)
	})

	t.Run("activity comes back newest first", func(t *testing.T) {
		w := s.do(t, http.MethodGet, base+"/activity", "")
		require.Equal(t, http.StatusOK, w.Code)
		var events []model.DeviceEvent
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
		require.Len(t, events, 3)

		assert.Equal(t, "light-2", events[0].DeviceID)
		assert.Equal(t, model.EventSetValue, events[0].Kind)
		assert.True(t, events[0].Clamped)
		assert.Equal(t, 140.0, *events[0].Requested)
		assert.Equal(t, 40.0, *events[0].OldValue)
		assert.Equal(t, 100.0, *events[0].NewValue)

		assert.Equal(t, "light-1", events[1].DeviceID)
		assert.Equal(t, "lock-1", events[2].DeviceID)
		assert.Equal(t, model.StatusOn, events[2].OldStatus)
		assert.Equal(t, model.StatusOff, events[2].NewStatus)
	})

	t.Run("unmount stops the view", func(t *testing.T) {
		v, err := s.sessions.Home(id)
		require.NoError(t, err)
		require.True(t, v.Mounted())

		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, base, "").Code)
		assert.False(t, v.Mounted())
		assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, base+"/activity", "").Code)

		// The log outlives the view.
		events, err := s.store.ListDeviceEvents(context.Background(), store.EventQuery{SessionID: id})
		require.NoError(t, err)
		assert.Len(t, events, 3)
	})
}

// TestExpiredSubscriptionIsRemoved checks that a 410 from the push service
// deletes the subscription.
func TestExpiredSubscriptionIsRemoved(t *testing.T) {
	s, pushService, pushes := newStack(t, http.StatusGone)
	endpoint := pushService.URL + "/sub/gone"
	s.subscribe(t, endpoint, "camera-1")

	id := s.mountHome(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/views/home/"+id+"/devices/camera-1/toggle", "").Code)

	require.Eventually(t, func() bool {
		_, err := s.store.GetSubscription(context.Background(), endpoint)
		return err == store.ErrSubscriptionNotFound
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), pushes.Load())
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/subscriptions?endpoint="+endpoint, "").Code)
}
