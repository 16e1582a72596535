package store

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smart-dashboard-backend/internal/db"
	"smart-dashboard-backend/internal/model"
)

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// newSQLiteDB opens a private in-memory database with the schema applied.
func newSQLiteDB(t *testing.T) *gorm.DB {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	sqlDB, _ := gormDB.DB()
	t.Cleanup(func() { sqlDB.Close() })
	return gormDB
}

func float(v float64) *float64 { return &v }

func TestGormStore_RecordDeviceEvent_Mock(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "device_events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	ev := &model.DeviceEvent{SessionID: "s1", DeviceID: "light-1", Kind: model.EventToggle, ObservedAt: time.Now()}
	require.NoError(t, s.RecordDeviceEvent(context.Background(), ev))
	assert.Equal(t, int64(7), ev.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_RecordDeviceEvent_MockError(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "device_events"`)).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.RecordDeviceEvent(context.Background(), &model.DeviceEvent{DeviceID: "light-1", Kind: model.EventToggle})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "light-1")
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ListDeviceEvents_MockFilters(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "device_events" WHERE session_id = \$1 AND device_id = \$2 ORDER BY observed_at DESC, id DESC LIMIT \$3`).
		WithArgs("s1", "thermo-1", MaxEventLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "device_id", "kind"}).
			AddRow(1, "s1", "thermo-1", "set_value"))

	events, err := s.ListDeviceEvents(context.Background(), EventQuery{SessionID: "s1", DeviceID: "thermo-1", Limit: 10_000})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, model.EventSetValue, events[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_DeviceEvents(t *testing.T) {
	s := NewGormStore(newSQLiteDB(t))
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	events := []*model.DeviceEvent{
		{SessionID: "a", DeviceID: "light-1", Kind: model.EventToggle, OldStatus: model.StatusOn, NewStatus: model.StatusOff, ObservedAt: base},
		{SessionID: "a", DeviceID: "light-1", Kind: model.EventSetValue, OldValue: float(80), NewValue: float(100), Requested: float(150), Clamped: true, ObservedAt: base.Add(time.Minute)},
		{SessionID: "b", DeviceID: "lock-1", Kind: model.EventToggle, ObservedAt: base.Add(2 * time.Minute)},
	}
	for _, ev := range events {
		require.NoError(t, s.RecordDeviceEvent(ctx, ev))
	}

	got, err := s.ListDeviceEvents(ctx, EventQuery{SessionID: "a"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.EventSetValue, got[0].Kind, "newest first")
	assert.True(t, got[0].Clamped)
	require.NotNil(t, got[0].Requested)
	assert.Equal(t, 150.0, *got[0].Requested)

	got, err = s.ListDeviceEvents(ctx, EventQuery{DeviceID: "lock-1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].SessionID)

	got, err = s.ListDeviceEvents(ctx, EventQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.ListDeviceEvents(ctx, EventQuery{SessionID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGormStore_Subscriptions(t *testing.T) {
	s := NewGormStore(newSQLiteDB(t))
	ctx := context.Background()

	sub := model.PushSubscription{Endpoint: "https://push.example/1", P256DH: "p1", Auth: "a1"}
	require.NoError(t, s.PutSubscription(ctx, sub, []string{"light-1", "lock-1", "light-1", ""}))

	got, err := s.GetSubscription(ctx, sub.Endpoint)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.P256DH)
	ids := make([]string, 0, len(got.Devices))
	for _, d := range got.Devices {
		ids = append(ids, d.DeviceID)
	}
	assert.ElementsMatch(t, []string{"light-1", "lock-1"}, ids)

	// Replacing swaps keys and the device list.
	sub.P256DH = "p2"
	require.NoError(t, s.PutSubscription(ctx, sub, []string{"camera-1"}))
	got, err = s.GetSubscription(ctx, sub.Endpoint)
	require.NoError(t, err)
	assert.Equal(t, "p2", got.P256DH)
	require.Len(t, got.Devices, 1)
	assert.Equal(t, "camera-1", got.Devices[0].DeviceID)

	followers, err := s.SubscriptionsForDevice(ctx, "camera-1")
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, sub.Endpoint, followers[0].Endpoint)

	followers, err = s.SubscriptionsForDevice(ctx, "light-1")
	require.NoError(t, err)
	assert.Empty(t, followers)

	require.NoError(t, s.DeleteSubscription(ctx, sub.Endpoint))
	_, err = s.GetSubscription(ctx, sub.Endpoint)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)

	followers, err = s.SubscriptionsForDevice(ctx, "camera-1")
	require.NoError(t, err)
	assert.Empty(t, followers)

	// Deleting twice is fine.
	assert.NoError(t, s.DeleteSubscription(ctx, sub.Endpoint))
}
