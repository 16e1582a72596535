package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smart-dashboard-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	RecordDeviceEvent(ctx context.Context, ev *model.DeviceEvent) error
	ListDeviceEvents(ctx context.Context, q EventQuery) ([]model.DeviceEvent, error)

	PutSubscription(ctx context.Context, sub model.PushSubscription, deviceIDs []string) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForDevice(ctx context.Context, deviceID string) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// RecordDeviceEvent appends one mutation to the activity log.
func (s *gormStore) RecordDeviceEvent(ctx context.Context, ev *model.DeviceEvent) error {
	if err := s.db.WithContext(ctx).Create(ev).Error; err != nil {
		return fmt.Errorf("failed to record %s event for device %s: %w", ev.Kind, ev.DeviceID, err)
	}
	return nil
}

// ListDeviceEvents returns matching events, newest first.
func (s *gormStore) ListDeviceEvents(ctx context.Context, q EventQuery) ([]model.DeviceEvent, error) {
	tx := s.db.WithContext(ctx)
	if q.SessionID != "" {
		tx = tx.Where("session_id = ?", q.SessionID)
	}
	if q.DeviceID != "" {
		tx = tx.Where("device_id = ?", q.DeviceID)
	}

	events := make([]model.DeviceEvent, 0)
	if err := tx.Order("observed_at DESC, id DESC").Limit(q.limit()).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list device events: %w", err)
	}
	return events, nil
}

// PutSubscription creates or replaces a subscription and its device list.
func (s *gormStore) PutSubscription(ctx context.Context, sub model.PushSubscription, deviceIDs []string) error {
	sub.Devices = nil
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(&sub).Error; err != nil {
			return fmt.Errorf("failed to upsert subscription: %w", err)
		}

		if err := tx.Where("endpoint = ?", sub.Endpoint).Delete(&model.SubscribedDevice{}).Error; err != nil {
			return fmt.Errorf("failed to clear subscribed devices: %w", err)
		}

		links := subscribedDevices(sub.Endpoint, deviceIDs)
		if len(links) == 0 {
			return nil
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("failed to link subscribed devices: %w", err)
		}
		return nil
	})
}

func subscribedDevices(endpoint string, deviceIDs []string) []model.SubscribedDevice {
	seen := make(map[string]bool, len(deviceIDs))
	links := make([]model.SubscribedDevice, 0, len(deviceIDs))
	for _, id := range deviceIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, model.SubscribedDevice{Endpoint: endpoint, DeviceID: id})
	}
	return links
}

// GetSubscription loads a subscription with its devices.
func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).Preload("Devices").First(&sub, "endpoint = ?", endpoint).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

// DeleteSubscription removes a subscription and its device links. Unknown
// endpoints are not an error.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("endpoint = ?", endpoint).Delete(&model.SubscribedDevice{}).Error; err != nil {
			return fmt.Errorf("failed to delete subscribed devices: %w", err)
		}
		if err := tx.Where("endpoint = ?", endpoint).Delete(&model.PushSubscription{}).Error; err != nil {
			return fmt.Errorf("failed to delete subscription: %w", err)
		}
		return nil
	})
}

// SubscriptionsForDevice returns every subscription that follows deviceID.
func (s *gormStore) SubscriptionsForDevice(ctx context.Context, deviceID string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscribed_devices sd ON sd.endpoint = push_subscriptions.endpoint").
		Where("sd.device_id = ?", deviceID).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions for device %s: %w", deviceID, err)
	}
	return subs, nil
}
