package model

import "time"

// EventKind is the kind of mutation recorded in the activity log.
type EventKind string

const (
	EventToggle   EventKind = "toggle"
	EventSetValue EventKind = "set_value"
)

// DeviceEvent is one applied device mutation.
type DeviceEvent struct {
	ID         int64        `gorm:"primaryKey" json:"id"`
	SessionID  string       `gorm:"size:64;index;not null" json:"sessionId"`
	DeviceID   string       `gorm:"size:64;index;not null" json:"deviceId"`
	Kind       EventKind    `gorm:"size:16;not null" json:"kind"`
	OldStatus  DeviceStatus `gorm:"size:8" json:"oldStatus"`
	NewStatus  DeviceStatus `gorm:"size:8" json:"newStatus"`
	OldValue   *float64     `json:"oldValue,omitempty"`
	NewValue   *float64     `json:"newValue,omitempty"`
	Requested  *float64     `json:"requested,omitempty"`
	Clamped    bool         `gorm:"not null" json:"clamped"`
	ObservedAt time.Time    `gorm:"not null;index" json:"observedAt"`
}
