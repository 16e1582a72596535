package model

import "time"

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Devices []SubscribedDevice `gorm:"foreignKey:Endpoint;constraint:OnDelete:CASCADE"`
}

// SubscribedDevice links a subscription to a device it wants change notices for.
type SubscribedDevice struct {
	Endpoint string `gorm:"primaryKey"`
	DeviceID string `gorm:"primaryKey;size:64;index"`
}
