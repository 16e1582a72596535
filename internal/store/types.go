package store

import "errors"

var ErrSubscriptionNotFound = errors.New("subscription not found")

// Limits applied to activity queries.
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 500
)

// EventQuery selects activity log entries. Empty fields match everything.
type EventQuery struct {
	SessionID string
	DeviceID  string
	Limit     int
}

func (q EventQuery) limit() int {
	switch {
	case q.Limit <= 0:
		return DefaultEventLimit
	case q.Limit > MaxEventLimit:
		return MaxEventLimit
	default:
		return q.Limit
	}
}
