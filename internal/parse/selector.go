// Package parse turns raw request values into typed selectors.
package parse

import (
	"errors"
	"fmt"
	"strings"

	"smart-dashboard-backend/internal/model"
)

var (
	ErrUnknownTab      = errors.New("unknown tab")
	ErrUnknownCategory = errors.New("unknown device category")
)

// Keywords that mean "no room selected".
var allRooms = map[string]bool{"": true, "all": true, "*": true}

// Tab parses a city tab name, case-insensitively.
func Tab(raw string) (model.Tab, error) {
	switch model.Tab(normalize(raw)) {
	case model.TabSecurity:
		return model.TabSecurity, nil
	case model.TabTransport:
		return model.TabTransport, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, raw)
}

// Room parses a room selector. ok is false when raw asks for all rooms.
// Unknown room IDs are returned as-is; filtering by them yields nothing.
func Room(raw string) (room string, ok bool) {
	s := normalize(raw)
	if allRooms[s] {
		return "", false
	}
	return s, true
}

// Category parses a device category name, case-insensitively. Plural forms
// such as "lights" are accepted.
func Category(raw string) (model.DeviceCategory, error) {
	s := normalize(raw)
	for _, c := range model.Categories {
		if s == string(c) || s == string(c)+"s" {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
