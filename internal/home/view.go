// Package home implements the smart-home control view.
package home

import (
	"context"
	"sync"
	"time"

	"smart-dashboard-backend/internal/clock"
	"smart-dashboard-backend/internal/model"
	"smart-dashboard-backend/internal/sample"
	"smart-dashboard-backend/internal/selection"
)

// Filter narrows the device list of a snapshot beyond the room selection.
type Filter struct {
	Category *model.DeviceCategory
}

// Snapshot is everything the home view renders at one instant. Summary always
// covers the whole home; Devices honours the room selection and the filter.
type Snapshot struct {
	Now          time.Time      `json:"now"`
	SelectedRoom *string        `json:"selectedRoom"`
	Rooms        []RoomView     `json:"rooms"`
	Devices      []model.Device `json:"devices"`
	Summary      Summary        `json:"summary"`
}

// View is one mounted smart-home dashboard. Its methods are serialized by a
// mutex, so at most one mutation is in flight.
type View struct {
	mu    sync.Mutex
	store *DeviceStore
	rooms []model.Room
	room  selection.Selection[string]
	clock *clock.Ticker
}

// NewView creates a view over data with no room selected.
func NewView(data sample.Home, clk *clock.Ticker) *View {
	rooms := make([]model.Room, len(data.Rooms))
	copy(rooms, data.Rooms)
	return &View{
		store: NewDeviceStore(data.Devices),
		rooms: rooms,
		clock: clk,
	}
}

// Mount starts the view's clock.
func (v *View) Mount(ctx context.Context) {
	v.clock.Start(ctx)
}

// Mounted reports whether the view's clock is running.
func (v *View) Mounted() bool {
	return v.clock.Running()
}

// Close stops the view's clock.
func (v *View) Close() {
	v.clock.Stop()
}

// SelectRoom shows only the devices of room. The ID is not validated.
func (v *View) SelectRoom(room string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.room.Select(room)
}

// ClearRoom shows devices of every room.
func (v *View) ClearRoom() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.room.Clear()
}

// Toggle flips a device on or off.
func (v *View) Toggle(deviceID string) (Change, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Toggle(deviceID)
}

// SetValue sets the brightness or temperature of a device.
func (v *View) SetValue(deviceID string, value float64) (Change, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.SetValue(deviceID, value)
}

// Device returns one device.
func (v *View) Device(deviceID string) (model.Device, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Get(deviceID)
}

// Snapshot computes the derived view for the current selection.
func (v *View) Snapshot(f Filter) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	all := v.store.Devices()
	room, hasRoom := v.room.Current()

	shown := all
	if hasRoom {
		shown = FilterByRoom(shown, room)
	}
	if f.Category != nil {
		shown = FilterByCategory(shown, *f.Category)
	}

	snap := Snapshot{
		Now:     v.clock.Now(),
		Rooms:   RoomViews(v.rooms, all, room, hasRoom),
		Devices: shown,
		Summary: Summarize(all, v.rooms),
	}
	if hasRoom {
		snap.SelectedRoom = &room
	}
	return snap
}
