package home

import "smart-dashboard-backend/internal/model"

// Change describes the outcome of one mutation.
type Change struct {
	Before    model.Device `json:"before"`
	After     model.Device `json:"after"`
	Changed   bool         `json:"changed"`
	Clamped   bool         `json:"clamped"`
	Requested *float64     `json:"requested,omitempty"`
}

// DeviceStore owns the device list of one home view. Mutations swap in a new
// slice where exactly one element differs, so slices handed out earlier are
// never modified. It is not safe for concurrent use.
type DeviceStore struct {
	devices []model.Device
	index   map[string]int
}

// NewDeviceStore copies devices into a new store. Later duplicates of an ID
// are unreachable by mutation.
func NewDeviceStore(devices []model.Device) *DeviceStore {
	s := &DeviceStore{
		devices: make([]model.Device, len(devices)),
		index:   make(map[string]int, len(devices)),
	}
	for i, d := range devices {
		s.devices[i] = d.Clone()
		if _, dup := s.index[d.ID]; !dup {
			s.index[d.ID] = i
		}
	}
	return s
}

// Devices returns a copy of every device.
func (s *DeviceStore) Devices() []model.Device {
	out := make([]model.Device, len(s.devices))
	for i, d := range s.devices {
		out[i] = d.Clone()
	}
	return out
}

// Get returns a copy of the device with the given ID.
func (s *DeviceStore) Get(id string) (model.Device, bool) {
	i, ok := s.index[id]
	if !ok {
		return model.Device{}, false
	}
	return s.devices[i].Clone(), true
}

// Toggle flips the on/off status of a device. ok is false for unknown IDs,
// which leave the store untouched.
func (s *DeviceStore) Toggle(id string) (Change, bool) {
	i, ok := s.index[id]
	if !ok {
		return Change{}, false
	}

	before := s.devices[i].Clone()
	after := before.Clone()
	after.Status = before.Status.Flip()
	s.replace(i, after)

	return Change{Before: before, After: after.Clone(), Changed: true}, true
}

// SetValue sets the numeric value of a device, clamped to its category range.
// ok is false for unknown IDs and for devices without a value field. Setting
// the value it already has reports Changed=false and swaps nothing.
func (s *DeviceStore) SetValue(id string, v float64) (Change, bool) {
	i, ok := s.index[id]
	if !ok {
		return Change{}, false
	}
	before := s.devices[i].Clone()
	rng, hasValue := before.Category.ValueRange()
	if !hasValue || before.Value == nil {
		return Change{}, false
	}

	requested := v
	clamped := rng.Clamp(v)
	change := Change{
		Before:    before,
		Clamped:   clamped != v,
		Requested: &requested,
	}
	if *before.Value == clamped {
		change.After = before.Clone()
		return change, true
	}

	after := before.Clone()
	after.Value = &clamped
	s.replace(i, after)

	change.After = after.Clone()
	change.Changed = true
	return change, true
}

func (s *DeviceStore) replace(i int, d model.Device) {
	next := make([]model.Device, len(s.devices))
	copy(next, s.devices)
	next[i] = d
	s.devices = next
}
