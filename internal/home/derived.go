package home

import (
	"smart-dashboard-backend/internal/model"
	"smart-dashboard-backend/internal/stats"
)

// LowBatteryBelow is the battery percentage under which a device is reported as low.
const LowBatteryBelow = 20

// FilterByRoom returns the devices in room. Unknown rooms yield an empty list.
func FilterByRoom(devices []model.Device, room string) []model.Device {
	return stats.Filter(devices, func(d model.Device) bool { return d.Room == room })
}

// FilterByCategory returns the devices of category c.
func FilterByCategory(devices []model.Device, c model.DeviceCategory) []model.Device {
	return stats.Filter(devices, func(d model.Device) bool { return d.Category == c })
}

func isOn(d model.Device) bool { return d.Status == model.StatusOn }

// Summary holds the headline figures of the home dashboard.
type Summary struct {
	TotalDevices       int      `json:"totalDevices"`
	DevicesOn          int      `json:"devicesOn"`
	OnPercent          *int     `json:"onPercent"` // nil when there are no devices
	ActiveLights       int      `json:"activeLights"`
	LowBattery         int      `json:"lowBattery"`
	AverageTemperature *float64 `json:"averageTemperature"` // nil when no room reports one
}

// Summarize computes the headline figures over devices and rooms.
func Summarize(devices []model.Device, rooms []model.Room) Summary {
	on := stats.Count(devices, isOn)

	var temps []float64
	for _, r := range rooms {
		if r.Temperature != nil {
			temps = append(temps, *r.Temperature)
		}
	}
	var avg *float64
	if m, ok := stats.Mean(temps); ok {
		avg = &m
	}

	return Summary{
		TotalDevices: len(devices),
		DevicesOn:    on,
		OnPercent:    stats.PercentPtr(on, len(devices)),
		ActiveLights: stats.Count(devices, func(d model.Device) bool {
			return d.Category == model.CategoryLight && isOn(d)
		}),
		LowBattery: stats.Count(devices, func(d model.Device) bool {
			return d.Battery != nil && *d.Battery < LowBatteryBelow
		}),
		AverageTemperature: avg,
	}
}

// RoomView is a room with its device count recomputed from the device list.
// The declared count stays available as Devices.
type RoomView struct {
	model.Room
	DeviceCount int  `json:"deviceCount"`
	DevicesOn   int  `json:"devicesOn"`
	Selected    bool `json:"selected"`
}

// RoomViews pairs every room with its live device counts.
func RoomViews(rooms []model.Room, devices []model.Device, selected string, hasSelection bool) []RoomView {
	out := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		in := FilterByRoom(devices, r.ID)
		out = append(out, RoomView{
			Room:        r,
			DeviceCount: len(in),
			DevicesOn:   stats.Count(in, isOn),
			Selected:    hasSelection && r.ID == selected,
		})
	}
	return out
}
