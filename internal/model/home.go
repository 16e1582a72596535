package model

// DeviceCategory is the closed set of device kinds.
type DeviceCategory string

const (
	CategoryLight      DeviceCategory = "light"
	CategoryThermostat DeviceCategory = "thermostat"
	CategoryCamera     DeviceCategory = "camera"
	CategoryLock       DeviceCategory = "lock"
	CategorySensor     DeviceCategory = "sensor"
	CategorySpeaker    DeviceCategory = "speaker"
)

// Categories lists every DeviceCategory in display order.
var Categories = []DeviceCategory{
	CategoryLight,
	CategoryThermostat,
	CategoryCamera,
	CategoryLock,
	CategorySensor,
	CategorySpeaker,
}

// ValueRange is the inclusive range a category's numeric value may take.
type ValueRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

var valueRanges = map[DeviceCategory]ValueRange{
	CategoryLight:      {Min: 0, Max: 100, Unit: "%"},
	CategoryThermostat: {Min: 16, Max: 30, Unit: "°C"},
}

// ValueRange returns the range of the category's value field. ok is false
// for categories that carry no value.
func (c DeviceCategory) ValueRange() (ValueRange, bool) {
	r, ok := valueRanges[c]
	return r, ok
}

// Clamp limits v to the range.
func (r ValueRange) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// DeviceStatus is the on/off state of a device.
type DeviceStatus string

const (
	StatusOn  DeviceStatus = "on"
	StatusOff DeviceStatus = "off"
)

// Flip returns the opposite status.
func (s DeviceStatus) Flip() DeviceStatus {
	if s == StatusOn {
		return StatusOff
	}
	return StatusOn
}

// Device is a smart-home device. Value is set only for categories with a
// ValueRange; Battery only for battery-powered devices.
type Device struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category DeviceCategory `json:"category"`
	Room     string         `json:"room"`
	Status   DeviceStatus   `json:"status"`
	Value    *float64       `json:"value,omitempty"`
	Battery  *int           `json:"battery,omitempty"`
}

// Clone returns a deep copy of d.
func (d Device) Clone() Device {
	if d.Value != nil {
		v := *d.Value
		d.Value = &v
	}
	if d.Battery != nil {
		b := *d.Battery
		d.Battery = &b
	}
	return d
}

// Room is a smart-home room. Devices is the declared count and is not kept
// in sync with the device list.
type Room struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Devices     int      `json:"devices"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *int     `json:"humidity,omitempty"`
}
