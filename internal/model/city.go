package model

// Tab selects which panel group the city view shows.
type Tab string

const (
	TabSecurity  Tab = "security"
	TabTransport Tab = "transport"
)

// CameraStatus is the reported state of a surveillance camera.
type CameraStatus string

const (
	CameraOnline  CameraStatus = "online"
	CameraWarning CameraStatus = "warning"
	CameraOffline CameraStatus = "offline"
)

// Camera is a city surveillance camera.
type Camera struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Status   CameraStatus `json:"status"`
	Location string       `json:"location"`
}

// IncidentType ranks an incident.
type IncidentType string

const (
	IncidentCritical IncidentType = "critical"
	IncidentWarning  IncidentType = "warning"
	IncidentInfo     IncidentType = "info"
)

// Incident is a reported city event. Time is the human-readable age as supplied by the operator feed.
type Incident struct {
	ID       string       `json:"id"`
	Type     IncidentType `json:"type"`
	Title    string       `json:"title"`
	Location string       `json:"location"`
	Time     string       `json:"time"`
}

// LightStatus is the health of a traffic light.
type LightStatus string

const (
	LightOperational LightStatus = "operational"
	LightMaintenance LightStatus = "maintenance"
	LightError       LightStatus = "error"
)

// LightMode is how a traffic light is driven.
type LightMode string

const (
	ModeAuto   LightMode = "auto"
	ModeManual LightMode = "manual"
)

// TrafficLight is one signalled intersection.
type TrafficLight struct {
	ID           string      `json:"id"`
	Intersection string      `json:"intersection"`
	Status       LightStatus `json:"status"`
	Mode         LightMode   `json:"mode"`
}

// RoadLoad is the congestion of a single road, in percent.
type RoadLoad struct {
	Road        string `json:"road"`
	LoadPercent int    `json:"loadPercent"`
}

// TrafficFigures are the city-wide traffic indicators.
type TrafficFigures struct {
	FlowPercent     int     `json:"flowPercent"`
	VehiclesPerHour int     `json:"vehiclesPerHour"`
	DelayMinutes    float64 `json:"delayMinutes"`
	ChangePercent   int     `json:"changePercent"` // relative to the previous day
}
