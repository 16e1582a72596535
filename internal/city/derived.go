package city

import (
	"smart-dashboard-backend/internal/model"
	"smart-dashboard-backend/internal/sample"
	"smart-dashboard-backend/internal/stats"
)

// Summary holds the headline figures of the city dashboard.
type Summary struct {
	OnlineCameras       int    `json:"onlineCameras"`
	TotalCameras        int    `json:"totalCameras"`
	CamerasRatio        string `json:"camerasRatio"`
	CameraUptimePercent *int   `json:"cameraUptimePercent"` // nil when there are no cameras
	ActiveIncidents     int    `json:"activeIncidents"`
	TrafficFlowPercent  int    `json:"trafficFlowPercent"`
	OperationalLights   int    `json:"operationalLights"`
	TotalLights         int    `json:"totalLights"`
	LightsRatio         string `json:"lightsRatio"`
}

// Summarize computes the headline figures.
func Summarize(data sample.City) Summary {
	online := stats.Count(data.Cameras, func(c model.Camera) bool { return c.Status == model.CameraOnline })
	operational := stats.Count(data.TrafficLights, func(l model.TrafficLight) bool { return l.Status == model.LightOperational })

	return Summary{
		OnlineCameras:       online,
		TotalCameras:        len(data.Cameras),
		CamerasRatio:        stats.Ratio(online, len(data.Cameras)),
		CameraUptimePercent: stats.PercentPtr(online, len(data.Cameras)),
		ActiveIncidents:     stats.Count(data.Incidents, IsActive),
		TrafficFlowPercent:  data.Traffic.FlowPercent,
		OperationalLights:   operational,
		TotalLights:         len(data.TrafficLights),
		LightsRatio:         stats.Ratio(operational, len(data.TrafficLights)),
	}
}

// IsActive reports whether an incident still needs attention.
func IsActive(i model.Incident) bool {
	return i.Type == model.IncidentCritical || i.Type == model.IncidentWarning
}

type CameraView struct {
	model.Camera
	Severity Severity `json:"severity"`
}

type IncidentView struct {
	model.Incident
	Severity Severity `json:"severity"`
}

type TrafficLightView struct {
	model.TrafficLight
	Severity Severity `json:"severity"`
}

type RoadView struct {
	model.RoadLoad
	Severity Severity `json:"severity"`
}

// SecurityPanel is shown on the security tab.
type SecurityPanel struct {
	Cameras   []CameraView   `json:"cameras"`
	Incidents []IncidentView `json:"incidents"`
}

// TransportPanel is shown on the transport tab.
type TransportPanel struct {
	TrafficLights []TrafficLightView   `json:"trafficLights"`
	Roads         []RoadView           `json:"roads"`
	Traffic       model.TrafficFigures `json:"traffic"`
}

func securityPanel(data sample.City) *SecurityPanel {
	p := &SecurityPanel{
		Cameras:   make([]CameraView, 0, len(data.Cameras)),
		Incidents: make([]IncidentView, 0, len(data.Incidents)),
	}
	for _, c := range data.Cameras {
		p.Cameras = append(p.Cameras, CameraView{Camera: c, Severity: StatusSeverity(string(c.Status))})
	}
	for _, i := range data.Incidents {
		p.Incidents = append(p.Incidents, IncidentView{Incident: i, Severity: IncidentSeverity(string(i.Type))})
	}
	return p
}

func transportPanel(data sample.City) *TransportPanel {
	p := &TransportPanel{
		TrafficLights: make([]TrafficLightView, 0, len(data.TrafficLights)),
		Roads:         make([]RoadView, 0, len(data.Roads)),
		Traffic:       data.Traffic,
	}
	for _, l := range data.TrafficLights {
		p.TrafficLights = append(p.TrafficLights, TrafficLightView{TrafficLight: l, Severity: StatusSeverity(string(l.Status))})
	}
	for _, r := range data.Roads {
		p.Roads = append(p.Roads, RoadView{RoadLoad: r, Severity: RoadSeverity(r.LoadPercent)})
	}
	return p
}
