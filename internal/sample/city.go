// Package sample holds the hard-coded data every dashboard view starts from.
// Each call returns a fresh copy, so views never share backing arrays.
package sample

import "smart-dashboard-backend/internal/model"

// City is the data set of the city monitoring view.
type City struct {
	Cameras       []model.Camera
	Incidents     []model.Incident
	TrafficLights []model.TrafficLight
	Roads         []model.RoadLoad
	Traffic       model.TrafficFigures
}

// NewCity returns the city sample data.
func NewCity() City {
	return City{
		Cameras: []model.Camera{
			{ID: "CAM-001", Name: "Центральная площадь", Status: model.CameraOnline, Location: "Пл. Революции, 1"},
			{ID: "CAM-002", Name: "Проспект Мира", Status: model.CameraOnline, Location: "Пр. Мира, 45"},
			{ID: "CAM-003", Name: "ТЦ Галерея", Status: model.CameraWarning, Location: "Ул. Ленина, 12"},
			{ID: "CAM-004", Name: "Вокзал", Status: model.CameraOffline, Location: "Привокзальная пл., 2"},
			{ID: "CAM-005", Name: "Парк Победы", Status: model.CameraOnline, Location: "Парковая ул., 8"},
			{ID: "CAM-006", Name: "Школа №5", Status: model.CameraOnline, Location: "Школьная ул., 15"},
		},
		Incidents: []model.Incident{
			{ID: "INC-001", Type: model.IncidentCritical, Title: "ДТП с пострадавшими", Location: "Пр. Ленина × Ул. Кирова", Time: "3 мин назад"},
			{ID: "INC-002", Type: model.IncidentWarning, Title: "Подозрительный объект", Location: "Центральный вокзал", Time: "12 мин назад"},
			{ID: "INC-003", Type: model.IncidentInfo, Title: "Плановая проверка", Location: "ТЦ Галерея", Time: "25 мин назад"},
			{ID: "INC-004", Type: model.IncidentWarning, Title: "Затор на дороге", Location: "Кольцевая развязка", Time: "35 мин назад"},
		},
		TrafficLights: []model.TrafficLight{
			{ID: "TL-001", Intersection: "Пр. Мира × Ул. Ленина", Status: model.LightOperational, Mode: model.ModeAuto},
			{ID: "TL-002", Intersection: "Садовая × Кирова", Status: model.LightOperational, Mode: model.ModeAuto},
			{ID: "TL-003", Intersection: "Вокзальная × Пушкина", Status: model.LightMaintenance, Mode: model.ModeManual},
			{ID: "TL-004", Intersection: "Кольцевая развязка", Status: model.LightError, Mode: model.ModeManual},
			{ID: "TL-005", Intersection: "Центральная пл.", Status: model.LightOperational, Mode: model.ModeAuto},
		},
		Roads: []model.RoadLoad{
			{Road: "Проспект Мира", LoadPercent: 65},
			{Road: "Кольцевая дорога", LoadPercent: 92},
			{Road: "Улица Ленина", LoadPercent: 38},
			{Road: "Центральная площадь", LoadPercent: 71},
		},
		Traffic: model.TrafficFigures{
			FlowPercent:     87,
			VehiclesPerHour: 1247,
			DelayMinutes:    8.3,
			ChangePercent:   12,
		},
	}
}
