package sample

import "smart-dashboard-backend/internal/model"

// Home is the data set of the smart-home view.
type Home struct {
	Rooms   []model.Room
	Devices []model.Device
}

func ptr[T any](v T) *T { return &v }

// NewHome returns the smart-home sample data. The hallway deliberately
// declares more devices than it holds.
func NewHome() Home {
	return Home{
		Rooms: []model.Room{
			{ID: "living", Name: "Гостиная", Icon: "Sofa", Devices: 4, Temperature: ptr(22.5), Humidity: ptr(45)},
			{ID: "bedroom", Name: "Спальня", Icon: "Bed", Devices: 3, Temperature: ptr(20.0), Humidity: ptr(50)},
			{ID: "kitchen", Name: "Кухня", Icon: "ChefHat", Devices: 3, Temperature: ptr(23.5), Humidity: ptr(55)},
			{ID: "bathroom", Name: "Ванная", Icon: "Bath", Devices: 1, Temperature: ptr(25.0), Humidity: ptr(70)},
			{ID: "hallway", Name: "Прихожая", Icon: "DoorOpen", Devices: 3},
		},
		Devices: []model.Device{
			{ID: "light-1", Name: "Люстра", Category: model.CategoryLight, Room: "living", Status: model.StatusOn, Value: ptr(80.0)},
			{ID: "light-2", Name: "Торшер", Category: model.CategoryLight, Room: "living", Status: model.StatusOff, Value: ptr(40.0)},
			{ID: "speaker-1", Name: "Саундбар", Category: model.CategorySpeaker, Room: "living", Status: model.StatusOn},
			{ID: "thermo-1", Name: "Термостат", Category: model.CategoryThermostat, Room: "living", Status: model.StatusOn, Value: ptr(22.0)},
			{ID: "light-3", Name: "Ночник", Category: model.CategoryLight, Room: "bedroom", Status: model.StatusOff, Value: ptr(25.0)},
			{ID: "thermo-2", Name: "Термостат спальни", Category: model.CategoryThermostat, Room: "bedroom", Status: model.StatusOn, Value: ptr(20.0)},
			{ID: "sensor-1", Name: "Датчик влажности", Category: model.CategorySensor, Room: "bedroom", Status: model.StatusOn, Battery: ptr(85)},
			{ID: "light-4", Name: "Подсветка", Category: model.CategoryLight, Room: "kitchen", Status: model.StatusOn, Value: ptr(100.0)},
			{ID: "sensor-2", Name: "Датчик дыма", Category: model.CategorySensor, Room: "kitchen", Status: model.StatusOn, Battery: ptr(15)},
			{ID: "speaker-2", Name: "Умная колонка", Category: model.CategorySpeaker, Room: "kitchen", Status: model.StatusOff},
			{ID: "sensor-3", Name: "Датчик протечки", Category: model.CategorySensor, Room: "bathroom", Status: model.StatusOn, Battery: ptr(60)},
			{ID: "lock-1", Name: "Входной замок", Category: model.CategoryLock, Room: "hallway", Status: model.StatusOn, Battery: ptr(45)},
			{ID: "camera-1", Name: "Камера у двери", Category: model.CategoryCamera, Room: "hallway", Status: model.StatusOn, Battery: ptr(72)},
		},
	}
}
