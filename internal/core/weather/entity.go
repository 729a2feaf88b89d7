package weather

import "weatherhome.app/internal/ports"

// ListItem is one city row of the home screen list
type ListItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Temp        float64 `json:"temp"`
	Icon        string  `json:"icon"`
}

// CurrentSnapshot is the weather at the device's current location
type CurrentSnapshot struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Temp        float64 `json:"temp"`
	Icon        string  `json:"icon"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// ListItemFromPorts converts a provider reading into a list row
func ListItemFromPorts(c ports.CityWeather) ListItem {
	return ListItem{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Temp:        c.Temp,
		Icon:        c.Icon,
	}
}

// SnapshotFromPorts converts a provider reading into a current-location snapshot
func SnapshotFromPorts(c ports.CityWeather) CurrentSnapshot {
	return CurrentSnapshot{
		Name:        c.Name,
		Description: c.Description,
		Temp:        c.Temp,
		Icon:        c.Icon,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
	}
}
