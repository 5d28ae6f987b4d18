package models

// Station describes the host that performed a correlated scan.
type Station struct {
	ID       string           `json:"station_id"`
	Name     string           `json:"station_name,omitempty"`
	Hostname string           `json:"hostname,omitempty"`
	Platform string           `json:"platform,omitempty"`
	Location *StationLocation `json:"location,omitempty"`
}

// StationLocation is the GPS fix of the station at report time.
type StationLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}
