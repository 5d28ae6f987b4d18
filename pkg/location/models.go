package location

// Location represents the geographical coordinates of the scanning station
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // HDOP reported by the receiver
}
