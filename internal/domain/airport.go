package domain

// AirportInfo is the display metadata of an airport.
type AirportInfo struct {
	IATA      string   `json:"iata"`
	Name      string   `json:"name"`
	Latitude  *float64 `json:"lat"`
	Longitude *float64 `json:"lon"`
}

// Airport is an airport of the active base, optionally annotated with the distance
// to a reference point.
type Airport struct {
	AirportInfo
	DistanceKm float64 `json:"distance_km,omitempty"`
}

func (a AirportInfo) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}
