package models

// ResolvedLocation is the finalized place a user receives forecasts for.
// Exactly one addressing scheme is populated: StationCode for catalog-driven
// deployments, Latitude/Longitude for geocoder-driven ones.
type ResolvedLocation struct {
	DisplayName string  `json:"display_name"`
	StationCode string  `json:"station_code,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

// HasStationCode reports whether the location is addressed by a forecast station code.
func (l ResolvedLocation) HasStationCode() bool {
	return l.StationCode != ""
}

// UserLocation pairs a user with their resolved location, as returned by
// the repository when enumerating notification targets.
type UserLocation struct {
	UserID   string
	Location ResolvedLocation
}
