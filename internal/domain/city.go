package domain

// A city from the static catalog. Name is the unique key.
type City struct {
	Name      string  `json:"Name" db:"name"`
	State     string  `json:"State" db:"state"`
	Latitude  float64 `json:"Latitude" db:"latitude"`
	Longitude float64 `json:"Longitude" db:"longitude"`
}

func (c City) Coordinates() Coordinates {
	return Coordinates{Lat: c.Latitude, Lon: c.Longitude}
}
