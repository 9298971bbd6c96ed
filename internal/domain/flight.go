package domain

// Seat availability for one flight, keyed by FlightId by the caller.
// Fetched on demand to decorate a Path; never cached across queries.
type Flight struct {
	Src   string `json:"Src"`
	Dest  string `json:"Dest"`
	Seats int    `json:"Seats"`
}

// Full reports whether the flight has no seats left. A full flight is still
// selectable for reservation; the backend decides.
func (f Flight) Full() bool { return f.Seats <= 0 }
