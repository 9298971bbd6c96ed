package domain

// One endpoint of a flight segment as returned by the route endpoint.
type PathPoint struct {
	Name      string  `json:"Name"`
	State     string  `json:"State"`
	Country   string  `json:"Country"`
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}

func (p PathPoint) Coordinates() Coordinates {
	return Coordinates{Lat: p.Latitude, Lon: p.Longitude}
}

// A single flight leg. Path holds the ordered (source, destination) pair.
type PathSegment struct {
	FlightId string      `json:"FlightId"`
	Path     []PathPoint `json:"Path"`
}

// Endpoints returns the segment's source and destination.
// ok is false when the backend sent fewer than two points.
func (s PathSegment) Endpoints() (src PathPoint, dest PathPoint, ok bool) {
	if len(s.Path) < 2 {
		return PathPoint{}, PathPoint{}, false
	}
	return s.Path[0], s.Path[len(s.Path)-1], true
}

// DistanceKm is the great-circle length of the segment, or 0 if malformed.
func (s PathSegment) DistanceKm() float64 {
	src, dest, ok := s.Endpoints()
	if !ok {
		return 0
	}
	return src.Coordinates().DistanceKm(dest.Coordinates())
}

// One candidate itinerary: an ordered sequence of flight segments.
// A Path is replaced wholesale on every new query and never mutated.
type Path []PathSegment

// FlightIDs returns the flight ids of the path in order, without duplicates
// and skipping empty ids.
func (p Path) FlightIDs() []string {
	seen := make(map[string]struct{}, len(p))
	ids := make([]string, 0, len(p))
	for _, seg := range p {
		if seg.FlightId == "" {
			continue
		}
		if _, ok := seen[seg.FlightId]; ok {
			continue
		}
		seen[seg.FlightId] = struct{}{}
		ids = append(ids, seg.FlightId)
	}
	return ids
}

func (p Path) DistanceKm() float64 {
	total := 0.0
	for _, seg := range p {
		total += seg.DistanceKm()
	}
	return total
}
