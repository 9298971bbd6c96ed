package domain

import (
	"math"
	"reflect"
	"testing"
)

func TestPathFlightIDs(t *testing.T) {
	path := Path{
		{FlightId: "f1"},
		{FlightId: "f2"},
		{FlightId: ""},
		{FlightId: "f1"},
		{FlightId: "f3"},
	}

	got := path.FlightIDs()
	want := []string{"f1", "f2", "f3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FlightIDs() = %v, want %v", got, want)
	}

	if ids := Path(nil).FlightIDs(); len(ids) != 0 {
		t.Fatalf("nil path FlightIDs() = %v, want empty", ids)
	}
}

func TestSegmentDistance(t *testing.T) {
	seg := PathSegment{
		FlightId: "f1",
		Path: []PathPoint{
			{Name: "São Paulo", Latitude: -23.5505, Longitude: -46.6333},
			{Name: "Rio de Janeiro", Latitude: -22.9068, Longitude: -43.1729},
		},
	}

	// roughly 360 km between the two city centres
	got := seg.DistanceKm()
	if math.Abs(got-361) > 5 {
		t.Fatalf("DistanceKm() = %.1f, want ~361", got)
	}

	malformed := PathSegment{FlightId: "f2", Path: []PathPoint{{Name: "Natal"}}}
	if d := malformed.DistanceKm(); d != 0 {
		t.Fatalf("malformed segment DistanceKm() = %v, want 0", d)
	}
	if _, _, ok := malformed.Endpoints(); ok {
		t.Fatal("malformed segment Endpoints() ok = true, want false")
	}
}

func TestFlightFull(t *testing.T) {
	cases := []struct {
		seats int
		full  bool
	}{
		{seats: 3, full: false},
		{seats: 0, full: true},
		{seats: -1, full: true},
	}
	for _, c := range cases {
		if got := (Flight{Seats: c.seats}).Full(); got != c.full {
			t.Errorf("Flight{Seats: %d}.Full() = %v, want %v", c.seats, got, c.full)
		}
	}
}
