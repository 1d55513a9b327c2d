package nav

import (
	"testing"

	"wayfargo/pkg/geo"
)

func TestCheckArrivalLatches(t *testing.T) {
	dest := geo.Point{Lat: 0, Lon: 0}

	at49 := geo.DestinationPoint(dest, 49, 90)
	arrived, latched := CheckArrival(at49, dest, 50, false)
	if !arrived || !latched {
		t.Fatalf("49m out: arrived=%v latched=%v, want true/true", arrived, latched)
	}

	// Drifting back out to 51m must not un-arrive.
	at51 := geo.DestinationPoint(dest, 51, 90)
	arrived, latched = CheckArrival(at51, dest, 50, arrived)
	if !arrived {
		t.Error("latch released on outward drift")
	}
	if latched {
		t.Error("latch reported twice")
	}
}

func TestCheckArrivalOutsideRadius(t *testing.T) {
	dest := geo.Point{Lat: 0, Lon: 0}
	at51 := geo.DestinationPoint(dest, 51, 180)

	arrived, latched := CheckArrival(at51, dest, 50, false)
	if arrived || latched {
		t.Errorf("51m out: arrived=%v latched=%v, want false/false", arrived, latched)
	}
}

func TestCheckArrivalIdempotent(t *testing.T) {
	dest := geo.Point{Lat: 0, Lon: 0}
	at10 := geo.DestinationPoint(dest, 10, 0)

	arrived, latched := CheckArrival(at10, dest, 50, false)
	if !latched {
		t.Fatal("expected latch")
	}
	for i := 0; i < 5; i++ {
		arrived, latched = CheckArrival(at10, dest, 50, arrived)
		if !arrived || latched {
			t.Fatalf("repeat %d: arrived=%v latched=%v", i, arrived, latched)
		}
	}
}

func TestCheckArrivalDefaultRadius(t *testing.T) {
	dest := geo.Point{Lat: 0, Lon: 0}
	at30 := geo.DestinationPoint(dest, 30, 0)

	if arrived, _ := CheckArrival(at30, dest, 0, false); !arrived {
		t.Error("zero radius should fall back to the 50m default")
	}
}
