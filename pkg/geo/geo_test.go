package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64 // meters
		tol      float64
	}{
		{
			name:     "Same point",
			p1:       Point{Lat: 35.6812, Lon: 139.7671},
			p2:       Point{Lat: 35.6812, Lon: 139.7671},
			expected: 0,
			tol:      0.01,
		},
		{
			name:     "Tokyo station to Shimbashi",
			p1:       Point{Lat: 35.6812, Lon: 139.7671},
			p2:       Point{Lat: 35.6586, Lon: 139.7454},
			expected: 3190,
			tol:      60,
		},
		{
			name:     "One degree of latitude at equator",
			p1:       Point{Lat: 0, Lon: 0},
			p2:       Point{Lat: 1, Lon: 0},
			expected: 111195,
			tol:      100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.p1, tt.p2)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("Distance() = %.1f, expected %.1f ± %.1f", got, tt.expected, tt.tol)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lat: 48.8566, Lon: 2.3522}
	b := Point{Lat: 51.5074, Lon: -0.1278}
	if d1, d2 := Distance(a, b), Distance(b, a); math.Abs(d1-d2) > 1e-6 {
		t.Errorf("Distance not symmetric: %f vs %f", d1, d2)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
		tol      float64
	}{
		{name: "Due north", p1: Point{0, 0}, p2: Point{1, 0}, expected: 0, tol: 0.01},
		{name: "Due east", p1: Point{0, 0}, p2: Point{0, 1}, expected: 90, tol: 0.01},
		{name: "Due south", p1: Point{1, 0}, p2: Point{0, 0}, expected: 180, tol: 0.01},
		{name: "Due west", p1: Point{0, 1}, p2: Point{0, 0}, expected: 270, tol: 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.p1, tt.p2)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("Bearing() = %.2f, expected %.2f", got, tt.expected)
			}
		})
	}
}

func TestDestinationPointRoundTrip(t *testing.T) {
	start := Point{Lat: 35.6812, Lon: 139.7671}
	for _, bearing := range []float64{0, 45, 90, 200, 315} {
		dest := DestinationPoint(start, 1000, bearing)
		if d := Distance(start, dest); math.Abs(d-1000) > 1 {
			t.Errorf("bearing %.0f: distance to destination = %.2f, expected 1000", bearing, d)
		}
		if b := Bearing(start, dest); math.Abs(NormalizeAngle(b-bearing)) > 0.1 {
			t.Errorf("bearing %.0f: observed bearing %.2f", bearing, b)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{0, 0}, {180, 180}, {-180, -180}, {190, -170}, {-190, 170}, {540, 180}, {360, 0},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.out) > 1e-9 {
			t.Errorf("NormalizeAngle(%.0f) = %.2f, expected %.2f", tt.in, got, tt.out)
		}
	}
}

func TestFinite(t *testing.T) {
	if !Finite(Point{Lat: 35.68, Lon: 139.76}) {
		t.Error("valid point rejected")
	}
	bad := []Point{
		{Lat: math.NaN(), Lon: 0},
		{Lat: 0, Lon: math.Inf(1)},
		{Lat: 91, Lon: 0},
		{Lat: 0, Lon: -181},
	}
	for _, p := range bad {
		if Finite(p) {
			t.Errorf("invalid point accepted: %+v", p)
		}
	}
}

func TestPointAtFraction(t *testing.T) {
	ls := ToLineString([]Point{{0, 0}, {0, 1}, {0, 2}})

	start := PointAtFraction(ls, 0)
	if start.Lon != 0 || start.Lat != 0 {
		t.Errorf("fraction 0 = %+v, expected start", start)
	}

	end := PointAtFraction(ls, 1)
	if math.Abs(end.Lon-2) > 1e-9 {
		t.Errorf("fraction 1 = %+v, expected end", end)
	}

	mid := PointAtFraction(ls, 0.5)
	if math.Abs(mid.Lon-1) > 0.01 {
		t.Errorf("fraction 0.5 = %+v, expected lon≈1", mid)
	}

	// Clamping
	if p := PointAtFraction(ls, -1); p != start {
		t.Errorf("negative fraction did not clamp to start: %+v", p)
	}
	if p := PointAtFraction(ls, 2); math.Abs(p.Lon-2) > 1e-9 {
		t.Errorf("fraction >1 did not clamp to end: %+v", p)
	}
}

func TestLineLength(t *testing.T) {
	ls := ToLineString([]Point{{0, 0}, {1, 0}})
	if l := LineLength(ls); math.Abs(l-111195) > 200 {
		t.Errorf("LineLength = %.0f, expected ≈111195", l)
	}
}
