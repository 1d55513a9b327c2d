package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// ToLineString converts a point sequence into an orb.LineString (lon/lat order).
func ToLineString(points []Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = orb.Point{p.Lon, p.Lat}
	}
	return ls
}

// FromOrbPoint converts an orb.Point (lon/lat) back to a Point.
func FromOrbPoint(p orb.Point) Point {
	return Point{Lat: p[1], Lon: p[0]}
}

// LineLength returns the geodesic length of a line string in meters.
func LineLength(ls orb.LineString) float64 {
	return orbgeo.LengthHaversine(ls)
}

// PointAtFraction returns the point a fraction [0,1] of the way along the
// line, measured by geodesic length. Fractions outside [0,1] clamp to the
// endpoints. An empty line returns the zero Point.
func PointAtFraction(ls orb.LineString, frac float64) Point {
	if len(ls) == 0 {
		return Point{}
	}
	if len(ls) == 1 || frac <= 0 {
		return FromOrbPoint(ls[0])
	}
	if frac >= 1 {
		return FromOrbPoint(ls[len(ls)-1])
	}

	target := LineLength(ls) * frac
	walked := 0.0
	for i := 0; i < len(ls)-1; i++ {
		seg := orbgeo.DistanceHaversine(ls[i], ls[i+1])
		if walked+seg >= target && seg > 0 {
			segFrac := (target - walked) / seg
			a := FromOrbPoint(ls[i])
			b := FromOrbPoint(ls[i+1])
			return Point{
				Lat: a.Lat + (b.Lat-a.Lat)*segFrac,
				Lon: a.Lon + (b.Lon-a.Lon)*segFrac,
			}
		}
		walked += seg
	}
	return FromOrbPoint(ls[len(ls)-1])
}

// Bound returns the bounding box of a line string, or false for an empty line.
func Bound(ls orb.LineString) (orb.Bound, bool) {
	if len(ls) == 0 {
		return orb.Bound{}, false
	}
	return ls.Bound(), true
}
