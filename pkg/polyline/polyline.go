// Package polyline implements the compact ASCII route-geometry encoding used
// on the wire by mapping vendors (1e-5 precision variant). Encoding must stay
// bit-exact: other parties decode what we emit.
package polyline

import (
	"strings"

	"github.com/paulmach/orb"

	"wayfargo/pkg/geo"
)

const precision = 1e5

// Encode converts a point sequence into the encoded polyline string.
func Encode(points []geo.Point) string {
	var sb strings.Builder
	var prevLat, prevLon int64

	for _, p := range points {
		lat := scale(p.Lat)
		lon := scale(p.Lon)
		writeValue(&sb, lat-prevLat)
		writeValue(&sb, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return sb.String()
}

// Decode converts an encoded polyline string back into points.
// Trailing garbage (a truncated final value) yields the points decoded so far.
func Decode(encoded string) []geo.Point {
	var points []geo.Point
	var lat, lon int64
	idx := 0

	for idx < len(encoded) {
		dLat, next, ok := readValue(encoded, idx)
		if !ok {
			break
		}
		dLon, after, ok := readValue(encoded, next)
		if !ok {
			break
		}
		lat += dLat
		lon += dLon
		points = append(points, geo.Point{
			Lat: float64(lat) / precision,
			Lon: float64(lon) / precision,
		})
		idx = after
	}
	return points
}

// DecodeLineString decodes straight into an orb.LineString for geometry consumers.
func DecodeLineString(encoded string) orb.LineString {
	return geo.ToLineString(Decode(encoded))
}

func scale(deg float64) int64 {
	v := deg * precision
	if v >= 0 {
		return int64(v + 0.5)
	}
	return int64(v - 0.5)
}

// writeValue zig-zag-encodes v and emits it as 5-bit groups, low-order group
// first, continuation bit 0x20 on all but the final group, each offset by 63.
func writeValue(sb *strings.Builder, v int64) {
	u := uint64(v) << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		sb.WriteByte(byte((u&0x1f)|0x20) + 63)
		u >>= 5
	}
	sb.WriteByte(byte(u) + 63)
}

// readValue decodes one zig-zag value starting at idx. ok is false when the
// input ends mid-value.
func readValue(s string, idx int) (v int64, next int, ok bool) {
	var u uint64
	shift := uint(0)
	for {
		if idx >= len(s) {
			return 0, idx, false
		}
		b := uint64(s[idx]) - 63
		idx++
		u |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if u&1 != 0 {
		v = ^int64(u >> 1)
	} else {
		v = int64(u >> 1)
	}
	return v, idx, true
}
