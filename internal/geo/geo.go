// Package geo holds the pure coordinate math used by geofencing and
// dispatch. All [lng, lat] reordering happens here and nowhere else.
package geo

import "math"

const earthRadiusKm = 6371.0

// Point is a geographic coordinate in math order (latitude first).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PointFromLngLat converts a [lng, lat] pair, the storage order used by the
// clustering model and GeoJSON, into a Point.
func PointFromLngLat(c [2]float64) Point {
	return Point{Lat: c[1], Lng: c[0]}
}

// IsZero reports whether the point is the "location unknown" sentinel.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WithinRadius reports whether p lies within radiusMeters of center.
func WithinRadius(p, center Point, radiusMeters float64) bool {
	return Haversine(p, center) <= radiusMeters/1000.0
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
