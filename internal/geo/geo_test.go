package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// One degree of latitude is ~111.195 km on the sphere used by Haversine,
// so offsetting latitude is a convenient way to build probes at a known
// distance.
const kmPerLatDegree = 111.195

func TestHaversine_Symmetry(t *testing.T) {
	a := Point{Lat: 19.0760, Lng: 72.8777}
	b := Point{Lat: 21.1702, Lng: 72.8311}

	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
}

func TestHaversine_Identity(t *testing.T) {
	p := Point{Lat: 55.75, Lng: 37.61}

	assert.Equal(t, 0.0, Haversine(p, p))
}

func TestHaversine_KnownDistance(t *testing.T) {
	a := Point{Lat: 21.1702, Lng: 72.8311}
	b := Point{Lat: 21.1702 + 1.5/kmPerLatDegree, Lng: 72.8311}

	assert.InDelta(t, 1.5, Haversine(a, b), 0.01)
}

func TestWithinRadius_Membership(t *testing.T) {
	center := Point{Lat: 21.1702, Lng: 72.8311}
	const radiusMeters = 2000

	inside := Point{Lat: center.Lat + 1.5/kmPerLatDegree, Lng: center.Lng}
	outside := Point{Lat: center.Lat + 2.5/kmPerLatDegree, Lng: center.Lng}

	assert.True(t, WithinRadius(inside, center, radiusMeters))
	assert.False(t, WithinRadius(outside, center, radiusMeters))
}

func TestPointFromLngLat_Reorders(t *testing.T) {
	p := PointFromLngLat([2]float64{72.8311, 21.1702})

	assert.Equal(t, 21.1702, p.Lat)
	assert.Equal(t, 72.8311, p.Lng)
}

func TestPoint_IsZero(t *testing.T) {
	assert.True(t, Point{}.IsZero())
	assert.False(t, Point{Lat: 0.0001}.IsZero())
}
