package service

import (
	"math"

	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/geo"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
)

// NearestResponder returns the responder closest to loc by great-circle
// distance, or nil when the set is empty. Responders without usable
// coordinates are skipped. Ties resolve to the first responder encountered
// with the minimum distance.
func NearestResponder(loc geo.Point, responders []models.ResponderLocation) *models.ResponderLocation {
	var best *models.ResponderLocation
	bestDist := math.MaxFloat64

	for i := range responders {
		p := geo.Point{Lat: responders[i].Latitude, Lng: responders[i].Longitude}
		if p.IsZero() {
			continue
		}
		if d := geo.Haversine(loc, p); d < bestDist {
			bestDist = d
			best = &responders[i]
		}
	}
	return best
}
