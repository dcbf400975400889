package models

import "time"

// Cluster is one crime hotspot zone produced by the clustering model.
// Center keeps the model's [lng, lat] storage order; geo.PointFromLngLat is
// the only place allowed to reorder it for distance math.
type Cluster struct {
	Center       [2]float64 `json:"center"`
	RadiusMeters float64    `json:"radius"`
	Density      int        `json:"density"`
	PrimaryType  string     `json:"primary_type"`
}

// HotspotSnapshot is the persisted result of one successful model run.
// An empty Clusters slice with a fresh LastUpdated is a valid "no hotspots"
// result; a failed recomputation never replaces a previously good snapshot.
type HotspotSnapshot struct {
	Clusters    []Cluster `json:"clusters"`
	LastUpdated time.Time `json:"last_updated"`
}

// Stale reports whether the snapshot is older than ttl.
func (s *HotspotSnapshot) Stale(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.LastUpdated) > ttl
}
