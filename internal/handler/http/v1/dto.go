package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateSOSRequest is the body for raising a new SOS incident.
// @Description Request body for raising a new SOS incident
type CreateSOSRequest struct {
	CitizenID string  `json:"citizen_id" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

// CancelSOSRequest identifies the citizen cancelling their incident.
// @Description Request body for cancelling an SOS incident
type CancelSOSRequest struct {
	CitizenID string `json:"citizen_id" validate:"required"`
}

// CompleteSOSRequest identifies the participant closing the incident.
// @Description Request body for completing an SOS incident
type CompleteSOSRequest struct {
	ActorID string `json:"actor_id" validate:"required"`
}

// SOSResponse is the incident representation returned by the API.
// @Description SOS incident state
type SOSResponse struct {
	ID                  uuid.UUID `json:"id"`
	CitizenID           string    `json:"citizen_id"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	Status              string    `json:"status"`
	AssignedResponderID string    `json:"assigned_responder_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// LocationCheckRequest is the body for a geofence check.
// @Description Request body for checking a location against hotspots
type LocationCheckRequest struct {
	UserID    string  `json:"user_id" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

// ClusterResponse is one hotspot zone.
// @Description One crime hotspot cluster
type ClusterResponse struct {
	Center       [2]float64 `json:"center"`
	RadiusMeters float64    `json:"radius"`
	Density      int        `json:"density"`
	PrimaryType  string     `json:"primary_type"`
}

// HotspotsResponse carries the current cluster set.
// @Description Current hotspot cluster set
type HotspotsResponse struct {
	Clusters []ClusterResponse `json:"clusters"`
	Count    int               `json:"count"`
}

// StatsResponse is the distinct-user count for the stats window.
// @Description Distinct users checked within the stats window
type StatsResponse struct {
	UserCount int `json:"user_count"`
}
