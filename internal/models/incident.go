package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentStatus is the lifecycle state of an SOS incident.
type IncidentStatus string

const (
	IncidentPending   IncidentStatus = "pending"
	IncidentAccepted  IncidentStatus = "accepted"
	IncidentCompleted IncidentStatus = "completed"
	IncidentCancelled IncidentStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed from s.
func (s IncidentStatus) Terminal() bool {
	return s == IncidentCompleted || s == IncidentCancelled
}

// Incident is one SOS emergency from citizen creation to terminal state.
// At most one responder may ever hold the accepted assignment.
type Incident struct {
	ID                  uuid.UUID      `json:"id"`
	CitizenID           string         `json:"citizen_id"`
	Latitude            float64        `json:"latitude"`
	Longitude           float64        `json:"longitude"`
	Status              IncidentStatus `json:"status"`
	AssignedResponderID string         `json:"assigned_responder_id,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}
