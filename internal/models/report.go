package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is one crime report row from the platform's report corpus. The
// dispatch core only reads it as model input; CRUD lives elsewhere.
// Zero coordinates are the sentinel for "location unknown" and are filtered
// out before the corpus reaches the clustering model.
type Report struct {
	ID         uuid.UUID `json:"id"`
	CrimeType  string    `json:"crimeType"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lng"`
	ReportedAt time.Time `json:"reportedAt"`
}

// HasLocation reports whether the report carries usable coordinates.
func (r Report) HasLocation() bool {
	return r.Latitude != 0 || r.Longitude != 0
}

// ResponderLocation is a read-only snapshot of a responder's last known
// position, supplied by the user directory per dispatch decision.
type ResponderLocation struct {
	ResponderID string  `json:"responder_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}
