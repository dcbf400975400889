package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/service"
)

// IncidentRepository stores SOS incidents in PostGIS. All lifecycle
// transitions are conditional updates guarded by the current status, so the
// store itself enforces the at-most-one-acceptance invariant even when
// multiple instances race.
type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{db: db}
}

// Create inserts a new pending incident and fills in id and timestamps.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO sos_incidents (citizen_id, location, status)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326), $4)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.CitizenID,
		incident.Longitude,
		incident.Latitude,
		incident.Status,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sos incident: %w", err)
	}
	return nil
}

// GetByID returns an incident by its UUID.
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	incident := &models.Incident{}
	query := `
		SELECT
			id,
			citizen_id,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			status,
			assigned_responder_id,
			created_at,
			updated_at
		FROM sos_incidents
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&incident.ID,
		&incident.CitizenID,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Status,
		&incident.AssignedResponderID,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", service.ErrIncidentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get sos incident by id: %w", err)
	}
	return incident, nil
}

// AssignResponder performs the pending -> accepted compare-and-swap. The
// RowsAffected check is the atomic guard: only one concurrent acceptance can
// see status = 'pending'.
func (r *IncidentRepository) AssignResponder(ctx context.Context, id uuid.UUID, responderID string) (bool, error) {
	query := `
		UPDATE sos_incidents SET
			status = $1,
			assigned_responder_id = $2,
			updated_at = NOW()
		WHERE id = $3 AND status = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query, models.IncidentAccepted, responderID, id, models.IncidentPending)
	if err != nil {
		return false, fmt.Errorf("failed to assign responder: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// TransitionStatus moves the incident to the target status only from one of
// the allowed prior states.
func (r *IncidentRepository) TransitionStatus(ctx context.Context, id uuid.UUID, to models.IncidentStatus, from ...models.IncidentStatus) (bool, error) {
	allowed := make([]string, len(from))
	for i, st := range from {
		allowed[i] = string(st)
	}

	query := `
		UPDATE sos_incidents SET
			status = $1,
			updated_at = NOW()
		WHERE id = $2 AND status = ANY($3);
	`
	cmdTag, err := r.db.Exec(ctx, query, to, id, allowed)
	if err != nil {
		return false, fmt.Errorf("failed to transition incident status: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// ActiveByResponder lists the incidents currently accepted by a responder.
func (r *IncidentRepository) ActiveByResponder(ctx context.Context, responderID string) ([]*models.Incident, error) {
	query := `
		SELECT
			id,
			citizen_id,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			status,
			assigned_responder_id,
			created_at,
			updated_at
		FROM sos_incidents
		WHERE assigned_responder_id = $1 AND status = $2;
	`
	rows, err := r.db.Query(ctx, query, responderID, models.IncidentAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents by responder: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident := &models.Incident{}
		err := rows.Scan(
			&incident.ID,
			&incident.CitizenID,
			&incident.Latitude,
			&incident.Longitude,
			&incident.Status,
			&incident.AssignedResponderID,
			&incident.CreatedAt,
			&incident.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row in ActiveByResponder: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incidents in ActiveByResponder: %w", err)
	}
	return incidents, nil
}

// ReleaseResponder reverts accepted -> pending and clears the assignment,
// used when the assigned responder disconnects.
func (r *IncidentRepository) ReleaseResponder(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE sos_incidents SET
			status = $1,
			assigned_responder_id = '',
			updated_at = NOW()
		WHERE id = $2 AND status = $3;
	`
	cmdTag, err := r.db.Exec(ctx, query, models.IncidentPending, id, models.IncidentAccepted)
	if err != nil {
		return false, fmt.Errorf("failed to release responder: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
