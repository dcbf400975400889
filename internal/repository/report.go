package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
)

// ReportRepository reads the report corpus and the responder directory. The
// dispatch core never writes either: reports belong to the platform's CRUD
// side, responder positions to the user directory.
type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// RecentWithCoordinates returns reports since the given time, excluding the
// zero-coordinate "location unknown" sentinel rows.
func (r *ReportRepository) RecentWithCoordinates(ctx context.Context, since time.Time) ([]models.Report, error) {
	query := `
		SELECT
			id,
			crime_type,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			reported_at
		FROM reports
		WHERE reported_at >= $1
			AND NOT (ST_X(location::geometry) = 0 AND ST_Y(location::geometry) = 0);
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to read report corpus: %w", err)
	}
	defer rows.Close()

	reports := make([]models.Report, 0)
	for rows.Next() {
		var report models.Report
		err := rows.Scan(
			&report.ID,
			&report.CrimeType,
			&report.Latitude,
			&report.Longitude,
			&report.ReportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report corpus: %w", err)
	}
	return reports, nil
}

// ListResponders returns every responder with their last known coordinates.
func (r *ReportRepository) ListResponders(ctx context.Context) ([]models.ResponderLocation, error) {
	query := `
		SELECT
			responder_id,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude
		FROM responders;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list responders: %w", err)
	}
	defer rows.Close()

	responders := make([]models.ResponderLocation, 0)
	for rows.Next() {
		var responder models.ResponderLocation
		if err := rows.Scan(&responder.ResponderID, &responder.Latitude, &responder.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan responder row: %w", err)
		}
		responders = append(responders, responder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responders: %w", err)
	}
	return responders, nil
}
