package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/config"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/geo"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/hub"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/webhook"
)

//go:generate mockgen -source=geofence.go -destination=mocks/geofence_mock.go -package=mocks

// LocationCheckRepository persists geofence check records and serves the
// distinct-user stats window.
type LocationCheckRepository interface {
	SaveLocationCheck(ctx context.Context, check *models.LocationCheck) error
	GetLocationCheckStats(ctx context.Context, minutes int) (int, error)
}

// HotspotAlertEvent is sent to the citizen whose location entered a hotspot.
type HotspotAlertEvent struct {
	Cluster   models.Cluster `json:"cluster"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
}

// GeofenceService evaluates citizen locations against the hotspot snapshot.
type GeofenceService interface {
	// CheckLocation returns every cluster whose radius contains the point and
	// records the check.
	CheckLocation(ctx context.Context, userID string, loc geo.Point) ([]models.Cluster, error)
	// EvaluateSession runs CheckLocation for a live citizen session and emits
	// at most one deduplicated hotspot-alert event.
	EvaluateSession(ctx context.Context, sess *hub.Session, loc geo.Point)
	GetStats(ctx context.Context) (int, error)
}

type geofenceService struct {
	hotspots HotspotService
	checks   LocationCheckRepository
	notifier SessionNotifier
	events   webhook.EventPublisher
	logger   *logrus.Logger
	cfg      *config.Config
}

// NewGeofenceService builds the evaluator.
func NewGeofenceService(
	hotspots HotspotService,
	checks LocationCheckRepository,
	notifier SessionNotifier,
	events webhook.EventPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) GeofenceService {
	return &geofenceService{
		hotspots: hotspots,
		checks:   checks,
		notifier: notifier,
		events:   events,
		logger:   logger,
		cfg:      cfg,
	}
}

// CheckLocation matches the point against every cluster by great-circle
// distance. Zero coordinates are dropped per the location sentinel rule.
func (s *geofenceService) CheckLocation(ctx context.Context, userID string, loc geo.Point) ([]models.Cluster, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "geofence",
		"method":  "CheckLocation",
		"user_id": userID,
	})

	if loc.IsZero() {
		log.Debug("Dropping location check without usable coordinates")
		return nil, ErrMissingLocation
	}

	clusters, err := s.hotspots.GetHotspots(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not load hotspots: %w", err)
	}

	matches := make([]models.Cluster, 0)
	for _, c := range clusters {
		if geo.WithinRadius(loc, geo.PointFromLngLat(c.Center), c.RadiusMeters) {
			matches = append(matches, c)
		}
	}

	check := &models.LocationCheck{
		UserID:      userID,
		Latitude:    loc.Lat,
		Longitude:   loc.Lng,
		IsDangerous: len(matches) > 0,
	}
	if err := s.checks.SaveLocationCheck(ctx, check); err != nil {
		// The check record is advisory; losing one never fails the lookup.
		log.WithError(err).Warn("Failed to persist location check")
	}

	log.WithField("matches", len(matches)).Debug("Location check completed")
	return matches, nil
}

// EvaluateSession alerts the citizen about the highest-density matching
// cluster. Ties resolve to the first match in iteration order. Repeats for
// the cluster the session was last alerted about are suppressed until the
// cooldown elapses.
func (s *geofenceService) EvaluateSession(ctx context.Context, sess *hub.Session, loc geo.Point) {
	matches, err := s.CheckLocation(ctx, sess.SubjectID, loc)
	if err != nil || len(matches) == 0 {
		return
	}

	top := matches[0]
	for _, c := range matches[1:] {
		if c.Density > top.Density {
			top = c
		}
	}

	now := time.Now()
	if !sess.ShouldAlert(clusterKey(top), s.cfg.AlertCooldown, now) {
		return
	}

	alert := HotspotAlertEvent{
		Cluster:   top,
		Message:   fmt.Sprintf("You are entering a reported %s hotspot. Stay alert.", top.PrimaryType),
		Timestamp: now,
	}
	s.notifier.Send(hub.RoleCitizen, sess.SubjectID, EventHotspotAlert, alert)

	if err := s.events.Publish(ctx, webhook.Event{
		Type:      webhook.EventTypeHotspotAlert,
		SubjectID: sess.SubjectID,
		Payload:   alert,
		Timestamp: now,
	}); err != nil {
		s.logger.WithError(err).Warn("Failed to queue hotspot alert event")
	}
}

// GetStats returns the number of distinct users checked within the window.
func (s *geofenceService) GetStats(ctx context.Context) (int, error) {
	count, err := s.checks.GetLocationCheckStats(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		return 0, fmt.Errorf("service: could not get location check stats: %w", err)
	}
	return count, nil
}

// clusterKey identifies a cluster for alert dedup purposes.
func clusterKey(c models.Cluster) string {
	return fmt.Sprintf("%.5f,%.5f,%s", c.Center[0], c.Center[1], c.PrimaryType)
}
