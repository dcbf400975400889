package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/config"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
)

//go:generate mockgen -source=hotspot.go -destination=mocks/hotspot_mock.go -package=mocks

// HotspotRepository persists hotspot snapshots. Latest returns (nil, nil)
// when no snapshot has ever been written.
type HotspotRepository interface {
	Latest(ctx context.Context) (*models.HotspotSnapshot, error)
	Save(ctx context.Context, snapshot *models.HotspotSnapshot) error
}

// ReportRepository reads the recent report corpus used as model input.
type ReportRepository interface {
	RecentWithCoordinates(ctx context.Context, since time.Time) ([]models.Report, error)
}

// ModelRunner computes clusters from a report corpus. Implemented by
// cluster.Runner; any failure is returned as cluster.ErrNoResult.
type ModelRunner interface {
	Compute(ctx context.Context, reports []models.Report) ([]models.Cluster, error)
}

// HotspotService is the read-through hotspot cache with
// stale-while-revalidate-on-failure semantics: staleness triggers a refresh
// attempt, a failed attempt keeps serving the last good snapshot.
type HotspotService interface {
	GetHotspots(ctx context.Context) ([]models.Cluster, error)
	Refresh(ctx context.Context) ([]models.Cluster, error)
}

type hotspotService struct {
	hotspots HotspotRepository
	reports  ReportRepository
	runner   ModelRunner
	logger   *logrus.Logger
	cfg      *config.Config

	refreshing atomic.Bool
	now        func() time.Time
}

// NewHotspotService builds the cache manager.
func NewHotspotService(
	hotspots HotspotRepository,
	reports ReportRepository,
	runner ModelRunner,
	logger *logrus.Logger,
	cfg *config.Config,
) HotspotService {
	return &hotspotService{
		hotspots: hotspots,
		reports:  reports,
		runner:   runner,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// GetHotspots returns the current cluster set.
//
//   - fresh snapshot: returned as-is.
//   - stale snapshot: returned immediately while a single background refresh
//     runs; geofence checks are never blocked by the model.
//   - no snapshot: one synchronous compute attempt; if that fails too the
//     result is an empty list, never an error visible to the caller.
func (s *hotspotService) GetHotspots(ctx context.Context) ([]models.Cluster, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "hotspot",
		"method":  "GetHotspots",
	})

	snapshot, err := s.hotspots.Latest(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to read hotspot snapshot, treating as missing")
		snapshot = nil
	}

	if snapshot != nil && !snapshot.Stale(s.cfg.HotspotCacheTTL, s.now()) {
		return snapshot.Clusters, nil
	}

	if snapshot == nil {
		// Cold start: nothing to fall back on, compute in the caller.
		clusters, err := s.recompute(ctx)
		if err != nil {
			log.WithError(err).Warn("Cold-start recomputation failed, serving empty hotspot set")
			return []models.Cluster{}, nil
		}
		return clusters, nil
	}

	// Stale but present: serve the last good value and refresh off-path.
	if s.refreshing.CompareAndSwap(false, true) {
		go func() {
			defer s.refreshing.Store(false)

			bgCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HotspotModelTimeout+30*time.Second)
			defer cancel()

			if _, err := s.recompute(bgCtx); err != nil {
				s.logger.WithError(err).Warn("Background hotspot refresh failed, keeping previous snapshot")
			}
		}()
	}
	log.WithField("age", s.now().Sub(snapshot.LastUpdated)).Debug("Serving stale hotspot snapshot")
	return snapshot.Clusters, nil
}

// Refresh forces a synchronous recomputation, bypassing the TTL check.
func (s *hotspotService) Refresh(ctx context.Context) ([]models.Cluster, error) {
	clusters, err := s.recompute(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: hotspot refresh failed: %w", err)
	}
	return clusters, nil
}

// recompute runs the model over the recent corpus and persists the result.
// A model failure propagates so callers can apply the fallback rule; a
// persistence failure after a successful run is logged but the fresh result
// is still returned.
func (s *hotspotService) recompute(ctx context.Context) ([]models.Cluster, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "hotspot",
		"method":  "recompute",
	})

	since := s.now().AddDate(0, 0, -s.cfg.HotspotCorpusDays)
	reports, err := s.reports.RecentWithCoordinates(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("could not load report corpus: %w", err)
	}

	clusters, err := s.runner.Compute(ctx, reports)
	if err != nil {
		return nil, err
	}

	snapshot := &models.HotspotSnapshot{
		Clusters:    clusters,
		LastUpdated: s.now(),
	}
	if err := s.hotspots.Save(ctx, snapshot); err != nil {
		log.WithError(err).Error("Failed to persist hotspot snapshot")
		return clusters, nil
	}

	log.WithField("clusters", len(clusters)).Info("Hotspot snapshot refreshed")
	return clusters, nil
}
