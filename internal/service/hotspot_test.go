package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/cluster"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/config"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/service"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/service/mocks"
	"go.uber.org/mock/gomock"
)

type hotspotMocks struct {
	hotspots *mocks.MockHotspotRepository
	reports  *mocks.MockReportRepository
	runner   *mocks.MockModelRunner
}

func newHotspotService(t *testing.T) (service.HotspotService, hotspotMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := hotspotMocks{
		hotspots: mocks.NewMockHotspotRepository(ctrl),
		reports:  mocks.NewMockReportRepository(ctrl),
		runner:   mocks.NewMockModelRunner(ctrl),
	}
	cfg := &config.Config{
		HotspotCacheTTL:     time.Hour,
		HotspotModelTimeout: 5 * time.Second,
		HotspotCorpusDays:   90,
	}
	svc := service.NewHotspotService(m.hotspots, m.reports, m.runner, testLogger(), cfg)
	return svc, m
}

func someClusters() []models.Cluster {
	return []models.Cluster{
		{Center: [2]float64{72.8311, 21.1702}, RadiusMeters: 1500, Density: 12, PrimaryType: "theft"},
		{Center: [2]float64{72.8400, 21.1800}, RadiusMeters: 800, Density: 5, PrimaryType: "assault"},
	}
}

func TestGetHotspots(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh snapshot served without model run", func(t *testing.T) {
		svc, m := newHotspotService(t)

		m.hotspots.EXPECT().Latest(gomock.Any()).Return(&models.HotspotSnapshot{
			Clusters:    someClusters(),
			LastUpdated: time.Now().Add(-time.Minute),
		}, nil)

		clusters, err := svc.GetHotspots(ctx)
		require.NoError(t, err)
		assert.Equal(t, someClusters(), clusters)
	})

	t.Run("cold start computes synchronously", func(t *testing.T) {
		svc, m := newHotspotService(t)

		m.hotspots.EXPECT().Latest(gomock.Any()).Return(nil, nil)
		m.reports.EXPECT().RecentWithCoordinates(gomock.Any(), gomock.Any()).Return([]models.Report{{CrimeType: "theft"}}, nil)
		m.runner.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(someClusters(), nil)
		m.hotspots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		clusters, err := svc.GetHotspots(ctx)
		require.NoError(t, err)
		assert.Equal(t, someClusters(), clusters)
	})

	t.Run("cold start model failure serves empty set", func(t *testing.T) {
		svc, m := newHotspotService(t)

		m.hotspots.EXPECT().Latest(gomock.Any()).Return(nil, nil)
		m.reports.EXPECT().RecentWithCoordinates(gomock.Any(), gomock.Any()).Return([]models.Report{}, nil)
		m.runner.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(nil, cluster.ErrNoResult)

		clusters, err := svc.GetHotspots(ctx)
		require.NoError(t, err)
		assert.Empty(t, clusters)
	})

	t.Run("store read failure treated as cold start", func(t *testing.T) {
		svc, m := newHotspotService(t)

		m.hotspots.EXPECT().Latest(gomock.Any()).Return(nil, assert.AnError)
		m.reports.EXPECT().RecentWithCoordinates(gomock.Any(), gomock.Any()).Return([]models.Report{}, nil)
		m.runner.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(someClusters(), nil)
		m.hotspots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		clusters, err := svc.GetHotspots(ctx)
		require.NoError(t, err)
		assert.Equal(t, someClusters(), clusters)
	})

	t.Run("stale snapshot served immediately and refreshed off-path", func(t *testing.T) {
		svc, m := newHotspotService(t)

		stale := &models.HotspotSnapshot{
			Clusters:    someClusters(),
			LastUpdated: time.Now().Add(-2 * time.Hour),
		}
		refreshed := make(chan struct{})

		m.hotspots.EXPECT().Latest(gomock.Any()).Return(stale, nil)
		m.reports.EXPECT().RecentWithCoordinates(gomock.Any(), gomock.Any()).Return([]models.Report{}, nil)
		m.runner.EXPECT().Compute(gomock.Any(), gomock.Any()).Return([]models.Cluster{}, nil)
		m.hotspots.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, *models.HotspotSnapshot) error {
				close(refreshed)
				return nil
			})

		clusters, err := svc.GetHotspots(ctx)
		require.NoError(t, err)
		assert.Equal(t, stale.Clusters, clusters, "the caller gets the stale snapshot, not the refresh result")

		select {
		case <-refreshed:
		case <-time.After(2 * time.Second):
			t.Fatal("background refresh never persisted a snapshot")
		}
	})

	t.Run("failed background refresh keeps the previous snapshot", func(t *testing.T) {
		svc, m := newHotspotService(t)

		stale := &models.HotspotSnapshot{
			Clusters:    someClusters(),
			LastUpdated: time.Now().Add(-2 * time.Hour),
		}
		attempted := make(chan struct{})

		m.hotspots.EXPECT().Latest(gomock.Any()).Return(stale, nil)
		m.reports.EXPECT().RecentWithCoordinates(gomock.Any(), gomock.Any()).Return([]models.Report{}, nil)
		m.runner.EXPECT().Compute(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, []models.Report) ([]models.Cluster, error) {
				close(attempted)
				return nil, cluster.ErrNoResult
			})
		// No Save expectation: a failed run must never replace the snapshot.

		clusters, err := svc.GetHotspots(ctx)
		require.NoError(t, err)
		assert.Equal(t, stale.Clusters, clusters)

		select {
		case <-attempted:
		case <-time.After(2 * time.Second):
			t.Fatal("background refresh was never attempted")
		}
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("forces recomputation regardless of freshness", func(t *testing.T) {
		svc, m := newHotspotService(t)

		m.reports.EXPECT().RecentWithCoordinates(gomock.Any(), gomock.Any()).Return([]models.Report{{CrimeType: "theft"}}, nil)
		m.runner.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(someClusters(), nil)
		m.hotspots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		clusters, err := svc.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, someClusters(), clusters)
	})

	t.Run("model failure propagates", func(t *testing.T) {
		svc, m := newHotspotService(t)

		m.reports.EXPECT().RecentWithCoordinates(gomock.Any(), gomock.Any()).Return([]models.Report{}, nil)
		m.runner.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(nil, cluster.ErrNoResult)

		_, err := svc.Refresh(ctx)
		assert.ErrorIs(t, err, cluster.ErrNoResult)
	})

	t.Run("persist failure still returns the fresh result", func(t *testing.T) {
		svc, m := newHotspotService(t)

		m.reports.EXPECT().RecentWithCoordinates(gomock.Any(), gomock.Any()).Return([]models.Report{}, nil)
		m.runner.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(someClusters(), nil)
		m.hotspots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(assert.AnError)

		clusters, err := svc.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, someClusters(), clusters)
	})

	t.Run("corpus window uses the configured day span", func(t *testing.T) {
		svc, m := newHotspotService(t)

		m.reports.EXPECT().RecentWithCoordinates(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, since time.Time) ([]models.Report, error) {
				expected := time.Now().AddDate(0, 0, -90)
				assert.WithinDuration(t, expected, since, time.Minute)
				return []models.Report{}, nil
			})
		m.runner.EXPECT().Compute(gomock.Any(), gomock.Any()).Return([]models.Cluster{}, nil)
		m.hotspots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Refresh(ctx)
		assert.NoError(t, err)
	})
}
