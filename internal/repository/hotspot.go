package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/models"
	"github.com/vanditpatel27/Interactive-map-web-application-for-real-time-crime-reporting-sub000/internal/service"
)

const (
	hotspotCacheKey = "hotspots:snapshot"
	hotspotCacheTTL = 5 * time.Minute
)

// HotspotRepository persists hotspot snapshots in Postgres with a Redis
// read-through cache in front. Snapshots are append-only: every successful
// model run inserts a new row, and Latest serves the most recent one.
type HotspotRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewHotspotRepository(db *pgxpool.Pool, redisClient *redis.Client) service.HotspotRepository {
	return &HotspotRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Latest returns the most recent snapshot, or (nil, nil) when none has ever
// been written. A cache failure falls through to Postgres.
func (r *HotspotRepository) Latest(ctx context.Context) (*models.HotspotSnapshot, error) {
	if cached, err := r.fromCache(ctx); err == nil && cached != nil {
		return cached, nil
	}

	snapshot := &models.HotspotSnapshot{}
	var clustersJSON []byte
	query := `
		SELECT clusters, computed_at
		FROM hotspot_snapshots
		ORDER BY computed_at DESC
		LIMIT 1;
	`
	err := r.db.QueryRow(ctx, query).Scan(&clustersJSON, &snapshot.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read latest hotspot snapshot: %w", err)
	}

	if err := json.Unmarshal(clustersJSON, &snapshot.Clusters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hotspot clusters: %w", err)
	}
	if snapshot.Clusters == nil {
		snapshot.Clusters = []models.Cluster{}
	}

	r.setCache(ctx, snapshot)
	return snapshot, nil
}

// Save inserts a new snapshot row and refreshes the cache. Only the cache
// manager calls this; no session code path may write hotspots.
func (r *HotspotRepository) Save(ctx context.Context, snapshot *models.HotspotSnapshot) error {
	clustersJSON, err := json.Marshal(snapshot.Clusters)
	if err != nil {
		return fmt.Errorf("failed to marshal hotspot clusters: %w", err)
	}

	query := `
		INSERT INTO hotspot_snapshots (clusters, computed_at)
		VALUES ($1, $2);
	`
	if _, err := r.db.Exec(ctx, query, clustersJSON, snapshot.LastUpdated); err != nil {
		return fmt.Errorf("failed to save hotspot snapshot: %w", err)
	}

	r.setCache(ctx, snapshot)
	return nil
}

// fromCache tries Redis; (nil, nil) means a miss.
func (r *HotspotRepository) fromCache(ctx context.Context) (*models.HotspotSnapshot, error) {
	val, err := r.redisClient.Get(ctx, hotspotCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hotspot snapshot from cache: %w", err)
	}

	snapshot := &models.HotspotSnapshot{}
	if err := json.Unmarshal(val, snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hotspot snapshot from cache: %w", err)
	}
	return snapshot, nil
}

// setCache is best effort; the database row is the source of truth.
func (r *HotspotRepository) setCache(ctx context.Context, snapshot *models.HotspotSnapshot) {
	val, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	r.redisClient.Set(ctx, hotspotCacheKey, val, hotspotCacheTTL)
}
