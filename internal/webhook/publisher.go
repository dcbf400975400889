package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=publisher.go -destination=mocks/publisher_mock.go -package=mocks

const dispatchQueueKey = "dispatch_events"

// Event types pushed to the notification queue. Delivery mechanics past the
// webhook (push, service workers) belong to the consuming side.
const (
	EventTypeSOSCreated   = "sos-created"
	EventTypeSOSAccepted  = "sos-accepted"
	EventTypeHotspotAlert = "hotspot-alert"
)

// Event is one dispatch-domain occurrence queued for webhook delivery.
type Event struct {
	Type      string    `json:"type"`
	SubjectID string    `json:"subject_id"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher queues dispatch events for asynchronous delivery.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisEventPublisher is an EventPublisher backed by a Redis list.
type RedisEventPublisher struct {
	redisClient *redis.Client
}

// NewRedisEventPublisher creates a RedisEventPublisher.
func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
	}
}

// Publish pushes the event onto the left side of the queue list.
func (p *RedisEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, dispatchQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish dispatch event to Redis: %w", err)
	}
	return nil
}
