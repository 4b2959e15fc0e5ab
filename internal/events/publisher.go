package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	eventQueueKey = "safety_events"
)

const (
	IncidentCreated      = "incident-created"
	IncidentVerified     = "incident-verified"
	IncidentRejected     = "incident-rejected"
	IncidentCorroborated = "incident-corroborated"
	CellUpdated          = "cell-updated"
	NeighborhoodUpdated  = "neighborhood-updated"
)

// Event - уведомление для внешних слушателей (UI, сокеты, вебхуки)
type Event struct {
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent сериализует payload в событие
func NewEvent(name string, payload any, at time.Time) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", name, err)
	}
	return Event{Name: name, Payload: data, Timestamp: at}, nil
}

// Publisher - интерфейс для публикации событий
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher - реализация Publisher, использующая очередь Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста через BRPOP
	if err := p.redisClient.LPush(ctx, eventQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event to Redis: %w", err)
	}
	return nil
}

// Fanout рассылает событие во все шины. Ошибки отдельных шин не прерывают рассылку.
type Fanout struct {
	publishers []Publisher
	logger     *logrus.Logger
}

func NewFanout(logger *logrus.Logger, publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers, logger: logger}
}

func (f *Fanout) Publish(ctx context.Context, event Event) error {
	var failed int
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			failed++
			f.logger.WithError(err).WithField("event", event.Name).Warn("Failed to publish event")
		}
	}
	if failed > 0 && failed == len(f.publishers) {
		return fmt.Errorf("event %s not delivered to any bus", event.Name)
	}
	return nil
}
