package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safety_heatmap/internal/service"
)

const reputationKey = "user_reputation"

// ReputationStore читает репутацию пользователей из хеша Redis, который ведет внешний сервис
type ReputationStore struct {
	redisClient *redis.Client
}

func NewReputationStore(redisClient *redis.Client) service.ReputationStore {
	return &ReputationStore{redisClient: redisClient}
}

// Get возвращает репутацию; неизвестный пользователь имеет репутацию 0
func (s *ReputationStore) Get(ctx context.Context, userID string) (int, error) {
	rep, err := s.redisClient.HGet(ctx, reputationKey, userID).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get reputation: %w", err)
	}
	return rep, nil
}
