package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Service tracks spectators per fight. Each viewer heartbeats while
// watching; a viewer that stops heartbeating ages out with the key TTL.
type Service interface {
	Heartbeat(ctx context.Context, fightID, userID uuid.UUID) error
	Count(ctx context.Context, fightID uuid.UUID) (int64, error)
}

type service struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewService(rdb *redis.Client, ttl time.Duration) Service {
	return &service{redis: rdb, ttl: ttl}
}

func (s *service) Heartbeat(ctx context.Context, fightID, userID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}
	key := fmt.Sprintf("fight:%s:spectator:%s", fightID, userID)
	return s.redis.Set(ctx, key, 1, s.ttl).Err()
}

func (s *service) Count(ctx context.Context, fightID uuid.UUID) (int64, error) {
	if s.redis == nil {
		return 0, nil
	}
	pattern := fmt.Sprintf("fight:%s:spectator:*", fightID)
	keys, err := s.redis.Keys(ctx, pattern).Result()
	if err != nil {
		return 0, err
	}
	return int64(len(keys)), nil
}
