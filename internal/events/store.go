package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/quangdm-dev/socialnews-backend/internal/models"
)

// Store buffers raw interaction events per aggregation key. All operations
// hit the shared external store; handlers keep no buffer state in memory.
type Store interface {
	// Append pushes an event onto the buffer and returns the new window
	// size. Size 1 means the push opened a fresh window and the caller
	// must schedule an aggregation pass.
	Append(ctx context.Context, key models.AggregationKey, event models.RawInteractionEvent) (int64, error)
	// Read returns the buffered events oldest first without clearing.
	Read(ctx context.Context, key models.AggregationKey) ([]models.RawInteractionEvent, error)
	// Drain atomically reads and deletes the buffer, so two racing
	// aggregation passes can never both observe a non-empty window.
	Drain(ctx context.Context, key models.AggregationKey) ([]models.RawInteractionEvent, error)
	// Clear deletes the buffer; clearing an absent buffer is not an error.
	Clear(ctx context.Context, key models.AggregationKey) error
}

// RedisStore implements Store on a Redis list per key with a TTL
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Append(ctx context.Context, key models.AggregationKey, event models.RawInteractionEvent) (int64, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return 0, err
	}

	n, err := s.rdb.RPush(ctx, key.String(), payload).Result()
	if err != nil {
		return 0, err
	}
	// Refresh the TTL on every append; the window close is driven by the
	// scheduled pass, the TTL only bounds orphaned buffers.
	if err := s.rdb.Expire(ctx, key.String(), s.ttl).Err(); err != nil {
		return n, err
	}
	return n, nil
}

func (s *RedisStore) Read(ctx context.Context, key models.AggregationKey) ([]models.RawInteractionEvent, error) {
	raw, err := s.rdb.LRange(ctx, key.String(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeEvents(raw)
}

func (s *RedisStore) Drain(ctx context.Context, key models.AggregationKey) ([]models.RawInteractionEvent, error) {
	var lrange *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key.String(), 0, -1)
		pipe.Del(ctx, key.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeEvents(lrange.Val())
}

func (s *RedisStore) Clear(ctx context.Context, key models.AggregationKey) error {
	return s.rdb.Del(ctx, key.String()).Err()
}

func decodeEvents(raw []string) ([]models.RawInteractionEvent, error) {
	events := make([]models.RawInteractionEvent, 0, len(raw))
	for _, item := range raw {
		var e models.RawInteractionEvent
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
