package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/KevinQuintanilla/ecommerce-aguas-flutter/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the order-status fast path and the webhook event
// dedup marker. Everything here is best-effort; the database stays the
// source of truth.
type RedisCache struct {
	rdb       *redis.Client
	statusTTL time.Duration
	eventTTL  time.Duration
}

func NewRedisCache(rdb *redis.Client, statusTTL, eventTTL time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, statusTTL: statusTTL, eventTTL: eventTTL}
}

func statusKey(orderID int64) string {
	return "order:status:" + strconv.FormatInt(orderID, 10)
}

func (r *RedisCache) SetStatus(ctx context.Context, orderID int64, statusID int) error {
	return r.rdb.Set(ctx, statusKey(orderID), statusID, r.statusTTL).Err()
}

func (r *RedisCache) GetStatus(ctx context.Context, orderID int64) (int, bool, error) {
	val, err := r.rdb.Get(ctx, statusKey(orderID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func eventKey(eventID string) string {
	return "webhook:event:" + eventID
}

// EventProcessed reports whether the provider event id was already
// applied cleanly.
func (r *RedisCache) EventProcessed(ctx context.Context, eventID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, eventKey(eventID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkEventProcessed records a provider event id after its effects went
// through. A concurrent duplicate slipping past the check is harmless:
// the conditional database updates write nothing the second time.
func (r *RedisCache) MarkEventProcessed(ctx context.Context, eventID string) error {
	return r.rdb.Set(ctx, eventKey(eventID), "1", r.eventTTL).Err()
}

var _ usecase.OrderCache = (*RedisCache)(nil)
