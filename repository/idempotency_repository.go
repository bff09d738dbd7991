package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KingAshu22/Parichay-Admin/models"
	"github.com/redis/go-redis/v9"
)

const pendingMarker = "pending"

// IdempotencyRepository guards checkout replays keyed by the client-supplied
// Idempotency-Key header. A key is reserved before the attempt starts and is
// either released (safe failure), left reserved (unsafe failure, so a blind
// retry cannot create a second payment intent) or overwritten with the
// completed response for replay.
type IdempotencyRepository interface {
	// Reserve marks the key as in flight. Returns false if the key is
	// already reserved or completed.
	Reserve(ctx context.Context, key string) (bool, error)
	// Get returns the stored response for a completed attempt, or
	// inFlight=true while the attempt is still pending.
	Get(ctx context.Context, key string) (*models.CheckoutResponse, bool, error)
	StoreResult(ctx context.Context, key string, resp *models.CheckoutResponse) error
	Release(ctx context.Context, key string) error
}

type redisIdempotencyRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyRepository(client *redis.Client, ttl time.Duration) IdempotencyRepository {
	return &redisIdempotencyRepo{client: client, ttl: ttl}
}

func (r *redisIdempotencyRepo) getKey(key string) string {
	return fmt.Sprintf("checkout:idem:%s", key)
}

func (r *redisIdempotencyRepo) Reserve(ctx context.Context, key string) (bool, error) {
	return r.client.SetNX(ctx, r.getKey(key), pendingMarker, r.ttl).Result()
}

func (r *redisIdempotencyRepo) Get(ctx context.Context, key string) (*models.CheckoutResponse, bool, error) {
	data, err := r.client.Get(ctx, r.getKey(key)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if data == pendingMarker {
		return nil, true, nil
	}

	var resp models.CheckoutResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, false, err
	}
	return &resp, false, nil
}

func (r *redisIdempotencyRepo) StoreResult(ctx context.Context, key string, resp *models.CheckoutResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.getKey(key), data, r.ttl).Err()
}

func (r *redisIdempotencyRepo) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.getKey(key)).Err()
}
