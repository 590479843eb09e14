package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keebstore/storefront/internal/session"
)

const keyPrefix = "storefront:session:"

// RedisService stores visitor sessions as JSON values with a TTL.
type RedisService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisService(rdb *redis.Client, ttl time.Duration) *RedisService {
	return &RedisService{
		rdb: rdb,
		ttl: ttl,
	}
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func (a *RedisService) Ping(ctx context.Context) error {
	return a.rdb.Ping(ctx).Err()
}

func (a *RedisService) Load(ctx context.Context, id string) (*session.State, error) {
	data, err := a.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s session.State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Save writes the state and refreshes its TTL.
func (a *RedisService) Save(ctx context.Context, s *session.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := a.rdb.Set(ctx, key(s.ID), data, a.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *RedisService) Delete(ctx context.Context, id string) error {
	return a.rdb.Del(ctx, key(id)).Err()
}

func key(id string) string {
	return keyPrefix + id
}
