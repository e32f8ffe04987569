package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 2 * time.Second

// RedisStore keeps values in Redis without expiry.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: redisTimeout,
		ReadTimeout: redisTimeout,
		MaxRetries:  1,
	})
	return &RedisStore{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *RedisStore) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisStore) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
