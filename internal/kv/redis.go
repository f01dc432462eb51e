package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the Store contract with Redis so session state survives
// restarts and is shared across instances. Entries expire after TTL; zero
// means no expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Get(key string) (string, bool) {
	v, err := s.client.Get(context.Background(), key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (s *RedisStore) Set(key, value string) {
	// best effort: session state is advisory, a failed write only means a
	// cold cache on the next read
	_ = s.client.Set(context.Background(), key, value, s.ttl).Err()
}

func (s *RedisStore) Delete(key string) {
	_ = s.client.Del(context.Background(), key).Err()
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
