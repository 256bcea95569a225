package ratelimit

import (
	"context"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"
)

type redisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore shares counters across instances. The connection is verified
// up front; later failures fail open.
func NewRedisStore(addr string) (Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &redisStore{
		client:  client,
		prefix:  "userapp:ratelimit:",
		timeout: 250 * time.Millisecond,
	}, nil
}

func (s *redisStore) Allow(key string, limit int, window time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}

	if window <= 0 {
		window = time.Minute
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	redisKey := s.prefix + key

	counter, err := s.client.Incr(ctx, redisKey).Result()

	if err != nil {
		slog.Error("redis rate limiter error", "op", "incr", "error", err)
		return Decision{Allowed: true}
	}

	if counter == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			slog.Error("redis rate limiter error", "op", "expire", "error", err)
		}
	}

	ttl, err := s.client.TTL(ctx, redisKey).Result()

	if err != nil || ttl <= 0 {
		ttl = window
	}

	return Decision{
		Allowed:   int(counter) <= limit,
		Count:     int(counter),
		WindowEnd: time.Now().Add(ttl),
	}
}

func (s *redisStore) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
