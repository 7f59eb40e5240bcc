package cacheinfra

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// DefaultRedisTTL is applied when no TTL is configured. Same reasoning as the
// in-process default: the TTL bounds staleness after invalidation races.
const DefaultRedisTTL = 30 * time.Second

// redisService implements the CacheService contract on a shared redis
// instance. Values are stored as JSON, so the fetch function's result type
// must round-trip through encoding/json.
//
// The backend degrades instead of failing: when redis is unreachable or an
// entry does not decode, the fetch function runs against the store and the
// caller still gets an answer. Only fetch errors propagate.
type redisService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisService creates the distributed cache backend.
func NewRedisService(client *redis.Client, ttl time.Duration) *redisService {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &redisService{client: client, ttl: ttl}
}

func (s *redisService) GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error) {
	if err := validateFetchFn(fetchFn); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		out := reflect.New(fetchResultType(fetchFn))
		if err := json.Unmarshal(data, out.Interface()); err == nil {
			return out.Elem().Interface(), nil
		}
		// Undecodable entry: treat as a miss and overwrite below.
		log.WithField("key", key).Warn("cache entry failed to decode, refetching")
	case errors.Is(err, redis.Nil):
		// miss
	default:
		log.WithError(err).WithField("key", key).Warn("cache read failed, falling back to store")
	}

	value, err := callFetchFn(ctx, fetchFn)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		log.WithError(err).WithField("key", key).Error("failed to marshal cache payload")
		return value, nil
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to store cache entry")
	}

	return value, nil
}

func (s *redisService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *redisService) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
