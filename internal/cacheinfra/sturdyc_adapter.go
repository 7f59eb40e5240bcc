package cacheinfra

import (
	"context"
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the settings for the in-process sturdyc backend.
type Config struct {
	// Capacity is the maximum number of cached entries. Must be > 0.
	Capacity int

	// NumShards controls concurrent access; more shards, less contention.
	// Must be > 0.
	NumShards int

	// TTL is the entry time-to-live. It doubles as the staleness bound for
	// invalidation races, so it should stay short. Must be > 0.
	TTL time.Duration

	// EvictionPercentage is the share of entries evicted when the cache is
	// full, between 1 and 100.
	EvictionPercentage int

	// MissingRecordStorage remembers keys that resolved to no record so
	// repeated lookups of absent ids skip the store.
	MissingRecordStorage bool
}

// DefaultConfig returns the settings the catalog services are tuned for.
func DefaultConfig() Config {
	return Config{
		Capacity:             10000,
		NumShards:            64,
		TTL:                  30 * time.Second,
		EvictionPercentage:   10,
		MissingRecordStorage: true,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

func (c Config) toOptions() []sturdyc.Option {
	var options []sturdyc.Option
	if c.MissingRecordStorage {
		options = append(options, sturdyc.WithMissingRecordStorage())
	}
	return options
}

// ConfigError reports an invalid configuration or callback value.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// sturdycService adapts a sturdyc client to the CacheService contract.
type sturdycService struct {
	client *sturdyc.Client[any]
}

// NewSturdycService creates the in-process cache backend.
func NewSturdycService(cfg Config) (*sturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.toOptions()...,
	)

	return &sturdycService{client: client}, nil
}

// GetOrFetch returns the cached value for key or executes fetchFn, caching
// and returning the result. fetchFn must be func(context.Context) (T, error).
func (s *sturdycService) GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error) {
	if err := validateFetchFn(fetchFn); err != nil {
		return nil, err
	}

	return s.client.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return callFetchFn(ctx, fetchFn)
	})
}

// Delete evicts a single entry.
func (s *sturdycService) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteByPrefix evicts every entry whose key starts with prefix. sturdyc has
// no native prefix operation, so the key space is scanned.
func (s *sturdycService) DeleteByPrefix(ctx context.Context, prefix string) error {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
	return nil
}
