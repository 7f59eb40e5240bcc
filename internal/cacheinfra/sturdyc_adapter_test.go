package cacheinfra

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Capacity != 10000 {
		t.Errorf("expected Capacity to be 10000, got %d", cfg.Capacity)
	}
	if cfg.NumShards != 64 {
		t.Errorf("expected NumShards to be 64, got %d", cfg.NumShards)
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("expected TTL to be 30 seconds, got %v", cfg.TTL)
	}
	if cfg.EvictionPercentage != 10 {
		t.Errorf("expected EvictionPercentage to be 10, got %d", cfg.EvictionPercentage)
	}
	if !cfg.MissingRecordStorage {
		t.Error("expected MissingRecordStorage to be true")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		field   string
	}{
		{"valid default", DefaultConfig(), false, ""},
		{"zero capacity", Config{Capacity: 0, NumShards: 8, TTL: time.Minute, EvictionPercentage: 10}, true, "Capacity"},
		{"negative capacity", Config{Capacity: -1, NumShards: 8, TTL: time.Minute, EvictionPercentage: 10}, true, "Capacity"},
		{"zero shards", Config{Capacity: 100, NumShards: 0, TTL: time.Minute, EvictionPercentage: 10}, true, "NumShards"},
		{"zero ttl", Config{Capacity: 100, NumShards: 8, TTL: 0, EvictionPercentage: 10}, true, "TTL"},
		{"eviction percentage too low", Config{Capacity: 100, NumShards: 8, TTL: time.Minute, EvictionPercentage: 0}, true, "EvictionPercentage"},
		{"eviction percentage too high", Config{Capacity: 100, NumShards: 8, TTL: time.Minute, EvictionPercentage: 101}, true, "EvictionPercentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected error on field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestNewSturdycService_RejectsInvalidConfig(t *testing.T) {
	_, err := NewSturdycService(Config{})
	if err == nil {
		t.Fatal("expected error for zero config")
	}
}

func TestSturdycService_GetOrFetch(t *testing.T) {
	svc, err := NewSturdycService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	}

	got, err := svc.GetOrFetch(ctx, "k", fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "value" {
		t.Errorf("expected %q, got %v", "value", got)
	}

	// Second call must be served from cache.
	if _, err := svc.GetOrFetch(ctx, "k", fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 fetch call, got %d", calls)
	}
}

func TestSturdycService_GetOrFetch_FetchError(t *testing.T) {
	svc, err := NewSturdycService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	want := errors.New("store down")
	_, err = svc.GetOrFetch(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "", want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestSturdycService_GetOrFetch_InvalidFetchFn(t *testing.T) {
	svc, err := NewSturdycService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	tests := []struct {
		name    string
		fetchFn any
	}{
		{"nil", nil},
		{"not a function", "nope"},
		{"wrong arity", func() (string, error) { return "", nil }},
		{"wrong first parameter", func(s string) (string, error) { return "", nil }},
		{"wrong second return", func(ctx context.Context) (string, string) { return "", "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetOrFetch(context.Background(), "k", tt.fetchFn)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
		})
	}
}

func TestSturdycService_Delete(t *testing.T) {
	svc, err := NewSturdycService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if _, err := svc.GetOrFetch(ctx, "k", fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetOrFetch(ctx, "k", fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected refetch after delete, got %d calls", calls)
	}
}

func TestSturdycService_DeleteByPrefix(t *testing.T) {
	svc, err := NewSturdycService(DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	ctx := context.Background()
	calls := map[string]int{}
	fetchFor := func(key string) func(ctx context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			calls[key]++
			return key, nil
		}
	}

	keys := []string{"search:category:7:work", "search:category:7:home", "search:category:70:work", "entity:category:7"}
	for _, key := range keys {
		if _, err := svc.GetOrFetch(ctx, key, fetchFor(key)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := svc.DeleteByPrefix(ctx, "search:category:7:"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range keys {
		if _, err := svc.GetOrFetch(ctx, key, fetchFor(key)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if calls["search:category:7:work"] != 2 {
		t.Errorf("expected search:category:7:work to be evicted")
	}
	if calls["search:category:7:home"] != 2 {
		t.Errorf("expected search:category:7:home to be evicted")
	}
	if calls["search:category:70:work"] != 1 {
		t.Errorf("expected other owner's entry to survive")
	}
	if calls["entity:category:7"] != 1 {
		t.Errorf("expected entity entry to survive")
	}
}
