package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidResultType is returned by GetOrFetch when a cached value cannot be
// converted to the requested type. It signals a key collision or a programming
// error, not a condition callers should retry.
var ErrInvalidResultType = errors.New("cache: result does not match requested type")

// FetchFn loads a value from the source of truth on a cache miss.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService is the read-through contract the catalog services depend on.
// Both backends (in-process sturdyc, distributed redis) implement it.
//
// A failing backend must degrade to the fetch function where possible: cache
// absence is always a safe, if slower, fallback to the store.
type CacheService interface {
	// GetOrFetch returns the cached value for key, or executes fetchFn,
	// stores the result, and returns it. fetchFn must have the signature
	// func(context.Context) (T, error).
	GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error)

	// Delete evicts a single entry.
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix evicts every entry whose key starts with prefix. Used to
	// clear an owner's search namespace, where the exact keys are unknown.
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// GetOrFetch is the type-safe wrapper around CacheService.GetOrFetch.
// A nil cached result yields the zero value of T.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T

	result, err := service.GetOrFetch(ctx, key, fetchFn)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrInvalidResultType, key, result)
	}
	return typed, nil
}
