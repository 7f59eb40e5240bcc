// Package cache provides the read-through caching contracts and key scheme
// used by the catalog services.
//
// # Overview
//
// The package exports two interfaces and their default implementations:
//
//   - CacheService: read-through get-or-fetch plus single-key and
//     prefix-based eviction
//   - KeySerializer: builds the fixed catalog key namespaces
//
// Two backends satisfy CacheService: an in-process sturdyc client
// (NewCacheService) and a redis client for deployments that share one cache
// across processes (NewRedisCacheService).
//
// # Key scheme
//
// Three namespaces cover every read path:
//
//	entity:{type}:{id}               single-entity lookups
//	listByUser:{type}:{userId}       an owner's full collection
//	search:{type}:{userId}:{frag}    owner-scoped title searches
//
// Search fragments are normalized before keying: trimmed, lowercased, and
// unsafe runes hex-encoded. Case variants of one case-insensitive search
// share a single entry, while distinct fragments always key distinct entries.
// List and search projections include the category counters,
// which is why counter changes invalidate all three namespaces for the owner,
// not just the entity key.
//
// # Consistency
//
// Cache and store are never transactional with each other. Writers follow
// invalidate-after-write: eviction happens only once the authoritative write
// has committed, so a concurrent reader repopulating the cache observes
// either the pre-write value before eviction or the post-write value after.
// The residual race (reader fetches old value, write commits, eviction runs,
// reader stores the stale fetch) is bounded by the configured TTL rather than
// chased with locks.
//
// # Usage
//
//	svc, err := cache.NewCacheService(cache.DefaultConfig())
//	if err != nil { ... }
//	keys := cache.NewKeySerializer()
//
//	category, err := cache.GetOrFetch(ctx, svc, cache.EntityKey(keys, "category", 42),
//		func(ctx context.Context) (catalog.Category, error) {
//			return store.Get(ctx, 42)
//		})
package cache
