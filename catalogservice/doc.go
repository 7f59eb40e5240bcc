// Package catalogservice exposes the catalog operations for categories,
// priorities, and users. Each service validates at its boundary, serves reads
// through the cache layer, and follows invalidate-after-write on every
// mutation: the cache entry is evicted only once the store write has
// committed, then lazily repopulated on the next read.
//
// Category and Priority use the strict read-write policy. User is cached with
// the tolerant (nonstrict) policy: eviction is best effort and the TTL bounds
// any staleness.
//
// Category counters deserve a note: the services never write them. Client
// payloads carrying counter values have those values discarded — update paths
// re-read the stored row and persist explicit column lists, so forged
// counters cannot reach the database. The only counter writer is the
// countersync package.
package catalogservice
