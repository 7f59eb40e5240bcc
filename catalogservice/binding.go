package catalogservice

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/dzhatdoev/go-task-catalog/cache"
)

// entityCache binds one entity type to the cache layer with its consistency
// policy. Invalidation failures after a committed store write are logged and
// absorbed, not returned: the write already succeeded and the TTL bounds the
// staleness window.
type entityCache struct {
	svc    cache.CacheService
	keys   cache.KeySerializer
	entity string
	policy cache.Policy
}

func newEntityCache(svc cache.CacheService, keys cache.KeySerializer, entity string, policy cache.Policy) entityCache {
	return entityCache{svc: svc, keys: keys, entity: entity, policy: policy}
}

func (b entityCache) entityKey(id int64) string {
	return cache.EntityKey(b.keys, b.entity, id)
}

func (b entityCache) listKey(userID int64) string {
	return cache.ListByUserKey(b.keys, b.entity, userID)
}

func (b entityCache) searchKey(userID int64, fragment string) string {
	return cache.SearchKey(b.keys, b.entity, userID, fragment)
}

// evictEntity drops the single-entity key.
func (b entityCache) evictEntity(ctx context.Context, id int64) {
	if err := b.svc.Delete(ctx, b.entityKey(id)); err != nil {
		b.logEvictionFailure(err, b.entityKey(id))
	}
}

// evictOwner drops the owner's list entry and search namespace. Under the
// nonstrict policy only the exact list key is touched; search entries are
// left to expire.
func (b entityCache) evictOwner(ctx context.Context, userID int64) {
	if err := b.svc.Delete(ctx, b.listKey(userID)); err != nil {
		b.logEvictionFailure(err, b.listKey(userID))
	}
	if b.policy != cache.PolicyReadWrite {
		return
	}
	prefix := cache.SearchPrefix(b.keys, b.entity, userID)
	if err := b.svc.DeleteByPrefix(ctx, prefix); err != nil {
		b.logEvictionFailure(err, prefix)
	}
}

func (b entityCache) logEvictionFailure(err error, key string) {
	if b.policy == cache.PolicyNonstrictReadWrite {
		// Tolerated staleness; nothing to report.
		return
	}
	log.WithError(err).WithFields(log.Fields{
		"entity": b.entity,
		"key":    key,
	}).Warn("cache eviction failed after write")
}
