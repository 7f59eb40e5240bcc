// Package countersync keeps category counters and their cache entries in step
// with task state. The category counter columns are maintained by database
// triggers in production deployments; this package is the explicit form of
// that contract, so the cache invalidation obligation is visible and
// testable. It is the only code path allowed to change the counters.
package countersync

import (
	"context"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	log "github.com/sirupsen/logrus"

	"github.com/dzhatdoev/go-task-catalog/cache"
	"github.com/dzhatdoev/go-task-catalog/catalog"
)

// CounterStore is the store-side half of the contract.
// *store.CategoryStore satisfies it.
type CounterStore interface {
	RecomputeCounters(ctx context.Context, categoryID int64) (catalog.Category, error)
}

// Syncer reacts to task-state events by recomputing the owning category's
// counters and invalidating its cache entries, in that order. Callers (the
// task-tracking side) must invoke OnTaskStateChanged after any commit that
// changes a task's completion flag or category assignment.
type Syncer struct {
	store CounterStore
	cache cache.CacheService
	keys  cache.KeySerializer

	// locks serializes recomputations per category in-process, on top of the
	// store transaction guarantee. Entries are created lazily and live for
	// the process lifetime; category cardinality is small enough not to trim.
	locks *xsync.MapOf[int64, *sync.Mutex]
}

func New(store CounterStore, svc cache.CacheService, keys cache.KeySerializer) *Syncer {
	return &Syncer{
		store: store,
		cache: svc,
		keys:  keys,
		locks: xsync.NewMapOf[int64, *sync.Mutex](),
	}
}

// OnTaskStateChanged recomputes the counters for categoryID and evicts the
// category's entity, list, and search cache entries once the recomputation
// has committed. Counters appear in list and search projections too, which is
// why all three namespaces go.
func (s *Syncer) OnTaskStateChanged(ctx context.Context, categoryID int64) error {
	mu, _ := s.locks.LoadOrCompute(categoryID, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	mu.Lock()
	defer mu.Unlock()

	updated, err := s.store.RecomputeCounters(ctx, categoryID)
	if err != nil {
		return err
	}

	// Invalidate-after-write: the transaction above has committed.
	entityKey := cache.EntityKey(s.keys, cache.EntityCategory, updated.ID)
	listKey := cache.ListByUserKey(s.keys, cache.EntityCategory, updated.UserID)
	searchPrefix := cache.SearchPrefix(s.keys, cache.EntityCategory, updated.UserID)

	if err := s.cache.Delete(ctx, entityKey); err != nil {
		log.WithError(err).WithField("key", entityKey).Warn("counter sync: entity eviction failed")
	}
	if err := s.cache.Delete(ctx, listKey); err != nil {
		log.WithError(err).WithField("key", listKey).Warn("counter sync: list eviction failed")
	}
	if err := s.cache.DeleteByPrefix(ctx, searchPrefix); err != nil {
		log.WithError(err).WithField("prefix", searchPrefix).Warn("counter sync: search eviction failed")
	}

	log.WithFields(log.Fields{
		"category":    updated.ID,
		"user":        updated.UserID,
		"completed":   updated.CompletedCount,
		"uncompleted": updated.UncompletedCount,
	}).Debug("category counters recomputed")

	return nil
}
