package catalogservice

import (
	"context"

	"github.com/dzhatdoev/go-task-catalog/cache"
	"github.com/dzhatdoev/go-task-catalog/catalog"
)

// UserStore is the durable backing the user service requires.
// *store.UserStore satisfies it.
type UserStore interface {
	Get(ctx context.Context, id int64) (catalog.User, error)
	GetByEmail(ctx context.Context, email string) (catalog.User, error)
}

// UserService resolves owners with the tolerant cache policy: user records
// change rarely and nothing here mutates them, so brief staleness is fine and
// no invalidation ordering is enforced.
type UserService struct {
	store UserStore
	cache entityCache
}

func NewUserService(store UserStore, svc cache.CacheService, keys cache.KeySerializer) *UserService {
	return &UserService{
		store: store,
		cache: newEntityCache(svc, keys, cache.EntityUser, cache.PolicyNonstrictReadWrite),
	}
}

// FindByID returns the user snapshot, cache-accelerated.
func (s *UserService) FindByID(ctx context.Context, id int64) (catalog.User, error) {
	return cache.GetOrFetch(ctx, s.cache.svc, s.cache.entityKey(id), func(ctx context.Context) (catalog.User, error) {
		return s.store.Get(ctx, id)
	})
}

// FindByEmail returns the user with the given email, cache-accelerated.
func (s *UserService) FindByEmail(ctx context.Context, email string) (catalog.User, error) {
	key := s.cache.keys.SerializeKey(cache.KeyEntity, cache.EntityUser, "email", email)
	return cache.GetOrFetch(ctx, s.cache.svc, key, func(ctx context.Context) (catalog.User, error) {
		return s.store.GetByEmail(ctx, email)
	})
}

// Invalidate drops the cached snapshot for a user, best effort. Callers that
// learn of an out-of-band user change may use it; otherwise the TTL applies.
func (s *UserService) Invalidate(ctx context.Context, id int64) {
	s.cache.evictEntity(ctx, id)
}
