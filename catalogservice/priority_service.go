package catalogservice

import (
	"context"
	"slices"

	platformerrors "github.com/jmgilman/go/errors"

	"github.com/dzhatdoev/go-task-catalog/cache"
	"github.com/dzhatdoev/go-task-catalog/catalog"
)

// PriorityStore is the durable backing the priority service requires.
// *store.PriorityStore satisfies it.
type PriorityStore interface {
	Create(ctx context.Context, p catalog.Priority) (catalog.Priority, error)
	Get(ctx context.Context, id int64) (catalog.Priority, error)
	ListByUser(ctx context.Context, userID int64) ([]catalog.Priority, error)
	Update(ctx context.Context, p catalog.Priority) error
	Delete(ctx context.Context, id int64) error
	SearchByTitle(ctx context.Context, userID int64, fragment string) ([]catalog.Priority, error)
}

// PriorityService orchestrates store and cache for priority operations.
// Same shape as CategoryService minus the counter obligations.
type PriorityService struct {
	store PriorityStore
	cache entityCache
}

func NewPriorityService(store PriorityStore, svc cache.CacheService, keys cache.KeySerializer) *PriorityService {
	return &PriorityService{
		store: store,
		cache: newEntityCache(svc, keys, cache.EntityPriority, cache.PolicyReadWrite),
	}
}

// FindAll returns every priority owned by userID, cached per owner. The
// returned slice is the caller's copy; mutating it never reaches the cached
// snapshot.
func (s *PriorityService) FindAll(ctx context.Context, userID int64) ([]catalog.Priority, error) {
	if userID == 0 {
		return nil, platformerrors.New(platformerrors.CodeInvalidInput, "missed param: userId")
	}
	list, err := cache.GetOrFetch(ctx, s.cache.svc, s.cache.listKey(userID), func(ctx context.Context) ([]catalog.Priority, error) {
		return s.store.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(list), nil
}

// Add persists a new priority; the id must be unset.
func (s *PriorityService) Add(ctx context.Context, p catalog.Priority) (catalog.Priority, error) {
	if p.ID != 0 {
		return catalog.Priority{}, platformerrors.New(platformerrors.CodeInvalidInput, "redundant param: priority id must not be set")
	}
	if err := p.Validate(); err != nil {
		return catalog.Priority{}, platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "invalid priority")
	}

	created, err := s.store.Create(ctx, p)
	if err != nil {
		return catalog.Priority{}, err
	}

	s.cache.evictOwner(ctx, created.UserID)
	return created, nil
}

// Update persists title and color against the stored row's owner.
func (s *PriorityService) Update(ctx context.Context, p catalog.Priority) error {
	if p.ID == 0 {
		return platformerrors.New(platformerrors.CodeInvalidInput, "missed param: id")
	}
	if err := p.ValidateUpdate(); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "invalid priority")
	}

	existing, err := s.store.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	existing.Title = p.Title
	existing.Color = p.Color

	if err := s.store.Update(ctx, existing); err != nil {
		return err
	}

	s.cache.evictEntity(ctx, existing.ID)
	s.cache.evictOwner(ctx, existing.UserID)
	return nil
}

// DeleteByID removes the priority, resolving the owner first.
func (s *PriorityService) DeleteByID(ctx context.Context, id int64) error {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.evictEntity(ctx, id)
	s.cache.evictOwner(ctx, existing.UserID)
	return nil
}

// FindByID returns the priority snapshot, cache-accelerated.
func (s *PriorityService) FindByID(ctx context.Context, id int64) (catalog.Priority, error) {
	return cache.GetOrFetch(ctx, s.cache.svc, s.cache.entityKey(id), func(ctx context.Context) (catalog.Priority, error) {
		return s.store.Get(ctx, id)
	})
}

// Find returns the owner's priorities matching the fragment. A blank fragment
// returns the unfiltered owner list.
func (s *PriorityService) Find(ctx context.Context, title string, userID int64) ([]catalog.Priority, error) {
	if userID == 0 {
		return nil, platformerrors.New(platformerrors.CodeInvalidInput, "missed param: userId")
	}
	list, err := cache.GetOrFetch(ctx, s.cache.svc, s.cache.searchKey(userID, title), func(ctx context.Context) ([]catalog.Priority, error) {
		return s.store.SearchByTitle(ctx, userID, title)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(list), nil
}

// Search is the request-shaped entry point for Find.
func (s *PriorityService) Search(ctx context.Context, values catalog.PrioritySearchValues) ([]catalog.Priority, error) {
	return s.Find(ctx, values.Title, values.UserID)
}
