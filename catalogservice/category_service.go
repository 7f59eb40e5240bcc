package catalogservice

import (
	"context"
	"slices"

	platformerrors "github.com/jmgilman/go/errors"

	"github.com/dzhatdoev/go-task-catalog/cache"
	"github.com/dzhatdoev/go-task-catalog/catalog"
)

// CategoryStore is the durable backing the category service requires.
// *store.CategoryStore satisfies it.
type CategoryStore interface {
	Create(ctx context.Context, c catalog.Category) (catalog.Category, error)
	Get(ctx context.Context, id int64) (catalog.Category, error)
	ListByUser(ctx context.Context, userID int64) ([]catalog.Category, error)
	Update(ctx context.Context, c catalog.Category) error
	Delete(ctx context.Context, id int64) error
	SearchByTitle(ctx context.Context, userID int64, fragment string) ([]catalog.Category, error)
}

// CategoryService orchestrates store and cache for category operations.
type CategoryService struct {
	store CategoryStore
	cache entityCache
}

func NewCategoryService(store CategoryStore, svc cache.CacheService, keys cache.KeySerializer) *CategoryService {
	return &CategoryService{
		store: store,
		cache: newEntityCache(svc, keys, cache.EntityCategory, cache.PolicyReadWrite),
	}
}

// FindAll returns every category owned by userID, cached per owner. The
// returned slice is the caller's copy; mutating it never reaches the cached
// snapshot.
func (s *CategoryService) FindAll(ctx context.Context, userID int64) ([]catalog.Category, error) {
	if userID == 0 {
		return nil, platformerrors.New(platformerrors.CodeInvalidInput, "missed param: userId")
	}
	list, err := cache.GetOrFetch(ctx, s.cache.svc, s.cache.listKey(userID), func(ctx context.Context) ([]catalog.Category, error) {
		return s.store.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(list), nil
}

// Add persists a new category. The id must be unset (the store assigns it)
// and any counter values in the payload are discarded: new categories always
// start at zero.
func (s *CategoryService) Add(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	if c.ID != 0 {
		return catalog.Category{}, platformerrors.New(platformerrors.CodeInvalidInput, "redundant param: category id must not be set")
	}
	if err := c.Validate(); err != nil {
		return catalog.Category{}, platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "invalid category")
	}

	c.CompletedCount = 0
	c.UncompletedCount = 0

	created, err := s.store.Create(ctx, c)
	if err != nil {
		return catalog.Category{}, err
	}

	// New rows change cached "all" and search results for the owner.
	s.cache.evictOwner(ctx, created.UserID)
	return created, nil
}

// Update persists the title. The stored row is re-read first: the owner stays
// whatever the store says, and counter values in the payload never reach the
// database.
func (s *CategoryService) Update(ctx context.Context, c catalog.Category) error {
	if c.ID == 0 {
		return platformerrors.New(platformerrors.CodeInvalidInput, "missed param: id")
	}
	if err := c.ValidateUpdate(); err != nil {
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "invalid category")
	}

	existing, err := s.store.Get(ctx, c.ID)
	if err != nil {
		return err
	}
	existing.Title = c.Title

	if err := s.store.Update(ctx, existing); err != nil {
		return err
	}

	s.cache.evictEntity(ctx, existing.ID)
	s.cache.evictOwner(ctx, existing.UserID)
	return nil
}

// DeleteByID removes the category. The owner is resolved before the delete,
// since afterwards nobody knows whose cache entries to evict.
func (s *CategoryService) DeleteByID(ctx context.Context, id int64) error {
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

// FindByID returns the category snapshot, cache-accelerated.
func (s *CategoryService) FindByID(ctx context.Context, id int64) (catalog.Category, error) {
	return cache.GetOrFetch(ctx, s.cache.svc, s.cache.entityKey(id), func(ctx context.Context) (catalog.Category, error) {
		return s.store.Get(ctx, id)
	})
}

// FindByTitle returns the owner's categories matching the fragment,
// case-insensitively. A blank fragment returns the unfiltered owner list.
func (s *CategoryService) FindByTitle(ctx context.Context, title string, userID int64) ([]catalog.Category, error) {
	if userID == 0 {
		return nil, platformerrors.New(platformerrors.CodeInvalidInput, "missed param: userId")
	}
	list, err := cache.GetOrFetch(ctx, s.cache.svc, s.cache.searchKey(userID, title), func(ctx context.Context) ([]catalog.Category, error) {
		return s.store.SearchByTitle(ctx, userID, title)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(list), nil
}

// Search is the request-shaped entry point for FindByTitle.
func (s *CategoryService) Search(ctx context.Context, values catalog.CategorySearchValues) ([]catalog.Category, error) {
	return s.FindByTitle(ctx, values.Title, values.UserID)
}
