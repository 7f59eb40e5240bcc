// Package di wires the catalog's components: cache backend, key serializer,
// stores, services, and the counter syncer.
package di

import (
	"github.com/uptrace/bun"

	"github.com/dzhatdoev/go-task-catalog/cache"
	"github.com/dzhatdoev/go-task-catalog/catalogservice"
	"github.com/dzhatdoev/go-task-catalog/countersync"
	"github.com/dzhatdoev/go-task-catalog/store"
)

// Container holds the singletons every service shares: one cache backend and
// one key serializer, so all entity types invalidate each other's keys
// consistently.
type Container struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	config        cache.Config
}

// NewContainer creates a container with the in-process cache backend.
func NewContainer(config cache.Config) (*Container, error) {
	cacheService, err := cache.NewCacheService(config)
	if err != nil {
		return nil, err
	}

	return &Container{
		cacheService:  cacheService,
		keySerializer: cache.NewKeySerializer(),
		config:        config,
	}, nil
}

// NewContainerWithDefaults creates a container with the default cache
// configuration.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig())
}

// NewContainerWithCache creates a container around an externally constructed
// cache backend, e.g. cache.NewRedisCacheService for shared deployments.
func NewContainerWithCache(svc cache.CacheService) *Container {
	return &Container{
		cacheService:  svc,
		keySerializer: cache.NewKeySerializer(),
	}
}

// CacheService returns the shared cache backend.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the shared key serializer.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the cache configuration used by this container.
// Zero value when the backend was supplied externally.
func (c *Container) Config() cache.Config {
	return c.config
}

// Catalog bundles the fully wired services over one database handle.
type Catalog struct {
	Categories *catalogservice.CategoryService
	Priorities *catalogservice.PriorityService
	Users      *catalogservice.UserService
	Syncer     *countersync.Syncer
}

// NewCatalog wires stores, services, and the counter syncer over db. All
// services share the container's cache and key scheme, which is what lets the
// syncer invalidate entries the category service populated.
func NewCatalog(c *Container, db bun.IDB) *Catalog {
	categoryStore := store.NewCategoryStore(db)

	return &Catalog{
		Categories: catalogservice.NewCategoryService(categoryStore, c.cacheService, c.keySerializer),
		Priorities: catalogservice.NewPriorityService(store.NewPriorityStore(db), c.cacheService, c.keySerializer),
		Users:      catalogservice.NewUserService(store.NewUserStore(db), c.cacheService, c.keySerializer),
		Syncer:     countersync.New(categoryStore, c.cacheService, c.keySerializer),
	}
}
