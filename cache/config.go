package cache

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dzhatdoev/go-task-catalog/internal/cacheinfra"
)

// Policy selects the consistency discipline applied to an entity type.
type Policy int

const (
	// PolicyReadWrite evicts affected entries strictly after every committed
	// write (invalidate-after-write). Entries are repopulated lazily on the
	// next read rather than updated in place, so a reader can never observe a
	// merge of old and new field values. Categories and priorities use this.
	PolicyReadWrite Policy = iota

	// PolicyNonstrictReadWrite tolerates brief staleness: eviction is best
	// effort and carries no ordering obligation, with the TTL as the bound.
	// Users are cached this way.
	PolicyNonstrictReadWrite
)

// Config exposes the tuning knobs for the in-process cache backend.
type Config struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int

	// MissingRecordStorage remembers keys that resolved to no record, so
	// repeated lookups of absent ids do not hammer the store.
	MissingRecordStorage bool
}

// DefaultConfig returns the defaults the catalog services are tuned for. The
// TTL doubles as the staleness bound for invalidation races, so it stays
// deliberately short.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewCacheService constructs the default in-process cache backend.
func NewCacheService(cfg Config) (CacheService, error) {
	return cacheinfra.NewSturdycService(cfg.toInternal())
}

// NewRedisCacheService constructs the distributed cache backend on an existing
// redis client. Entries live for ttl; a zero ttl falls back to the default.
func NewRedisCacheService(client *redis.Client, ttl time.Duration) CacheService {
	return cacheinfra.NewRedisService(client, ttl)
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:             c.Capacity,
		NumShards:            c.NumShards,
		TTL:                  c.TTL,
		EvictionPercentage:   c.EvictionPercentage,
		MissingRecordStorage: c.MissingRecordStorage,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:             cfg.Capacity,
		NumShards:            cfg.NumShards,
		TTL:                  cfg.TTL,
		EvictionPercentage:   cfg.EvictionPercentage,
		MissingRecordStorage: cfg.MissingRecordStorage,
	}
}
