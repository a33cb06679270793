// Package resultcache stores rendered decode results in an in-process LRU
// backed by an optional remote store.
package resultcache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"github.com/mohammed-shakir/geojson-geometry/internal/observability"
)

const (
	tierLocal  = "lru"
	tierRemote = "redis"
)

// Remote is the second cache tier, satisfied by *redisstore.Client.
type Remote interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type Config struct {
	Size      int
	TTL       time.Duration
	OpTimeout time.Duration
}

type Cache struct {
	local   *expirable.LRU[string, []byte]
	remote  Remote
	cfg     Config
	metrics *observability.Metrics
	log     zerolog.Logger
}

// New builds a cache. remote may be nil for a local-only cache.
func New(cfg Config, remote Remote, m *observability.Metrics, log zerolog.Logger) *Cache {
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = 250 * time.Millisecond
	}
	return &Cache{
		local:   expirable.NewLRU[string, []byte](cfg.Size, nil, cfg.TTL),
		remote:  remote,
		cfg:     cfg,
		metrics: m,
		log:     log,
	}
}

// Get looks the key up locally, then remotely. Remote hits are copied into
// the local tier. Remote errors count as a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := c.local.Get(key); ok {
		c.metrics.CacheHit(tierLocal)
		return v, true
	}
	c.metrics.CacheMiss(tierLocal)
	if c.remote == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.OpTimeout)
	defer cancel()
	v, ok, err := c.remote.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("remote cache get failed")
		c.metrics.CacheMiss(tierRemote)
		return nil, false
	}
	if !ok {
		c.metrics.CacheMiss(tierRemote)
		return nil, false
	}
	c.metrics.CacheHit(tierRemote)
	c.local.Add(key, v)
	return v, true
}

// Set writes both tiers. A remote failure is logged and returned; the local
// entry is kept either way.
func (c *Cache) Set(ctx context.Context, key string, val []byte) error {
	c.local.Add(key, val)
	if c.remote == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.OpTimeout)
	defer cancel()
	if err := c.remote.Set(ctx, key, val, c.cfg.TTL); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("remote cache set failed")
		return err
	}
	return nil
}

func (c *Cache) Len() int { return c.local.Len() }
