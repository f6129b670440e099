// Package cache serves content sections to the public pages with
// stale-while-revalidate semantics: a cached value is returned immediately
// and refreshed in the background, so visitors never wait on the storage
// backend after the first hit.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "content_cache_hits_total",
		Help: "Content section reads served from cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "content_cache_misses_total",
		Help: "Content section reads that had to fetch synchronously",
	})
	cacheRevalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "content_cache_revalidations_total",
		Help: "Background refreshes that completed and updated the cache",
	})
)

type SectionFetcher interface {
	FindActiveByType(ctx context.Context, sectionType string) (*entity.ContentSection, error)
}

// entry is one cached key. value == nil with loaded == true means the
// backend holds no active section for this type ("no content configured"),
// which is a valid cacheable answer, not an error.
type entry struct {
	value    *entity.ContentSection
	loaded   bool
	inflight bool
	gen      uint64
}

// ContentCache keeps sections in memory with an optional Redis tier that
// survives restarts. Writes are guarded by a per-key generation counter so a
// background fetch that lands after an invalidation is discarded instead of
// resurrecting stale content.
type ContentCache struct {
	fetcher SectionFetcher
	rdb     *redis.Client // nil disables the persisted tier
	timeout time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	gens    map[string]uint64
}

func NewContentCache(fetcher SectionFetcher, rdb *redis.Client) *ContentCache {
	return &ContentCache{
		fetcher: fetcher,
		rdb:     rdb,
		timeout: 10 * time.Second,
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
	}
}

// Get returns the section for a type. Cache hits return immediately and
// kick off at most one background revalidation per key; misses fetch
// synchronously and populate both tiers. A fetch error on a miss is
// returned; on a hit the last good value keeps being served.
func (c *ContentCache) Get(ctx context.Context, sectionType string) (*entity.ContentSection, error) {
	c.mu.Lock()
	e, ok := c.entries[sectionType]
	if !ok {
		e = &entry{gen: c.gens[sectionType]}
		c.entries[sectionType] = e
	}

	if e.loaded {
		cacheHits.Inc()
		value := e.value
		if !e.inflight {
			e.inflight = true
			go c.revalidate(sectionType, e.gen)
		}
		c.mu.Unlock()
		return value, nil
	}

	cacheMisses.Inc()
	owner := !e.inflight
	if owner {
		e.inflight = true
	}
	gen := e.gen
	c.mu.Unlock()

	// Persisted tier first: a warm Redis entry means we can answer now and
	// refresh in the background, same as a memory hit.
	if value, found := c.redisGet(ctx, sectionType); found {
		if owner {
			c.apply(sectionType, gen, value, false)
			c.maybeRevalidate(sectionType)
		}
		return value, nil
	}

	value, err := c.fetch(ctx, sectionType)
	if err != nil {
		if owner {
			c.clearInflight(sectionType, gen)
		}
		return nil, err
	}
	if owner {
		c.apply(sectionType, gen, value, true)
	}
	return value, nil
}

// Invalidate marks a key stale after an edit commits. The generation bump
// makes any in-flight fetch result for the old generation unappliable.
func (c *ContentCache) Invalidate(ctx context.Context, sectionType string) {
	c.mu.Lock()
	c.gens[sectionType]++
	delete(c.entries, sectionType)
	c.mu.Unlock()

	if c.rdb != nil {
		if err := c.rdb.Del(ctx, c.redisKey(sectionType)).Err(); err != nil {
			log.Printf("cache: drop persisted entry %q: %v", sectionType, err)
		}
	}
}

func (c *ContentCache) fetch(ctx context.Context, sectionType string) (*entity.ContentSection, error) {
	section, err := c.fetcher.FindActiveByType(ctx, sectionType)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, nil
	}
	return section, err
}

func (c *ContentCache) revalidate(sectionType string, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	value, err := c.fetch(ctx, sectionType)

	c.mu.Lock()
	e, ok := c.entries[sectionType]
	if !ok || e.gen != gen {
		// Invalidated while we were fetching: this result is stale, drop it.
		c.mu.Unlock()
		return
	}
	e.inflight = false
	if err != nil {
		// No update this cycle; keep serving the last good value.
		c.mu.Unlock()
		log.Printf("cache: revalidate %q: %v", sectionType, err)
		return
	}
	e.value = value
	e.loaded = true
	c.mu.Unlock()

	c.persistIfCurrent(ctx, sectionType, gen, value)
	cacheRevalidations.Inc()
}

func (c *ContentCache) apply(sectionType string, gen uint64, value *entity.ContentSection, persist bool) {
	c.mu.Lock()
	e, ok := c.entries[sectionType]
	if !ok || e.gen != gen {
		c.mu.Unlock()
		return
	}
	e.inflight = false
	e.loaded = true
	e.value = value
	c.mu.Unlock()

	if persist {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		c.persistIfCurrent(ctx, sectionType, gen, value)
	}
}

func (c *ContentCache) maybeRevalidate(sectionType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[sectionType]
	if !ok || e.inflight {
		return
	}
	e.inflight = true
	go c.revalidate(sectionType, e.gen)
}

func (c *ContentCache) clearInflight(sectionType string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[sectionType]; ok && e.gen == gen {
		e.inflight = false
	}
}

// persistIfCurrent writes the persisted tier and re-checks the generation
// afterwards: an invalidation can land between the in-memory commit and the
// Redis write, and the pre-edit value must not survive in Redis where a cold
// start would pick it up. On a mismatch the entry is dropped again.
func (c *ContentCache) persistIfCurrent(ctx context.Context, sectionType string, gen uint64, value *entity.ContentSection) {
	if c.rdb == nil {
		return
	}
	c.redisSet(ctx, sectionType, value)

	c.mu.Lock()
	current := c.gens[sectionType] == gen
	c.mu.Unlock()
	if !current {
		if err := c.rdb.Del(ctx, c.redisKey(sectionType)).Err(); err != nil {
			log.Printf("cache: drop superseded persisted entry %q: %v", sectionType, err)
		}
	}
}

// persistedEntry wraps the section so "no content configured" (nil) is
// representable in Redis.
type persistedEntry struct {
	Section *entity.ContentSection `json:"section"`
}

func (c *ContentCache) redisKey(sectionType string) string {
	return "content:" + sectionType
}

func (c *ContentCache) redisGet(ctx context.Context, sectionType string) (*entity.ContentSection, bool) {
	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, c.redisKey(sectionType)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("cache: read persisted entry %q: %v", sectionType, err)
		return nil, false
	}
	var pe persistedEntry
	if err := json.Unmarshal(data, &pe); err != nil {
		return nil, false
	}
	return pe.Section, true
}

func (c *ContentCache) redisSet(ctx context.Context, sectionType string, value *entity.ContentSection) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(persistedEntry{Section: value})
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.redisKey(sectionType), data, 0).Err(); err != nil {
		log.Printf("cache: write persisted entry %q: %v", sectionType, err)
	}
}
