package cache

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Clock returns the current time; replaced in tests to simulate elapsed time
type Clock func() time.Time

// Entry is a cached price together with the moment it was fetched.
// Entries are never mutated; a new fetch stores a new Entry.
type Entry struct {
	Price     string    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// PriceCache is a TTL-keyed price store for a single token category.
// Expiration is lazy: a stale entry is ignored on read but stays in the store
// until the next successful fetch overwrites it.
type PriceCache struct {
	name  string
	ttl   time.Duration
	store *cache.Cache
	now   Clock
}

// NewPriceCache creates an empty price cache with the given freshness window
func NewPriceCache(name string, ttl time.Duration) *PriceCache {
	return &PriceCache{
		name: name,
		ttl:  ttl,
		// Items never expire inside go-cache and the janitor is disabled;
		// freshness is evaluated on read against the cache clock.
		store: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
}

// SetClock replaces the time source used for timestamps and freshness checks
func (c *PriceCache) SetClock(now Clock) {
	c.now = now
}

func (c *PriceCache) Name() string {
	return c.name
}

func (c *PriceCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached price if it is younger than the TTL
func (c *PriceCache) Get(address string) (string, bool) {
	entry, ok := c.Entry(address)
	if !ok || !c.isFresh(entry) {
		return "", false
	}
	return entry.Price, true
}

// Set stores a price stamped with the current time, replacing any prior entry
func (c *PriceCache) Set(address, price string) {
	c.store.Set(normalizeKey(address), Entry{Price: price, Timestamp: c.now()}, cache.NoExpiration)
}

// Entry returns the stored entry regardless of its freshness
func (c *PriceCache) Entry(address string) (Entry, bool) {
	value, found := c.store.Get(normalizeKey(address))
	if !found {
		return Entry{}, false
	}
	entry, ok := value.(Entry)
	return entry, ok
}

// Fresh returns a snapshot of all entries that are still within the TTL
func (c *PriceCache) Fresh() map[string]Entry {
	result := make(map[string]Entry)
	for key, item := range c.store.Items() {
		entry, ok := item.Object.(Entry)
		if ok && c.isFresh(entry) {
			result[key] = entry
		}
	}
	return result
}

// ItemCount returns the number of stored entries, stale ones included
func (c *PriceCache) ItemCount() int {
	return c.store.ItemCount()
}

// Clear removes all entries
func (c *PriceCache) Clear() {
	c.store.Flush()
}

func (c *PriceCache) isFresh(entry Entry) bool {
	return c.now().Sub(entry.Timestamp) < c.ttl
}

func normalizeKey(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
