// Package cache implements the bounded raw-family → canonical-family map
// described in spec.md §4.2.
package cache

import (
	"container/list"
	"sync"

	"github.com/latticegen/semiframe/debug"
	"github.com/latticegen/semiframe/family"
)

// Policy selects the eviction strategy used once the cache is full.
type Policy int

const (
	// FIFO evicts the oldest inserted entry — the cheapest policy, and the
	// default per spec.md §4.2.
	FIFO Policy = iota
	// LRU evicts the least-recently-read entry, a permitted refinement.
	LRU
)

// Cache is a bounded map from a raw family's Key() to its canonical
// family. Capacity 0 disables caching entirely (every Put is a no-op and
// every Get misses). The cache is observationally pure: a hit always
// returns a value bit-identical to what the Canonicalizer would compute
// fresh. Reads are safe for concurrent use; per spec.md §4.2 the Generator
// is the sole writer within a size-level, so writes are not further
// synchronized beyond the mutex needed to keep the FIFO/LRU bookkeeping
// consistent.
type Cache struct {
	mu       sync.Mutex
	policy   Policy
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = most-recently-used / most-recently-inserted
}

type entry struct {
	key   string
	value family.Family
}

// New returns a Cache with the given capacity and eviction policy. A
// capacity of 0 disables the cache.
func New(capacity int, policy Policy) *Cache {
	return &Cache{
		policy:   policy,
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get looks up the canonical form of raw, reporting a miss if absent or if
// caching is disabled.
func (c *Cache) Get(raw family.Family) (family.Family, bool) {
	if c.capacity <= 0 {
		return family.Family{}, false
	}
	key := raw.Key()
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return family.Family{}, false
	}
	if c.policy == LRU {
		c.order.MoveToFront(el)
	}
	if debug.Cache() {
		debug.Logf("cache: hit %s\n", key)
	}
	return el.Value.(*entry).value, true
}

// Put records the canonical form of raw, evicting per Policy if the cache
// is at capacity. A no-op when caching is disabled.
func (c *Cache) Put(raw, canonical family.Family) {
	if c.capacity <= 0 {
		return
	}
	key := raw.Key()
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*entry).value = canonical
		if c.policy == LRU {
			c.order.MoveToFront(el)
		}
		return
	}
	for len(c.entries) >= c.capacity {
		c.evictOldest()
	}
	el := c.order.PushFront(&entry{key: key, value: canonical})
	c.entries[key] = el
	if debug.Cache() {
		debug.Logf("cache: put %s (size=%d/%d)\n", key, len(c.entries), c.capacity)
	}
}

// evictOldest removes the back of the order list — the least-recently-used
// entry for LRU, or the oldest-inserted entry for FIFO, since both
// policies move fresh/touched entries to the front.
func (c *Cache) evictOldest() {
	back := c.order.Back()
	if back == nil {
		return
	}
	c.order.Remove(back)
	delete(c.entries, back.Value.(*entry).key)
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
