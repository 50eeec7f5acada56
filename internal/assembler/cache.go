package assembler

import "sync"

// DefaultCacheCapacity bounds the envelope cache when no capacity is
// configured.
const DefaultCacheCapacity = 128

// cache is a fixed-capacity FIFO memo of assembled envelopes. Insertion
// order is the only eviction signal; a hit does not refresh an entry. The
// zero value is not usable, construct with newCache.
type cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*Envelope
	order    []string
	hits     uint64
	misses   uint64
}

func newCache(capacity int) *cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &cache{
		capacity: capacity,
		entries:  make(map[string]*Envelope, capacity),
	}
}

func (c *cache) get(key string) (*Envelope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	env, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return env, ok
}

func (c *cache) put(key string, env *Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		c.entries[key] = env
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = env
	c.order = append(c.order, key)
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CacheStats is a point-in-time snapshot of cache effectiveness, exposed for
// metrics collection.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

func (c *cache) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}
