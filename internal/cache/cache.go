package cache

import "sync"

// Cache is a generic thread-safe LRU cache.
// When the cache holds more than limit entries, the least recently used
// entry is evicted. A limit of 0 means unlimited.
//
// Cache is safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	order   recency[K, V]
	limit   int
}

// New creates a new cache holding at most limit entries.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*entry[K, V]),
		limit:   limit,
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.touch(e)
	return e.value, true
}

// Set stores a value in the cache, evicting the oldest entry if needed.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.set(key, value)
}

// GetOrCreate returns the cached value for key or creates it.
// create runs under the cache lock so concurrent callers never build the
// same value twice. Errors are returned and nothing is stored.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.order.touch(e)
		return e.value, nil
	}

	value, err := create()
	if err != nil {
		return value, err
	}
	c.set(key, value)
	return value, nil
}

// set stores value under key. Caller must hold c.mu.
func (c *Cache[K, V]) set(key K, value V) {
	e, ok := c.entries[key]
	if !ok {
		e = &entry[K, V]{key: key}
		c.entries[key] = e
	}
	e.value = value
	c.order.touch(e)

	for c.limit > 0 && len(c.entries) > c.limit {
		oldest := c.order.evict()
		if oldest == nil {
			break
		}
		delete(c.entries, oldest.key)
	}
}
