package cache

// entry is a cached value and its place in the recency list.
type entry[K comparable, V any] struct {
	key   K
	value V

	newer, older *entry[K, V]
}

// recency orders entries from most to least recently used.
// It is not safe for concurrent use; Cache guards it with its mutex.
type recency[K comparable, V any] struct {
	newest, oldest *entry[K, V]
}

// touch moves e to the newest end, linking it in if it is new.
func (r *recency[K, V]) touch(e *entry[K, V]) {
	if r.newest == e {
		return
	}
	if e.newer != nil || e.older != nil || r.oldest == e {
		r.detach(e)
	}
	e.newer, e.older = nil, r.newest
	if r.newest != nil {
		r.newest.newer = e
	}
	r.newest = e
	if r.oldest == nil {
		r.oldest = e
	}
}

// evict unlinks and returns the least recently used entry, or nil.
func (r *recency[K, V]) evict() *entry[K, V] {
	e := r.oldest
	if e != nil {
		r.detach(e)
	}
	return e
}

func (r *recency[K, V]) detach(e *entry[K, V]) {
	if e.newer != nil {
		e.newer.older = e.older
	} else {
		r.newest = e.older
	}
	if e.older != nil {
		e.older.newer = e.newer
	} else {
		r.oldest = e.newer
	}
	e.newer, e.older = nil, nil
}
