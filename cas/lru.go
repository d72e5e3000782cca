package cas

import (
	"container/list"
	"sync"
)

// LRUCache fronts another store with a bounded cache of encoded entries.
// Writes go through to the underlying store and prime the cache, since the
// trace reads back the snapshot it stored one step earlier.
type LRUCache struct {
	mu         sync.Mutex
	underlying CAS
	entries    map[Hash]*list.Element
	order      *list.List
	maxSize    int
	hits       int
	misses     int
}

type cacheEntry struct {
	hash Hash
	data []byte
}

// NewLRUCache wraps underlying. A non-positive maxSize selects 1000 entries.
func NewLRUCache(underlying CAS, maxSize int) *LRUCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &LRUCache{
		underlying: underlying,
		entries:    make(map[Hash]*list.Element),
		order:      list.New(),
		maxSize:    maxSize,
	}
}

func (l *LRUCache) Put(item Hashable) (Hash, error) {
	h, err := l.underlying.Put(item)
	if err != nil {
		return 0, err
	}
	data, err := encode(item)
	if err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.add(h, data)
	return h, nil
}

func (l *LRUCache) Has(hash Hash) bool {
	l.mu.Lock()
	_, ok := l.entries[hash]
	l.mu.Unlock()
	return ok || l.underlying.Has(hash)
}

func (l *LRUCache) getValue(h Hash) (bool, []byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if elem, ok := l.entries[h]; ok {
		l.hits++
		l.order.MoveToFront(elem)
		return true, elem.Value.(*cacheEntry).data, nil
	}
	l.misses++

	store, ok := l.underlying.(directStore)
	if !ok {
		return false, nil, nil
	}
	has, data, err := store.getValue(h)
	if err != nil || !has {
		return has, nil, err
	}
	l.add(h, data)
	return true, data, nil
}

// add must be called with l.mu held.
func (l *LRUCache) add(h Hash, data []byte) {
	if elem, ok := l.entries[h]; ok {
		l.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).data = data
		return
	}
	l.entries[h] = l.order.PushFront(&cacheEntry{hash: h, data: data})
	for l.order.Len() > l.maxSize {
		oldest := l.order.Back()
		l.order.Remove(oldest)
		delete(l.entries, oldest.Value.(*cacheEntry).hash)
	}
}

type CacheStats struct {
	Size    int
	MaxSize int
	Hits    int
	Misses  int
}

func (l *LRUCache) Stats() CacheStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return CacheStats{
		Size:    len(l.entries),
		MaxSize: l.maxSize,
		Hits:    l.hits,
		Misses:  l.misses,
	}
}
