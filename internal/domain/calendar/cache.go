package calendar

import (
	"container/list"
	"sync"
)

// ResultCache memoizes applicable-holiday sets keyed by the full call tuple
// (interval, normalized localities, rule bits).  It is the engine's only
// shared mutable state and must be safe for concurrent readers and writers.
// The cache is injected into the engine rather than held as package state so
// each test can use a fresh instance.
//
// Staleness contract: the holiday store is assumed immutable within an
// entry's lifetime.  After editing holiday data an operator calls Clear;
// reads racing a Clear may still observe the old set once and self-correct
// on the next call.
type ResultCache interface {
	Get(key string) (DateSet, bool)
	Put(key string, value DateSet)
	Clear()
	Len() int
}

type lruEntry struct {
	key   string
	value DateSet
}

// lruCache is a bounded map with recency eviction.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
	onEvict  func()
}

// NewResultCache returns a ResultCache bounded to capacity entries.
// Capacities below one are coerced to one.
func NewResultCache(capacity int) ResultCache {
	return NewResultCacheWithEvictionHook(capacity, nil)
}

// NewResultCacheWithEvictionHook additionally invokes onEvict (if non-nil)
// each time an entry is dropped to make room, so callers can surface
// eviction pressure as a metric.
func NewResultCacheWithEvictionHook(capacity int, onEvict func()) ResultCache {
	if capacity < 1 {
		capacity = 1
	}
	return &lruCache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
		onEvict:  onEvict,
	}
}

func (c *lruCache) Get(key string) (DateSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*lruEntry).value, true
}

func (c *lruCache) Put(key string, value DateSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		el.Value.(*lruEntry).value = value
		return
	}

	el := c.ll.PushFront(&lruEntry{key: key, value: value})
	c.items[key] = el

	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
			if c.onEvict != nil {
				c.onEvict()
			}
		}
	}
}

func (c *lruCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	c.items = make(map[string]*list.Element)
}

func (c *lruCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
