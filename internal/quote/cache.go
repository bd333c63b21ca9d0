package quote

import (
	"container/list"
	"sync"
	"time"

	"github.com/dnmkhamed/hotel-boq/internal/adapters/observability"
	"github.com/dnmkhamed/hotel-boq/internal/domain"
)

// DefaultSize is the cache capacity when none is configured.
const DefaultSize = 128

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	MaxSize     int     `json:"maxsize"`
	CurrentSize int     `json:"currsize"`
	HitRatio    float64 `json:"hit_ratio"`
}

type entry struct {
	key Key
	rec Record
}

// Cache memoizes Compute behind a bounded LRU. All mutation happens
// under one lock, so an insert and its eviction are a single atomic
// step even under concurrent fan-out.
type Cache struct {
	clock domain.Clock

	mu     sync.Mutex
	max    int
	ll     *list.List // front is most recently used
	items  map[Key]*list.Element
	hits   int64
	misses int64
}

// NewCache builds a cache of the given capacity. A non-positive size
// falls back to DefaultSize.
func NewCache(size int, clock domain.Clock) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	return &Cache{
		clock: clock,
		max:   size,
		ll:    list.New(),
		items: make(map[Key]*list.Element, size),
	}
}

// Quote returns the priced stay for the key, computing and caching it on
// first sight. A hit refreshes the key's recency; an insert at capacity
// evicts the least recently used entry. Failed computations are not
// cached.
func (c *Cache) Quote(k Key) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[k]; ok {
		c.hits++
		c.ll.MoveToFront(el)
		observability.ObserveCache("quote", "hit")
		return el.Value.(*entry).rec, nil
	}

	c.misses++
	observability.ObserveCache("quote", "miss")
	rec, err := Compute(k, c.clock.Now())
	if err != nil {
		return Record{}, err
	}

	c.items[k] = c.ll.PushFront(&entry{key: k, rec: rec})
	if c.ll.Len() > c.max {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
	return rec, nil
}

// Clear drops every entry and resets the hit/miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	c.items = make(map[Key]*list.Element, c.max)
	c.hits, c.misses = 0, 0
}

// Stats reports the cache counters. The ratio is zero before any lookup.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:        c.hits,
		Misses:      c.misses,
		MaxSize:     c.max,
		CurrentSize: c.ll.Len(),
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRatio = float64(c.hits) / float64(total)
	}
	return s
}

// Bench is the outcome of one benchmark run over a fixed key.
type Bench struct {
	Iterations int           `json:"iterations"`
	Uncached   time.Duration `json:"uncached"`
	Cached     time.Duration `json:"cached"`
}

// Speedup reports how many times faster the cached loop ran.
func (b Bench) Speedup() float64 {
	if b.Cached <= 0 {
		return 0
	}
	return float64(b.Uncached) / float64(b.Cached)
}

// Benchmark times iterations of the same quote with the cache bypassed,
// clears the cache, then times the same iterations through it.
func (c *Cache) Benchmark(k Key, iterations int) Bench {
	if iterations <= 0 {
		iterations = 300
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		_, _ = Compute(k, c.clock.Now())
	}
	uncached := time.Since(start)

	c.Clear()

	start = time.Now()
	for i := 0; i < iterations; i++ {
		_, _ = c.Quote(k)
	}
	cached := time.Since(start)

	return Bench{Iterations: iterations, Uncached: uncached, Cached: cached}
}
