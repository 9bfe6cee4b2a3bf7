package metric

// Cache memoizes Symbols for a single Field by percentage and position. It
// belongs to whichever builder created it and must not be shared between
// goroutines.
type Cache struct {
	field *Field
	limit int
	m     map[cacheKey]*Symbols

	Hits, Misses int
}

type cacheKey struct {
	p float64
	x [4]float64
}

// NewCache creates a cache which holds at most limit entries. When the limit
// is reached the whole cache is dropped and refilled. A limit <= 0 means the
// cache is unbounded.
func NewCache(f *Field, limit int) *Cache {
	if f.Dim > 4 {
		panic("Cache only supports fields of up to four dimensions.")
	}
	return &Cache{field: f, limit: limit, m: map[cacheKey]*Symbols{}}
}

// Symbols returns the Christoffel symbols at x, computing them if needed.
// Callers must not modify the result.
func (c *Cache) Symbols(p float64, x []float64) *Symbols {
	key := cacheKey{p: p}
	copy(key.x[:], x)

	if s, ok := c.m[key]; ok {
		c.Hits++
		return s
	}
	c.Misses++

	if c.limit > 0 && len(c.m) >= c.limit {
		c.m = map[cacheKey]*Symbols{}
	}
	s := c.field.Symbols(p, x)
	c.m[key] = s
	return s
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return len(c.m) }
