package buffer

// Cache maps animation parameter values to buffers built from them. It is
// owned by a single visual; when it fills up, every entry is dropped at once.
type Cache struct {
	build func(t float64) *PointCloud
	limit int
	m     map[float64]*PointCloud

	Builds int
}

// NewCache creates a cache around the given builder. A limit <= 0 keeps only
// the most recent buffer.
func NewCache(limit int, build func(t float64) *PointCloud) *Cache {
	if limit <= 0 {
		limit = 1
	}
	return &Cache{build: build, limit: limit, m: map[float64]*PointCloud{}}
}

// Get returns the buffer for t, building it if it is not cached. Callers
// must treat the result as read-only.
func (c *Cache) Get(t float64) *PointCloud {
	if pc, ok := c.m[t]; ok {
		return pc
	}
	if len(c.m) >= c.limit {
		c.m = map[float64]*PointCloud{}
	}
	pc := c.build(t)
	c.Builds++
	c.m[t] = pc
	return pc
}

// Reset drops every cached buffer.
func (c *Cache) Reset() { c.m = map[float64]*PointCloud{} }
