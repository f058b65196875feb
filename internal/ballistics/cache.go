package ballistics

type touchdownKey struct {
	target, a float64
}

// Cache memoizes derived quantities of one projectile, keyed by acceleration.
// Errors are not cached.
type Cache struct {
	p          Projectile
	maxHeights map[float64]float64
	touchdowns map[touchdownKey]float64
}

func NewCache(p Projectile) *Cache {
	return &Cache{
		p:          p,
		maxHeights: make(map[float64]float64),
		touchdowns: make(map[touchdownKey]float64),
	}
}

func (c *Cache) Projectile() Projectile { return c.p }

func (c *Cache) MaxHeight(a float64) (float64, error) {
	if h, ok := c.maxHeights[a]; ok {
		return h, nil
	}
	h, err := c.p.MaxHeight(a)
	if err != nil {
		return 0, err
	}
	c.maxHeights[a] = h
	return h, nil
}

func (c *Cache) TouchdownTime(target, a float64) (float64, error) {
	key := touchdownKey{target: target, a: a}
	if t, ok := c.touchdowns[key]; ok {
		return t, nil
	}
	t, err := c.p.TouchdownTime(target, a)
	if err != nil {
		return 0, err
	}
	c.touchdowns[key] = t
	return t, nil
}

// Len returns the number of memoized values.
func (c *Cache) Len() int {
	return len(c.maxHeights) + len(c.touchdowns)
}
