package mem

import (
	"sort"
	"sync"

	"github.com/Nick-Wu5/ceeps/internal/normalize"
)

// Cache keeps the roster keyed by normalised name so submissions can be
// matched to the canonical spelling without a storage round trip.
type Cache struct {
	mu      sync.RWMutex
	valid   bool
	players map[string]string
}

func New() *Cache {
	return &Cache{
		players: make(map[string]string),
	}
}

func (c *Cache) Update(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.players = make(map[string]string, len(names))
	for _, name := range names {
		c.players[normalize.Name(name)] = normalize.Trim(name)
	}
	c.valid = true
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

func (c *Cache) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.valid
}

// Resolve returns the canonical spelling of name.
func (c *Cache) Resolve(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	canonical, ok := c.players[normalize.Name(name)]
	return canonical, ok
}

func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.players))
	for _, name := range c.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
