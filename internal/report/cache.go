package report

import (
	"sync"

	"github.com/hamed0406/synthcheck/internal/domain"
)

// Cache holds the most recent report. This is deliberately a point-in-time
// snapshot, not a history: older reports are discarded on Set.
type Cache struct {
	mu     sync.RWMutex
	latest *domain.HealthReport
}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Set(r domain.HealthReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = &r
}

// Latest returns the newest report, or ok=false before the first pass.
func (c *Cache) Latest() (domain.HealthReport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return domain.HealthReport{}, false
	}
	return *c.latest, true
}
