package cache

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/resumeiq-api/internal/ats"
)

// DefaultMemoryEntries bounds the in-process cache.
const DefaultMemoryEntries = 256

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryReportCache is a bounded in-process cache used when no Redis is
// configured. The oldest entry is evicted first.
type MemoryReportCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	order      []string
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

func NewMemoryReportCache(maxEntries int, ttl time.Duration) *MemoryReportCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &MemoryReportCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (c *MemoryReportCache) Get(ctx context.Context, key string) (*ats.Report, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	// expired entries stay until overwritten or evicted
	if ok && c.ttl > 0 && !c.now().Before(e.expiresAt) {
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return nil, ErrMiss
	}
	return decodeReport(e.value)
}

func (c *MemoryReportCache) Set(ctx context.Context, key string, r *ats.Report) error {
	b, err := encodeReport(r)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = memoryEntry{value: b, expiresAt: c.now().Add(c.ttl)}

	for len(c.order) > c.maxEntries {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
