package cache

import (
	"context"
	"sync"
	"time"

	"github.com/rights360/rights360/internal/content"
)

// MemoryTopicCache is the in-process equivalent of RedisTopicCache for
// single-node deployments without Redis.
type MemoryTopicCache struct {
	source TopicSource
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	topics  []content.Topic
	expires time.Time
}

func NewMemoryTopicCache(source TopicSource, ttl time.Duration) *MemoryTopicCache {
	return &MemoryTopicCache{source: source, ttl: ttl, entries: map[string]memoryEntry{}}
}

func (c *MemoryTopicCache) ListTopics(ctx context.Context, f content.Filter) ([]content.Topic, error) {
	key := cacheKey(f)
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(e.expires) {
		return e.topics, nil
	}

	topics, err := c.source.ListTopics(ctx, f)
	if err != nil {
		return nil, err
	}
	if c.ttl > 0 {
		c.mu.Lock()
		c.entries[key] = memoryEntry{topics: topics, expires: time.Now().Add(ttlWithJitter(c.ttl))}
		c.mu.Unlock()
	}
	return topics, nil
}
