package cache

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/rights360/rights360/internal/content"
)

// RedisTopicCache caches topic listings as JSON blobs keyed by filter and
// falls back to the source on miss. Concurrent misses for one key are
// coalesced through singleflight so the DB sees a single load.
type RedisTopicCache struct {
	client *redis.Client
	source TopicSource
	ttl    time.Duration
	sf     singleflight.Group
}

func NewRedisTopicCache(client *redis.Client, source TopicSource, ttl time.Duration) *RedisTopicCache {
	return &RedisTopicCache{client: client, source: source, ttl: ttl}
}

func (c *RedisTopicCache) ListTopics(ctx context.Context, f content.Filter) ([]content.Topic, error) {
	key := cacheKey(f)
	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var topics []content.Topic
		if json.Unmarshal(raw, &topics) == nil {
			return topics, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var topics []content.Topic
			if json.Unmarshal(raw, &topics) == nil {
				return topics, nil
			}
		}
		topics, err := c.source.ListTopics(ctx, f)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(topics); err == nil {
			_ = c.client.Set(ctx, key, raw, ttlWithJitter(c.ttl)).Err()
		}
		return topics, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]content.Topic), nil
}

// ttlWithJitter spreads expiries so a burst of writes does not expire at
// the same instant.
func ttlWithJitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	jitterMax := int64(ttl) / 10
	return ttl + time.Duration(rand.Int63n(jitterMax+1))
}
