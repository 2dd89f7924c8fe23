// Package cache fronts the published-topic catalog with a read-through
// cache so the hottest endpoint does not hit the DB on every request.
// Redis is used when configured, with an in-process fallback otherwise.
package cache

import (
	"context"

	"github.com/rights360/rights360/internal/content"
)

// TopicSource loads topic listings from the backing store on cache miss.
type TopicSource interface {
	ListTopics(ctx context.Context, f content.Filter) ([]content.Topic, error)
}

func cacheKey(f content.Filter) string {
	return "topics:" + f.Category + ":" + f.Difficulty
}
