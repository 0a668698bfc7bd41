package retrieval

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// CachedRetriever is a read-through redis cache in front of a Retriever.
// Snippets only change when the knowledge base is re-indexed, so a short
// TTL keeps repeat questions within a conversation off the collaborator.
type CachedRetriever struct {
	next Retriever
	rdb  redis.Cmdable
	ttl  time.Duration
}

func NewCachedRetriever(next Retriever, rdb redis.Cmdable, ttl time.Duration) *CachedRetriever {
	return &CachedRetriever{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
	}
}

func cacheKey(query string, topK int) string {
	sum := sha1.Sum([]byte(query))
	return fmt.Sprintf("retrieval:v1:%d:%s", topK, hex.EncodeToString(sum[:]))
}

func (c *CachedRetriever) Retrieve(
	ctx context.Context,
	query string,
	topK int,
) ([]Snippet, error) {

	key := cacheKey(query, topK)

	if raw, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var snippets []Snippet
		if err := json.Unmarshal([]byte(raw), &snippets); err == nil {
			return snippets, nil
		}
	}

	snippets, err := c.next.Retrieve(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(snippets); err == nil {
		// cache failures never fail the lookup
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			log.Println("retrieval cache error:", err)
		}
	}

	return snippets, nil
}

var _ Retriever = (*CachedRetriever)(nil)
