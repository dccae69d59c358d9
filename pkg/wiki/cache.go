package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const tagCacheKeyPrefix = "wikifilter:tags:page:"

// errCacheMiss signals an absent key to the cached source.
var errCacheMiss = errors.New("wiki.tag_cache_miss")

// keyValue is the minimal cache surface the tag cache needs. Satisfied by the
// redis adapter in production and by a plain map in tests.
type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// redisKeyValue adapts a go-redis client to the keyValue interface.
type redisKeyValue struct {
	client redis.UniversalClient
}

func (r redisKeyValue) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", errCacheMiss
	}
	return val, err
}

func (r redisKeyValue) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// CachedTagSource decorates a TagSource with a short-lived per-page cache.
// Tag edits on the host side become visible after the TTL; the evaluation
// path tolerates that staleness the same way it tolerates stale association
// tag ids. Cache failures fall through to the underlying source, so an
// unavailable Redis degrades to slower lookups, never to errors.
type CachedTagSource struct {
	next TagSource
	kv   keyValue
	ttl  time.Duration
}

// NewCachedTagSource builds a redis-backed cache in front of the source.
func NewCachedTagSource(next TagSource, client redis.UniversalClient, ttl time.Duration) *CachedTagSource {
	return &CachedTagSource{next: next, kv: redisKeyValue{client: client}, ttl: ttl}
}

// newCachedTagSourceKV is the injection point for tests.
func newCachedTagSourceKV(next TagSource, kv keyValue, ttl time.Duration) *CachedTagSource {
	return &CachedTagSource{next: next, kv: kv, ttl: ttl}
}

func (c *CachedTagSource) PageTags(ctx context.Context, pageID int64) (map[int64]string, error) {
	key := tagCacheKeyPrefix + strconv.FormatInt(pageID, 10)

	if raw, err := c.kv.Get(ctx, key); err == nil {
		var tags map[int64]string
		if err := json.Unmarshal([]byte(raw), &tags); err == nil {
			return tags, nil
		}
		// Corrupt entries are treated as misses and overwritten below.
	}

	tags, err := c.next.PageTags(ctx, pageID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(tags); err == nil {
		_ = c.kv.Set(ctx, key, string(raw), c.ttl)
	}

	return tags, nil
}

var _ TagSource = (*CachedTagSource)(nil)
