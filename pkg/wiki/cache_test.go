package wiki

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapKeyValue is a keyValue backed by a plain map, with switchable failure
// modes to exercise the degradation paths.
type mapKeyValue struct {
	store   map[string]string
	failing bool
}

func newMapKeyValue() *mapKeyValue {
	return &mapKeyValue{store: make(map[string]string)}
}

func (m *mapKeyValue) Get(ctx context.Context, key string) (string, error) {
	if m.failing {
		return "", errors.New("kv unavailable")
	}
	val, ok := m.store[key]
	if !ok {
		return "", errCacheMiss
	}
	return val, nil
}

func (m *mapKeyValue) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.failing {
		return errors.New("kv unavailable")
	}
	m.store[key] = value
	return nil
}

// countingTagSource wraps a TagSource and counts lookups.
type countingTagSource struct {
	next  TagSource
	calls int
}

func (c *countingTagSource) PageTags(ctx context.Context, pageID int64) (map[int64]string, error) {
	c.calls++
	return c.next.PageTags(ctx, pageID)
}

func taggedHost() *MemoryHost {
	host := NewMemoryHost()
	host.AddPage(Page{ID: 5, SubwikiID: 100})
	host.TagPage(5, 9, "biology")
	return host
}

func TestCachedTagSource_ServesFromCacheOnSecondLookup(t *testing.T) {
	ctx := context.Background()
	source := &countingTagSource{next: taggedHost()}
	cached := newCachedTagSourceKV(source, newMapKeyValue(), time.Minute)

	first, err := cached.PageTags(ctx, 5)
	require.NoError(t, err)
	second, err := cached.PageTags(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, map[int64]string{9: "biology"}, second)
	assert.Equal(t, 1, source.calls, "second lookup must hit the cache")
}

func TestCachedTagSource_FallsThroughWhenCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	source := &countingTagSource{next: taggedHost()}
	kv := newMapKeyValue()
	kv.failing = true
	cached := newCachedTagSourceKV(source, kv, time.Minute)

	tags, err := cached.PageTags(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{9: "biology"}, tags)
	assert.Equal(t, 1, source.calls)
}

func TestCachedTagSource_CorruptEntryIsTreatedAsMiss(t *testing.T) {
	ctx := context.Background()
	source := &countingTagSource{next: taggedHost()}
	kv := newMapKeyValue()
	kv.store[tagCacheKeyPrefix+"5"] = "{not json"
	cached := newCachedTagSourceKV(source, kv, time.Minute)

	tags, err := cached.PageTags(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{9: "biology"}, tags)
	assert.Equal(t, 1, source.calls)
	assert.JSONEq(t, `{"9":"biology"}`, kv.store[tagCacheKeyPrefix+"5"], "corrupt entry is overwritten")
}
