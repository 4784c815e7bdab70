package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/edubel/exemption-gateway/pkg/errors"

	"github.com/edubel/exemption-gateway/internal/models"
)

// fakeCache is an in-memory CacheRepository sufficient for hit/miss flows.
type fakeCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func testSections() []models.Section {
	return []models.Section{
		{ID: "sec-1", Code: "INFO", Name: "Informatique de gestion"},
		{ID: "sec-2", Code: "COMPTA", Name: "Comptabilité"},
	}
}

func TestSectionsCachedAfterFirstLoad(t *testing.T) {
	store := &stubStore{sections: testSections()}
	cache := newFakeCache()
	svc := NewCatalogService(store, cache, nil, time.Minute, zap.NewNop())

	first, err := svc.Sections(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, store.sectionCalls)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Sections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.sectionCalls, "second read must be served from cache")
}

func TestSectionsWithoutCacheGoDirect(t *testing.T) {
	store := &stubStore{sections: testSections()}
	svc := NewCatalogService(store, nil, nil, time.Minute, zap.NewNop())

	_, err := svc.Sections(context.Background())
	require.NoError(t, err)
	_, err = svc.Sections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.sectionCalls)
}
