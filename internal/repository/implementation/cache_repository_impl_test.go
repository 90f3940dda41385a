package implementation

import (
	"context"
	"testing"
	"time"

	"ai-legalassist-core/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheEntry(key string, ttl time.Duration) *entity.CacheEntry {
	now := time.Now()
	return &entity.CacheEntry{
		Key:       key,
		Payload:   []byte(`{"cached":true}`),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestCacheRepositoryUpsertAndFind(t *testing.T) {
	repo := NewCacheRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, cacheEntry("tools:catalog", time.Hour)))

	found, err := repo.FindByKey(ctx, "tools:catalog")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.JSONEq(t, `{"cached":true}`, string(found.Payload))
}

func TestCacheRepositoryUpsertReplacesSameKey(t *testing.T) {
	repo := NewCacheRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, cacheEntry("k", time.Hour)))

	replacement := cacheEntry("k", time.Hour)
	replacement.Payload = []byte(`{"cached":false}`)
	require.NoError(t, repo.Upsert(ctx, replacement))

	found, err := repo.FindByKey(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.JSONEq(t, `{"cached":false}`, string(found.Payload))
}

func TestCacheRepositoryFindMissingIsNil(t *testing.T) {
	repo := NewCacheRepository(openTestDB(t))

	found, err := repo.FindByKey(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCacheRepositoryDeleteKeys(t *testing.T) {
	repo := NewCacheRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, cacheEntry("a", time.Hour)))
	require.NoError(t, repo.Upsert(ctx, cacheEntry("b", time.Hour)))

	require.NoError(t, repo.DeleteKeys(ctx, []string{"a"}))

	gone, err := repo.FindByKey(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repo.FindByKey(ctx, "b")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestCacheRepositoryDeleteExpired(t *testing.T) {
	repo := NewCacheRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, cacheEntry("stale", -time.Minute)))
	require.NoError(t, repo.Upsert(ctx, cacheEntry("fresh", time.Hour)))

	require.NoError(t, repo.DeleteExpired(ctx, time.Now()))

	gone, err := repo.FindByKey(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := repo.FindByKey(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}
