package service

import (
	"context"
	"time"

	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
)

// ICacheService is the TTL cache used by the sync layer and catalog.
// Entries survive process restarts: the durable sqlite store is the source
// of truth and an in-memory tier fronts it for repeated reads.
type ICacheService interface {
	// SetCache overwrites any existing entry for key.
	SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// GetCached returns nil both when the key is absent and when it has
	// expired; callers cannot distinguish the two.
	GetCached(ctx context.Context, key string) []byte
	// InvalidateCache removes the given keys, or sweeps every expired entry
	// when called with no keys.
	InvalidateCache(ctx context.Context, keys ...string) error
}

type cacheService struct {
	repo contract.CacheRepository
	mem  *gocache.Cache
}

func NewCacheService(repo contract.CacheRepository) ICacheService {
	return &cacheService{
		repo: repo,
		// Memory tier purges expired items on its own; durable sweeps go
		// through InvalidateCache.
		mem: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func (s *cacheService) SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := time.Now()
	entry := &entity.CacheEntry{
		Key:       key,
		Payload:   value,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return err
	}

	if ttl > 0 {
		s.mem.Set(key, value, ttl)
	} else {
		// go-cache reads ttl 0 as "default expiration"; a zero-or-negative
		// ttl means the entry is already expired, so keep it out of memory.
		s.mem.Delete(key)
	}
	return nil
}

func (s *cacheService) GetCached(ctx context.Context, key string) []byte {
	if value, found := s.mem.Get(key); found {
		if payload, ok := value.([]byte); ok {
			return payload
		}
	}

	entry, err := s.repo.FindByKey(ctx, key)
	if err != nil || entry == nil {
		return nil
	}
	now := time.Now()
	if entry.Expired(now) {
		return nil
	}

	// Rehydrate the memory tier for the remaining lifetime.
	if remaining := entry.ExpiresAt.Sub(now); remaining > 0 {
		s.mem.Set(key, entry.Payload, remaining)
	}
	return entry.Payload
}

func (s *cacheService) InvalidateCache(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		s.mem.DeleteExpired()
		return s.repo.DeleteExpired(ctx, time.Now())
	}

	for _, key := range keys {
		s.mem.Delete(key)
	}
	return s.repo.DeleteKeys(ctx, keys)
}
