package contract

import (
	"context"
	"time"

	"ai-legalassist-core/internal/entity"
)

type CacheRepository interface {
	// Upsert overwrites any existing entry for the same key.
	Upsert(ctx context.Context, entry *entity.CacheEntry) error
	FindByKey(ctx context.Context, key string) (*entity.CacheEntry, error)
	DeleteKeys(ctx context.Context, keys []string) error
	// DeleteExpired removes every entry whose expiry predates now.
	DeleteExpired(ctx context.Context, now time.Time) error
}
