package implementation

import (
	"context"
	"errors"
	"time"

	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/mapper"
	"ai-legalassist-core/internal/model"
	"ai-legalassist-core/internal/repository/contract"
	"ai-legalassist-core/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CacheRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CacheEntryMapper
}

func NewCacheRepository(db *gorm.DB) contract.CacheRepository {
	return &CacheRepositoryImpl{
		db:     db,
		mapper: mapper.NewCacheEntryMapper(),
	}
}

func (r *CacheRepositoryImpl) Upsert(ctx context.Context, entry *entity.CacheEntry) error {
	m := r.mapper.ToModel(entry)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(m).Error
}

func (r *CacheRepositoryImpl) FindByKey(ctx context.Context, key string) (*entity.CacheEntry, error) {
	var m model.CacheEntry
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CacheRepositoryImpl) DeleteKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	spec := specification.ByKeys{Keys: keys}
	return spec.Apply(r.db.WithContext(ctx)).Delete(&model.CacheEntry{}).Error
}

func (r *CacheRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) error {
	spec := specification.ExpiredBefore{Now: now}
	return spec.Apply(r.db.WithContext(ctx)).Delete(&model.CacheEntry{}).Error
}
