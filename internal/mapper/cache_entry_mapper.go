package mapper

import (
	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/model"

	"gorm.io/datatypes"
)

type CacheEntryMapper struct{}

func NewCacheEntryMapper() *CacheEntryMapper {
	return &CacheEntryMapper{}
}

func (m *CacheEntryMapper) ToEntity(e *model.CacheEntry) *entity.CacheEntry {
	if e == nil {
		return nil
	}

	return &entity.CacheEntry{
		Key:       e.Key,
		Payload:   []byte(e.Payload),
		CreatedAt: e.CreatedAt,
		ExpiresAt: e.ExpiresAt,
	}
}

func (m *CacheEntryMapper) ToModel(e *entity.CacheEntry) *model.CacheEntry {
	if e == nil {
		return nil
	}

	return &model.CacheEntry{
		Key:       e.Key,
		Payload:   datatypes.JSON(e.Payload),
		CreatedAt: e.CreatedAt,
		ExpiresAt: e.ExpiresAt,
	}
}
