package model

import (
	"time"

	"gorm.io/datatypes"
)

type CacheEntry struct {
	Key       string         `gorm:"type:varchar(255);primaryKey"`
	Payload   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	ExpiresAt time.Time      `gorm:"not null;index"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}
