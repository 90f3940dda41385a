package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OfflineQueueItem struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Operation     string         `gorm:"type:varchar(64);not null;index"`
	Payload       datatypes.JSON `gorm:"not null"`
	Priority      int            `gorm:"not null;default:0;index"`
	RetryCount    int            `gorm:"not null;default:0"`
	LastAttemptAt *time.Time
	ErrorMessage  *string
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

func (OfflineQueueItem) TableName() string {
	return "offline_queue_items"
}
