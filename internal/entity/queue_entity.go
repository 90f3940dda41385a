package entity

import (
	"time"

	"github.com/google/uuid"
)

// OperationType identifies which backend replay an offline queue item needs.
type OperationType string

const (
	OperationExecutionSync     OperationType = "execution_sync"
	OperationFavoriteToggle    OperationType = "favorite_toggle"
	OperationPreferencesUpdate OperationType = "preferences_update"
	OperationUsageLog          OperationType = "usage_log"
)

// OfflineQueueItem is a pending state-mutating operation awaiting replay
// against the backend. Items are removed only after a confirmed successful
// replay; items that exhaust their retry budget are retained with an error
// message for manual inspection, never silently dropped.
type OfflineQueueItem struct {
	Id            uuid.UUID
	Operation     OperationType
	Payload       []byte
	Priority      int
	RetryCount    int
	LastAttemptAt *time.Time
	ErrorMessage  *string
	CreatedAt     time.Time
}

// Terminal reports whether the item has exhausted its retry budget and is
// excluded from automatic replay.
func (i *OfflineQueueItem) Terminal(maxRetries int) bool {
	return i.RetryCount >= maxRetries
}
