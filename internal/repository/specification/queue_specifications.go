package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByOperation filters queue items by operation type.
type ByOperation struct {
	Operation string
}

func (s ByOperation) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("operation = ?", s.Operation)
}

// Retryable selects items still inside their retry budget.
type Retryable struct {
	MaxRetries int
}

func (s Retryable) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("retry_count < ?", s.MaxRetries)
}

// TerminalFailed selects items that exhausted their retry budget. They are
// retained for manual inspection, never deleted automatically.
type TerminalFailed struct {
	MaxRetries int
}

func (s TerminalFailed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("retry_count >= ?", s.MaxRetries)
}

// DrainOrder is the replay order: priority descending, then FIFO within the
// same priority.
type DrainOrder struct{}

func (s DrainOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("priority DESC").Order("created_at ASC")
}

// ExpiredBefore selects cache entries whose expiry has passed.
type ExpiredBefore struct {
	Now time.Time
}

func (s ExpiredBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at < ?", s.Now)
}

// ByKeys filters cache entries by key.
type ByKeys struct {
	Keys []string
}

func (s ByKeys) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("key IN ?", s.Keys)
}
