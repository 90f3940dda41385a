package entity

import "time"

// CacheEntry is one durable cached value. Expiry is absolute: an entry is
// expired exactly when now is after ExpiresAt.
type CacheEntry struct {
	Key       string
	Payload   []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the entry has passed its expiry at the given time.
func (e *CacheEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
