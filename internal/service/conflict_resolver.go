package service

import (
	"fmt"
	"time"
)

// ConflictStrategy picks which side of a sync conflict wins.
type ConflictStrategy string

const (
	ConflictServerWins    ConflictStrategy = "server_wins"
	ConflictClientWins    ConflictStrategy = "client_wins"
	ConflictLastWriteWins ConflictStrategy = "last_write_wins"
	ConflictMerge         ConflictStrategy = "merge"
)

// MergeFunc is the caller-supplied merge hook. There is no default merge
// algorithm; registering ConflictMerge without a hook is an error.
type MergeFunc func(local, server []byte) ([]byte, error)

// Resolution says which payload to keep and whether the client copy must be
// re-sent to the backend.
type Resolution struct {
	Payload      []byte
	ResendNeeded bool
}

// ConflictResolver applies a per-data-type strategy. Ambiguous cases default
// to server-wins; callers must opt in to anything else.
type ConflictResolver struct {
	strategy ConflictStrategy
	merge    MergeFunc
}

func NewConflictResolver(strategy ConflictStrategy, merge MergeFunc) *ConflictResolver {
	if strategy == "" {
		strategy = ConflictServerWins
	}
	return &ConflictResolver{strategy: strategy, merge: merge}
}

func (r *ConflictResolver) Resolve(local, server []byte, localTime, serverTime time.Time) (Resolution, error) {
	switch r.strategy {
	case ConflictServerWins:
		return Resolution{Payload: server}, nil
	case ConflictClientWins:
		return Resolution{Payload: local, ResendNeeded: true}, nil
	case ConflictLastWriteWins:
		if localTime.After(serverTime) {
			return Resolution{Payload: local, ResendNeeded: true}, nil
		}
		return Resolution{Payload: server}, nil
	case ConflictMerge:
		if r.merge == nil {
			return Resolution{}, fmt.Errorf("merge strategy selected without a merge function")
		}
		merged, err := r.merge(local, server)
		if err != nil {
			return Resolution{}, fmt.Errorf("merge conflict payloads: %w", err)
		}
		return Resolution{Payload: merged, ResendNeeded: true}, nil
	default:
		return Resolution{Payload: server}, nil
	}
}
