package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"ai-legalassist-core/internal/client"
	"ai-legalassist-core/internal/constant"
	"ai-legalassist-core/internal/dto"
	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/pkg/logger"
	"ai-legalassist-core/internal/repository/contract"
	"ai-legalassist-core/internal/repository/specification"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// SyncBackend replays one queue item type against the backend.
type SyncBackend interface {
	SyncExecution(ctx context.Context, record dto.ExecutionRecord) error
	SyncFavorite(ctx context.Context, toggle dto.FavoriteToggle) error
	SyncPreferences(ctx context.Context, update dto.PreferencesUpdate) error
	SyncUsage(ctx context.Context, usage dto.UsageLog) error
}

// OnlineChecker reports current connectivity. Implemented by the
// reachability service.
type OnlineChecker interface {
	IsOnline() bool
}

// ISyncService owns the durable offline queue. Items are removed only after
// a confirmed successful replay; items that exhaust their retry budget stay
// visible with an error message, never silently dropped.
type ISyncService interface {
	// Enqueue persists a state-mutating operation for replay. Operations are
	// queued eagerly even while online, for durability.
	Enqueue(ctx context.Context, operation entity.OperationType, payload interface{}, priority int) error
	// ProcessQueue drains pending items in priority-descending, then
	// FIFO order. Guarded by a single-flight flag.
	ProcessQueue(ctx context.Context) error
	IsSyncing() bool
	PendingCount(ctx context.Context) (int64, error)
	FailedItems(ctx context.Context) ([]*entity.OfflineQueueItem, error)
	// RetryFailed resets a terminal-failed item back into the retryable set.
	RetryFailed(ctx context.Context, id uuid.UUID) error
	// Consume begins listening for online transitions and drains on each.
	Consume(ctx context.Context) error
}

type syncService struct {
	repo       contract.QueueRepository
	backend    SyncBackend
	online     OnlineChecker
	resolver   *ConflictResolver
	cache      ICacheService
	pubSub     *gochannel.GoChannel
	maxRetries int
	backoff    time.Duration
	logger     logger.ILogger

	syncing atomic.Bool
}

func NewSyncService(
	repo contract.QueueRepository,
	backend SyncBackend,
	online OnlineChecker,
	resolver *ConflictResolver,
	cache ICacheService,
	pubSub *gochannel.GoChannel,
	maxRetries int,
	backoffBase time.Duration,
	log logger.ILogger,
) ISyncService {
	return &syncService{
		repo:       repo,
		backend:    backend,
		online:     online,
		resolver:   resolver,
		cache:      cache,
		pubSub:     pubSub,
		maxRetries: maxRetries,
		backoff:    backoffBase,
		logger:     log,
	}
}

func (s *syncService) Enqueue(ctx context.Context, operation entity.OperationType, payload interface{}, priority int) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal queue payload: %w", err)
	}

	item := &entity.OfflineQueueItem{
		Id:        uuid.New(),
		Operation: operation,
		Payload:   data,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("persist queue item: %w", err)
	}

	s.logger.Debug("SyncService", "Operation queued", map[string]interface{}{
		"id":        item.Id.String(),
		"operation": string(operation),
		"priority":  priority,
	})
	return nil
}

func (s *syncService) IsSyncing() bool {
	return s.syncing.Load()
}

func (s *syncService) ProcessQueue(ctx context.Context) error {
	// Single-flight: one drain pass at a time.
	if !s.syncing.CompareAndSwap(false, true) {
		return nil
	}
	defer s.syncing.Store(false)

	items, err := s.repo.FindAll(ctx,
		specification.Retryable{MaxRetries: s.maxRetries},
		specification.DrainOrder{},
	)
	if err != nil {
		return fmt.Errorf("load pending queue items: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	s.logger.Info("SyncService", "Draining offline queue", map[string]interface{}{
		"pending": len(items),
	})

	for _, item := range items {
		// Abort mid-drain when connectivity drops; the just-failed item is
		// kept and the remainder stays pending.
		if s.online != nil && !s.online.IsOnline() {
			s.logger.Warn("SyncService", "Connectivity lost mid-drain, aborting", nil)
			return nil
		}

		// Exponential backoff before each retry, never before the first
		// attempt: base × 2^(retryCount-1).
		if item.RetryCount > 0 {
			if err := sleepCtx(ctx, s.backoffDelay(item.RetryCount)); err != nil {
				return nil
			}
		}

		s.attempt(ctx, item)
	}
	return nil
}

func (s *syncService) backoffDelay(retryCount int) time.Duration {
	return s.backoff << (retryCount - 1)
}

func (s *syncService) attempt(ctx context.Context, item *entity.OfflineQueueItem) {
	err := s.dispatch(ctx, item)
	if err == nil {
		if delErr := s.repo.Delete(ctx, item.Id); delErr != nil {
			s.logger.Error("SyncService", "Failed to delete synced item", map[string]interface{}{
				"id":    item.Id.String(),
				"error": delErr.Error(),
			})
		}
		return
	}

	now := time.Now()
	message := err.Error()
	item.LastAttemptAt = &now
	item.ErrorMessage = &message

	var decodeErr *payloadDecodeError
	if errors.As(err, &decodeErr) {
		// Local corruption is non-retryable: flag terminal immediately but
		// retain the item, since silent data loss is worse than a visible
		// stuck item.
		item.RetryCount = s.maxRetries
	} else {
		item.RetryCount++
	}

	if updateErr := s.repo.Update(ctx, item); updateErr != nil {
		s.logger.Error("SyncService", "Failed to record attempt", map[string]interface{}{
			"id":    item.Id.String(),
			"error": updateErr.Error(),
		})
		return
	}

	if item.Terminal(s.maxRetries) {
		s.logger.Error("SyncService", "Queue item failed terminally", map[string]interface{}{
			"id":        item.Id.String(),
			"operation": string(item.Operation),
			"error":     message,
		})
	} else {
		s.logger.Warn("SyncService", "Queue item replay failed, will retry", map[string]interface{}{
			"id":      item.Id.String(),
			"retries": item.RetryCount,
			"error":   message,
		})
	}
}

// payloadDecodeError marks a locally corrupted payload; it is never retried.
type payloadDecodeError struct {
	cause error
}

func (e *payloadDecodeError) Error() string { return "decode queue payload: " + e.cause.Error() }
func (e *payloadDecodeError) Unwrap() error { return e.cause }

func (s *syncService) dispatch(ctx context.Context, item *entity.OfflineQueueItem) error {
	switch item.Operation {
	case entity.OperationExecutionSync:
		var record dto.ExecutionRecord
		if err := json.Unmarshal(item.Payload, &record); err != nil {
			return &payloadDecodeError{cause: err}
		}
		return s.backend.SyncExecution(ctx, record)

	case entity.OperationFavoriteToggle:
		var toggle dto.FavoriteToggle
		if err := json.Unmarshal(item.Payload, &toggle); err != nil {
			return &payloadDecodeError{cause: err}
		}
		if err := s.backend.SyncFavorite(ctx, toggle); err != nil {
			return err
		}
		// A replayed toggle invalidates any cached catalog view.
		if s.cache != nil {
			_ = s.cache.InvalidateCache(ctx, catalogCacheKey)
		}
		return nil

	case entity.OperationPreferencesUpdate:
		var update dto.PreferencesUpdate
		if err := json.Unmarshal(item.Payload, &update); err != nil {
			return &payloadDecodeError{cause: err}
		}
		return s.syncPreferences(ctx, item, update)

	case entity.OperationUsageLog:
		var usage dto.UsageLog
		if err := json.Unmarshal(item.Payload, &usage); err != nil {
			return &payloadDecodeError{cause: err}
		}
		return s.backend.SyncUsage(ctx, usage)

	default:
		return &payloadDecodeError{cause: fmt.Errorf("unknown operation %q", item.Operation)}
	}
}

// syncPreferences handles the one op type where the backend can report a
// conflict. The resolver decides which side wins; only a winning client copy
// is re-sent.
func (s *syncService) syncPreferences(ctx context.Context, item *entity.OfflineQueueItem, update dto.PreferencesUpdate) error {
	err := s.backend.SyncPreferences(ctx, update)
	if err == nil {
		return nil
	}

	var conflict *client.ConflictError
	if !errors.As(err, &conflict) {
		return err
	}

	resolution, resolveErr := s.resolver.Resolve(item.Payload, conflict.ServerPayload, update.UpdatedAt, conflict.ServerUpdatedAt)
	if resolveErr != nil {
		return resolveErr
	}
	if !resolution.ResendNeeded {
		// Server copy stands; the local mutation is considered synced.
		return nil
	}

	var winning dto.PreferencesUpdate
	if decodeErr := json.Unmarshal(resolution.Payload, &winning); decodeErr != nil {
		return &payloadDecodeError{cause: decodeErr}
	}
	return s.backend.SyncPreferences(ctx, winning)
}

func (s *syncService) PendingCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, specification.Retryable{MaxRetries: s.maxRetries})
}

func (s *syncService) FailedItems(ctx context.Context) ([]*entity.OfflineQueueItem, error) {
	return s.repo.FindAll(ctx,
		specification.TerminalFailed{MaxRetries: s.maxRetries},
		specification.DrainOrder{},
	)
}

func (s *syncService) RetryFailed(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("queue item %s not found", id)
	}

	item.RetryCount = 0
	item.ErrorMessage = nil
	return s.repo.Update(ctx, item)
}

// Consume drains the queue on every offline-to-online transition.
func (s *syncService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, constant.TopicNetworkStatus)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var event dto.NetworkStatusEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				msg.Ack()
				continue
			}
			msg.Ack()

			if event.Online {
				if err := s.ProcessQueue(ctx); err != nil {
					s.logger.Error("SyncService", "Queue drain failed", map[string]interface{}{
						"error": err.Error(),
					})
				}
			}
		}
	}()

	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
