package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-legalassist-core/internal/client"
	"ai-legalassist-core/internal/constant"
	"ai-legalassist-core/internal/dto"
	"ai-legalassist-core/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records replay calls and answers with scripted errors.
type fakeBackend struct {
	mu sync.Mutex

	executionErr   error
	favoriteErr    error
	preferencesErr []error
	usageErr       error

	executions  []dto.ExecutionRecord
	favorites   []dto.FavoriteToggle
	preferences []dto.PreferencesUpdate
	usages      []dto.UsageLog
}

func (b *fakeBackend) SyncExecution(ctx context.Context, record dto.ExecutionRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.executions = append(b.executions, record)
	return b.executionErr
}

func (b *fakeBackend) SyncFavorite(ctx context.Context, toggle dto.FavoriteToggle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.favorites = append(b.favorites, toggle)
	return b.favoriteErr
}

func (b *fakeBackend) SyncPreferences(ctx context.Context, update dto.PreferencesUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.preferences = append(b.preferences, update)
	if len(b.preferencesErr) == 0 {
		return nil
	}
	err := b.preferencesErr[0]
	b.preferencesErr = b.preferencesErr[1:]
	return err
}

func (b *fakeBackend) SyncUsage(ctx context.Context, usage dto.UsageLog) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.usages = append(b.usages, usage)
	return b.usageErr
}

func (b *fakeBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.executions) + len(b.favorites) + len(b.preferences) + len(b.usages)
}

func newTestSyncService(repo *fakeQueueRepo, backend *fakeBackend, online OnlineChecker, resolver *ConflictResolver) ISyncService {
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	if resolver == nil {
		resolver = NewConflictResolver(ConflictServerWins, nil)
	}
	return NewSyncService(repo, backend, online, resolver, nil, bus, 3, time.Millisecond, noopLogger{})
}

func TestEnqueuePersistsDurably(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := newTestSyncService(repo, &fakeBackend{}, nil, nil)

	err := svc.Enqueue(context.Background(), entity.OperationUsageLog, dto.UsageLog{Event: "context_changed"}, 0)
	require.NoError(t, err)

	require.Equal(t, 1, repo.size())
	item := repo.onlyItem()
	assert.Equal(t, entity.OperationUsageLog, item.Operation)
	assert.Equal(t, 0, item.RetryCount)
	assert.Nil(t, item.ErrorMessage)

	count, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProcessQueueRemovesOnlySyncedItem(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{}
	svc := newTestSyncService(repo, backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Enqueue(ctx, entity.OperationUsageLog, dto.UsageLog{Event: "a"}, 0))
	require.NoError(t, svc.ProcessQueue(ctx))

	assert.Equal(t, 0, repo.size())
	assert.Equal(t, 1, backend.calls())
	assert.False(t, svc.IsSyncing())
}

func TestProcessQueueEmptyIsNoop(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{}
	svc := newTestSyncService(repo, backend, nil, nil)

	require.NoError(t, svc.ProcessQueue(context.Background()))
	assert.Zero(t, backend.calls())
	assert.False(t, svc.IsSyncing())
}

func TestProcessQueueSingleFlight(t *testing.T) {
	repo := newFakeQueueRepo()
	svc := newTestSyncService(repo, &fakeBackend{}, nil, nil).(*syncService)

	svc.syncing.Store(true)
	require.NoError(t, svc.ProcessQueue(context.Background()))

	// The overlapping call must not even read the queue.
	assert.Zero(t, repo.findalls)
}

func TestFailedReplayIncrementsRetryAndRetains(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{usageErr: errors.New("server unavailable")}
	svc := newTestSyncService(repo, backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Enqueue(ctx, entity.OperationUsageLog, dto.UsageLog{Event: "a"}, 0))
	require.NoError(t, svc.ProcessQueue(ctx))

	require.Equal(t, 1, repo.size())
	item := repo.onlyItem()
	assert.Equal(t, 1, item.RetryCount)
	require.NotNil(t, item.ErrorMessage)
	assert.Contains(t, *item.ErrorMessage, "server unavailable")
	assert.NotNil(t, item.LastAttemptAt)
}

func TestItemTerminalAfterRetryBudget(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{usageErr: errors.New("still down")}
	svc := newTestSyncService(repo, backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Enqueue(ctx, entity.OperationUsageLog, dto.UsageLog{Event: "a"}, 0))

	// Drain more times than the budget allows; extra passes must not
	// produce extra attempts.
	for i := 0; i < 5; i++ {
		require.NoError(t, svc.ProcessQueue(ctx))
	}

	assert.Equal(t, 3, backend.calls())

	require.Equal(t, 1, repo.size())
	item := repo.onlyItem()
	assert.True(t, item.Terminal(3))

	count, err := svc.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	failed, err := svc.FailedItems(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
}

func TestRetryFailedResetsBudget(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{usageErr: errors.New("down")}
	svc := newTestSyncService(repo, backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Enqueue(ctx, entity.OperationUsageLog, dto.UsageLog{Event: "a"}, 0))
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.ProcessQueue(ctx))
	}
	item := repo.onlyItem()
	require.True(t, item.Terminal(3))

	require.NoError(t, svc.RetryFailed(ctx, item.Id))

	reset := repo.get(item.Id)
	assert.Zero(t, reset.RetryCount)
	assert.Nil(t, reset.ErrorMessage)

	// Backend recovered: the next drain clears it.
	backend.usageErr = nil
	require.NoError(t, svc.ProcessQueue(ctx))
	assert.Zero(t, repo.size())
}

func TestRetryFailedUnknownId(t *testing.T) {
	svc := newTestSyncService(newFakeQueueRepo(), &fakeBackend{}, nil, nil)
	err := svc.RetryFailed(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestCorruptPayloadIsTerminalImmediately(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{}
	svc := newTestSyncService(repo, backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.OfflineQueueItem{
		Id:        uuid.New(),
		Operation: entity.OperationUsageLog,
		Payload:   []byte("{corrupt"),
		CreatedAt: time.Now(),
	}))

	require.NoError(t, svc.ProcessQueue(ctx))

	// Never reached the backend, never retried, but still visible.
	assert.Zero(t, backend.calls())
	require.Equal(t, 1, repo.size())
	item := repo.onlyItem()
	assert.Equal(t, 3, item.RetryCount)
	require.NotNil(t, item.ErrorMessage)
	assert.Contains(t, *item.ErrorMessage, "decode queue payload")
}

func TestDrainOrderPriorityThenFIFO(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{}
	svc := newTestSyncService(repo, backend, nil, nil)
	ctx := context.Background()

	base := time.Now()
	enqueueAt := func(event string, priority int, at time.Time) {
		payload, _ := json.Marshal(dto.UsageLog{Event: event})
		require.NoError(t, repo.Create(ctx, &entity.OfflineQueueItem{
			Id:        uuid.New(),
			Operation: entity.OperationUsageLog,
			Payload:   payload,
			Priority:  priority,
			CreatedAt: at,
		}))
	}
	enqueueAt("low", 0, base)
	enqueueAt("high-late", 5, base.Add(2*time.Second))
	enqueueAt("high-early", 5, base.Add(time.Second))

	require.NoError(t, svc.ProcessQueue(ctx))

	require.Len(t, backend.usages, 3)
	assert.Equal(t, "high-early", backend.usages[0].Event)
	assert.Equal(t, "high-late", backend.usages[1].Event)
	assert.Equal(t, "low", backend.usages[2].Event)
}

func TestDrainAbortsWhenConnectivityDrops(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{}
	online := &onlineSequence{answers: []bool{true, false}}
	svc := newTestSyncService(repo, backend, online, nil)
	ctx := context.Background()

	require.NoError(t, svc.Enqueue(ctx, entity.OperationUsageLog, dto.UsageLog{Event: "first"}, 1))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, svc.Enqueue(ctx, entity.OperationUsageLog, dto.UsageLog{Event: "second"}, 0))

	require.NoError(t, svc.ProcessQueue(ctx))

	// First item replayed, second held for the next online window.
	assert.Equal(t, 1, backend.calls())
	assert.Equal(t, 1, repo.size())
	assert.Equal(t, "second", mustUsageEvent(t, repo.onlyItem().Payload))
}

func mustUsageEvent(t *testing.T, payload []byte) string {
	t.Helper()
	var usage dto.UsageLog
	require.NoError(t, json.Unmarshal(payload, &usage))
	return usage.Event
}

func TestBackoffDelayDoubles(t *testing.T) {
	svc := &syncService{backoff: 2 * time.Second}

	assert.Equal(t, 2*time.Second, svc.backoffDelay(1))
	assert.Equal(t, 4*time.Second, svc.backoffDelay(2))
	assert.Equal(t, 8*time.Second, svc.backoffDelay(3))
}

func TestPreferencesConflictServerWins(t *testing.T) {
	repo := newFakeQueueRepo()
	serverCopy, _ := json.Marshal(dto.PreferencesUpdate{
		Preferences: map[string]interface{}{"theme": "dark"},
		UpdatedAt:   time.Now(),
	})
	backend := &fakeBackend{
		preferencesErr: []error{&client.ConflictError{ServerPayload: serverCopy, ServerUpdatedAt: time.Now()}},
	}
	svc := newTestSyncService(repo, backend, nil, NewConflictResolver(ConflictServerWins, nil))
	ctx := context.Background()

	update := dto.PreferencesUpdate{
		Preferences: map[string]interface{}{"theme": "light"},
		UpdatedAt:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, svc.Enqueue(ctx, entity.OperationPreferencesUpdate, update, 0))
	require.NoError(t, svc.ProcessQueue(ctx))

	// Server copy stands: no re-send, item counts as synced.
	assert.Len(t, backend.preferences, 1)
	assert.Zero(t, repo.size())
}

func TestPreferencesConflictClientWinsResends(t *testing.T) {
	repo := newFakeQueueRepo()
	serverCopy, _ := json.Marshal(dto.PreferencesUpdate{
		Preferences: map[string]interface{}{"theme": "dark"},
	})
	backend := &fakeBackend{
		preferencesErr: []error{&client.ConflictError{ServerPayload: serverCopy, ServerUpdatedAt: time.Now()}},
	}
	svc := newTestSyncService(repo, backend, nil, NewConflictResolver(ConflictClientWins, nil))
	ctx := context.Background()

	update := dto.PreferencesUpdate{
		Preferences: map[string]interface{}{"theme": "light"},
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, svc.Enqueue(ctx, entity.OperationPreferencesUpdate, update, 0))
	require.NoError(t, svc.ProcessQueue(ctx))

	// Conflicted call plus the winning client re-send.
	require.Len(t, backend.preferences, 2)
	assert.Equal(t, "light", backend.preferences[1].Preferences["theme"])
	assert.Zero(t, repo.size())
}

func TestConsumeDrainsOnOnlineTransition(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{}
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	resolver := NewConflictResolver(ConflictServerWins, nil)
	svc := NewSyncService(repo, backend, nil, resolver, nil, bus, 3, time.Millisecond, noopLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Enqueue(ctx, entity.OperationUsageLog, dto.UsageLog{Event: "queued-offline"}, 0))
	require.NoError(t, svc.Consume(ctx))

	publishNetworkStatus(t, bus, true)

	assert.Eventually(t, func() bool {
		return repo.size() == 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, backend.calls())
}

func TestConsumeIgnoresOfflineTransition(t *testing.T) {
	repo := newFakeQueueRepo()
	backend := &fakeBackend{}
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	resolver := NewConflictResolver(ConflictServerWins, nil)
	svc := NewSyncService(repo, backend, nil, resolver, nil, bus, 3, time.Millisecond, noopLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Enqueue(ctx, entity.OperationUsageLog, dto.UsageLog{Event: "a"}, 0))
	require.NoError(t, svc.Consume(ctx))

	publishNetworkStatus(t, bus, false)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, repo.size())
	assert.Zero(t, backend.calls())
}

func publishNetworkStatus(t *testing.T, bus *gochannel.GoChannel, online bool) {
	t.Helper()
	payload, err := json.Marshal(dto.NetworkStatusEvent{Online: online})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(constant.TopicNetworkStatus, message.NewMessage(watermill.NewUUID(), payload)))
}
