package service

import (
	"context"
	"sort"
	"sync"

	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/repository/specification"

	"github.com/google/uuid"
)

// noopLogger keeps test output clean.
type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// fakeQueueRepo is an in-memory queue repository. It interprets the same
// specifications the gorm implementation translates to SQL.
type fakeQueueRepo struct {
	mu       sync.Mutex
	items    map[uuid.UUID]*entity.OfflineQueueItem
	findalls int
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{items: make(map[uuid.UUID]*entity.OfflineQueueItem)}
}

func (r *fakeQueueRepo) Create(ctx context.Context, item *entity.OfflineQueueItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *item
	r.items[item.Id] = &clone
	return nil
}

func (r *fakeQueueRepo) Update(ctx context.Context, item *entity.OfflineQueueItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *item
	r.items[item.Id] = &clone
	return nil
}

func (r *fakeQueueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeQueueRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OfflineQueueItem, error) {
	matched, err := r.FindAll(ctx, specs...)
	if err != nil || len(matched) == 0 {
		return nil, err
	}
	return matched[0], nil
}

func (r *fakeQueueRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OfflineQueueItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findalls++

	var matched []*entity.OfflineQueueItem
	ordered := false
	for _, item := range r.items {
		keep := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.Retryable:
				keep = keep && item.RetryCount < s.MaxRetries
			case specification.TerminalFailed:
				keep = keep && item.RetryCount >= s.MaxRetries
			case specification.ByID:
				keep = keep && item.Id == s.ID
			case specification.ByOperation:
				keep = keep && string(item.Operation) == s.Operation
			case specification.DrainOrder:
				ordered = true
			}
		}
		if keep {
			clone := *item
			matched = append(matched, &clone)
		}
	}

	if ordered {
		sort.SliceStable(matched, func(i, j int) bool {
			if matched[i].Priority != matched[j].Priority {
				return matched[i].Priority > matched[j].Priority
			}
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		})
	}
	return matched, nil
}

func (r *fakeQueueRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matched, err := r.FindAll(ctx, specs...)
	return int64(len(matched)), err
}

func (r *fakeQueueRepo) get(id uuid.UUID) *entity.OfflineQueueItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		clone := *item
		return &clone
	}
	return nil
}

func (r *fakeQueueRepo) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *fakeQueueRepo) onlyItem() *entity.OfflineQueueItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		clone := *item
		return &clone
	}
	return nil
}

// onlineSequence returns scripted connectivity answers, repeating the last
// one once exhausted.
type onlineSequence struct {
	mu      sync.Mutex
	answers []bool
}

func (o *onlineSequence) IsOnline() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.answers) == 0 {
		return true
	}
	answer := o.answers[0]
	if len(o.answers) > 1 {
		o.answers = o.answers[1:]
	}
	return answer
}
