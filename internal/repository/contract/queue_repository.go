package contract

import (
	"context"

	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/repository/specification"

	"github.com/google/uuid"
)

type QueueRepository interface {
	Create(ctx context.Context, item *entity.OfflineQueueItem) error
	Update(ctx context.Context, item *entity.OfflineQueueItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OfflineQueueItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OfflineQueueItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
