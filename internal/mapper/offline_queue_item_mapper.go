package mapper

import (
	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/model"

	"gorm.io/datatypes"
)

type OfflineQueueItemMapper struct{}

func NewOfflineQueueItemMapper() *OfflineQueueItemMapper {
	return &OfflineQueueItemMapper{}
}

func (m *OfflineQueueItemMapper) ToEntity(i *model.OfflineQueueItem) *entity.OfflineQueueItem {
	if i == nil {
		return nil
	}

	return &entity.OfflineQueueItem{
		Id:            i.Id,
		Operation:     entity.OperationType(i.Operation),
		Payload:       []byte(i.Payload),
		Priority:      i.Priority,
		RetryCount:    i.RetryCount,
		LastAttemptAt: i.LastAttemptAt,
		ErrorMessage:  i.ErrorMessage,
		CreatedAt:     i.CreatedAt,
	}
}

func (m *OfflineQueueItemMapper) ToModel(i *entity.OfflineQueueItem) *model.OfflineQueueItem {
	if i == nil {
		return nil
	}

	return &model.OfflineQueueItem{
		Id:            i.Id,
		Operation:     string(i.Operation),
		Payload:       datatypes.JSON(i.Payload),
		Priority:      i.Priority,
		RetryCount:    i.RetryCount,
		LastAttemptAt: i.LastAttemptAt,
		ErrorMessage:  i.ErrorMessage,
		CreatedAt:     i.CreatedAt,
	}
}

func (m *OfflineQueueItemMapper) ToEntities(items []*model.OfflineQueueItem) []*entity.OfflineQueueItem {
	entities := make([]*entity.OfflineQueueItem, 0, len(items))
	for _, i := range items {
		entities = append(entities, m.ToEntity(i))
	}
	return entities
}
