package implementation

import (
	"context"
	"errors"

	"ai-legalassist-core/internal/entity"
	"ai-legalassist-core/internal/mapper"
	"ai-legalassist-core/internal/model"
	"ai-legalassist-core/internal/repository/contract"
	"ai-legalassist-core/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueueRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OfflineQueueItemMapper
}

func NewQueueRepository(db *gorm.DB) contract.QueueRepository {
	return &QueueRepositoryImpl{
		db:     db,
		mapper: mapper.NewOfflineQueueItemMapper(),
	}
}

func (r *QueueRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QueueRepositoryImpl) Create(ctx context.Context, item *entity.OfflineQueueItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueueRepositoryImpl) Update(ctx context.Context, item *entity.OfflineQueueItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *QueueRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.OfflineQueueItem{}, "id = ?", id).Error
}

func (r *QueueRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OfflineQueueItem, error) {
	var m model.OfflineQueueItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QueueRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OfflineQueueItem, error) {
	var models []*model.OfflineQueueItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QueueRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.OfflineQueueItem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
