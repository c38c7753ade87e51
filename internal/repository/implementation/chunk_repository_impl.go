package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"auditpath-quiz-be/internal/constant"
	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/mapper"
	"auditpath-quiz-be/internal/model"
	"auditpath-quiz-be/internal/repository/contract"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.Chunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkRepositoryImpl) Update(ctx context.Context, chunk *entity.Chunk) error {
	m := r.mapper.ToModel(chunk)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error) {
	var m model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// ClaimForProcessing is a compare-and-set on the status column. Only one
// caller wins; everyone else sees RowsAffected == 0.
func (r *ChunkRepositoryImpl) ClaimForProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Chunk{}).
		Where("id = ? AND status <> ?", id, constant.ChunkStatusProcessing).
		Update("status", constant.ChunkStatusProcessing)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ChunkRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Chunk{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ChunkRepositoryImpl) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata *entity.ChunkMetadata) error {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.Chunk{}).
		Where("id = ?", id).
		Update("metadata", raw).Error
}
