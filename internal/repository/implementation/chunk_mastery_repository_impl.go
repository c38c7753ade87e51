package implementation

import (
	"context"
	"errors"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/mapper"
	"auditpath-quiz-be/internal/model"
	"auditpath-quiz-be/internal/repository/contract"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChunkMasteryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMasteryMapper
}

func NewChunkMasteryRepository(db *gorm.DB) contract.ChunkMasteryRepository {
	return &ChunkMasteryRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMasteryMapper(),
	}
}

func (r *ChunkMasteryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkMasteryRepositoryImpl) Upsert(ctx context.Context, mastery *entity.ChunkMastery) error {
	m := r.mapper.ToModel(mastery)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "chunk_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mastery_score", "last_reviewed_session", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*mastery = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChunkMasteryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChunkMastery, error) {
	var m model.ChunkMastery
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChunkMasteryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChunkMastery, error) {
	var models []*model.ChunkMastery
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChunkMasteryRepositoryImpl) FindFrontier(ctx context.Context, userId, courseId uuid.UUID) (*entity.ChunkMastery, error) {
	var m model.ChunkMastery
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userId, courseId).
		Order("updated_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
