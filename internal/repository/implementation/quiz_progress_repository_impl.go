package implementation

import (
	"context"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/mapper"
	"auditpath-quiz-be/internal/model"
	"auditpath-quiz-be/internal/repository/contract"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizProgressRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizProgressMapper
}

func NewQuizProgressRepository(db *gorm.DB) contract.QuizProgressRepository {
	return &QuizProgressRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizProgressMapper(),
	}
}

func (r *QuizProgressRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuizProgressRepositoryImpl) Create(ctx context.Context, record *entity.QuizProgress) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuizProgressRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizProgress, error) {
	var models []*model.QuizProgress
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuizProgressRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.QuizProgress{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *QuizProgressRepositoryImpl) CountDistinctSolved(ctx context.Context, userId, chunkId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QuizProgress{}).
		Where("user_id = ? AND chunk_id = ?", userId, chunkId).
		Distinct("question_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
