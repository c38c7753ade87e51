package implementation

import (
	"context"
	"errors"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/mapper"
	"auditpath-quiz-be/internal/model"
	"auditpath-quiz-be/internal/repository/contract"
	"auditpath-quiz-be/internal/repository/specification"
	"auditpath-quiz-be/pkg/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuestionMapper
}

func NewQuestionRepository(db *gorm.DB) contract.QuestionRepository {
	return &QuestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuestionMapper(),
	}
}

func (r *QuestionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuestionRepositoryImpl) Create(ctx context.Context, question *entity.Question) error {
	m := r.mapper.ToModel(question)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*question = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuestionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error) {
	var m model.Question
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuestionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error) {
	var models []*model.Question
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuestionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Question{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *QuestionRepositoryImpl) FindCached(ctx context.Context, chunkId uuid.UUID, usageType, conceptTitle string) (*entity.Question, error) {
	return r.FindOne(ctx,
		specification.ByChunk{ChunkID: chunkId},
		specification.ByUsageType{UsageType: usageType},
		specification.ByConceptTitle{Title: conceptTitle},
	)
}

// unseenOrActive keeps questions the user either never answered or still
// holds on the active shelf. Exists-subquery rather than a join so the
// questions table stays the driving side.
func (r *QuestionRepositoryImpl) unseenOrActive(db *gorm.DB, userId uuid.UUID) *gorm.DB {
	return db.Where(`NOT EXISTS (
		SELECT 1 FROM user_question_statuses s
		WHERE s.question_id = questions.id AND s.user_id = ? AND s.status <> ?
	)`, userId, srs.StatusActive)
}

func (r *QuestionRepositoryImpl) FindUnseenFollowups(ctx context.Context, userId, courseId uuid.UUID, limit int, exclude []uuid.UUID) ([]*entity.Question, error) {
	var models []*model.Question
	query := r.db.WithContext(ctx).
		Where("course_id = ?", courseId).
		Where("parent_question_id IS NOT NULL").
		Where(`NOT EXISTS (
			SELECT 1 FROM user_question_statuses s
			WHERE s.question_id = questions.id AND s.user_id = ?
		)`, userId).
		Order("created_at DESC").
		Limit(limit)
	query = r.applySpecifications(query, specification.ExcludeIDs{IDs: exclude})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuestionRepositoryImpl) FindUnseenByChunk(ctx context.Context, userId, chunkId uuid.UUID, limit int, exclude []uuid.UUID) ([]*entity.Question, error) {
	var models []*model.Question
	query := r.unseenOrActive(r.db.WithContext(ctx), userId).
		Where("chunk_id = ?", chunkId).
		Where("usage_type = ?", string(srs.UsageTraining)).
		Order("created_at ASC").
		Limit(limit)
	query = r.applySpecifications(query, specification.ExcludeIDs{IDs: exclude})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuestionRepositoryImpl) FindUnseenByCourse(ctx context.Context, userId, courseId uuid.UUID, limit int, exclude []uuid.UUID) ([]*entity.Question, error) {
	var models []*model.Question
	query := r.unseenOrActive(r.db.WithContext(ctx), userId).
		Where("course_id = ?", courseId).
		Where("usage_type = ?", string(srs.UsageTraining)).
		Order("created_at ASC").
		Limit(limit)
	query = r.applySpecifications(query, specification.ExcludeIDs{IDs: exclude})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
