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

type QuestionStatusRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuestionStatusMapper
}

func NewQuestionStatusRepository(db *gorm.DB) contract.QuestionStatusRepository {
	return &QuestionStatusRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuestionStatusMapper(),
	}
}

func (r *QuestionStatusRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *QuestionStatusRepositoryImpl) Upsert(ctx context.Context, status *entity.UserQuestionStatus) error {
	m := r.mapper.ToModel(status)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "consecutive_success", "consecutive_fails",
			"next_review_session", "last_answered_session", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*status = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuestionStatusRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserQuestionStatus, error) {
	var m model.UserQuestionStatus
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuestionStatusRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserQuestionStatus, error) {
	var models []*model.UserQuestionStatus
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuestionStatusRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UserQuestionStatus{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *QuestionStatusRepositoryImpl) FindDueByStatus(ctx context.Context, userId, courseId uuid.UUID, status string, sessionNumber, limit int, exclude []uuid.UUID) ([]*entity.UserQuestionStatus, error) {
	var models []*model.UserQuestionStatus
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userId, courseId).
		Where("status = ?", status).
		Where("next_review_session IS NOT NULL AND next_review_session <= ?", sessionNumber).
		Order("next_review_session ASC").
		Limit(limit)
	query = r.applySpecifications(query, specification.ExcludeQuestions{IDs: exclude})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
