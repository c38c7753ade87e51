package implementation

import (
	"context"
	"errors"
	"fmt"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/mapper"
	"auditpath-quiz-be/internal/model"
	"auditpath-quiz-be/internal/repository/contract"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CourseMapper
}

func NewCourseRepository(db *gorm.DB) contract.CourseRepository {
	return &CourseRepositoryImpl{
		db:     db,
		mapper: mapper.NewCourseMapper(),
	}
}

func (r *CourseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CourseRepositoryImpl) Create(ctx context.Context, course *entity.Course) error {
	m := r.mapper.ToModel(course)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*course = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseRepositoryImpl) Update(ctx context.Context, course *entity.Course) error {
	m := r.mapper.ToModel(course)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*course = *r.mapper.ToEntity(m)
	return nil
}

func (r *CourseRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Course{}, id).Error
}

func (r *CourseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	var m model.Course
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CourseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	var models []*model.Course
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// IncrementSession bumps the counter once per study day. The conditional
// UPDATE is the session-boundary check and the increment in one statement;
// when it matches no row the current counter is simply read back.
func (r *CourseRepositoryImpl) IncrementSession(ctx context.Context, userId, courseId uuid.UUID) (*contract.SessionCounter, error) {
	var updated []int
	err := r.db.WithContext(ctx).Raw(`
		UPDATE courses
		SET current_session = current_session + 1,
		    last_session_at = CURRENT_DATE,
		    updated_at = NOW()
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL
		  AND (last_session_at IS NULL OR last_session_at < CURRENT_DATE)
		RETURNING current_session`, courseId, userId).Scan(&updated).Error
	if err != nil {
		return nil, err
	}

	if len(updated) > 0 {
		return &contract.SessionCounter{CurrentSession: updated[0], IsNewSession: true}, nil
	}

	var m model.Course
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", courseId, userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %s not found for user", courseId)
		}
		return nil, err
	}
	return &contract.SessionCounter{CurrentSession: m.CurrentSession, IsNewSession: false}, nil
}
