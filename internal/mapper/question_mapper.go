package mapper

import (
	"encoding/json"
	"time"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionMapper struct{}

func NewQuestionMapper() *QuestionMapper {
	return &QuestionMapper{}
}

func (m *QuestionMapper) ToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}

	var deletedAt *time.Time
	if q.DeletedAt.Valid {
		t := q.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !q.UpdatedAt.IsZero() {
		t := q.UpdatedAt
		updatedAt = &t
	}

	var payload entity.QuestionPayload
	if len(q.Payload) > 0 {
		_ = json.Unmarshal(q.Payload, &payload)
	}

	return &entity.Question{
		Id:               q.Id,
		CourseId:         q.CourseId,
		ChunkId:          q.ChunkId,
		ParentQuestionId: q.ParentQuestionId,
		UsageType:        q.UsageType,
		ConceptTitle:     q.ConceptTitle,
		BloomLevel:       q.BloomLevel,
		IsFallback:       q.IsFallback,
		Payload:          payload,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
		IsDeleted:        q.DeletedAt.Valid,
	}
}

func (m *QuestionMapper) ToModel(q *entity.Question) *model.Question {
	if q == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if q.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *q.DeletedAt, Valid: true}
	} else if q.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if q.UpdatedAt != nil {
		updatedAt = *q.UpdatedAt
	}

	var payload datatypes.JSON
	if raw, err := json.Marshal(q.Payload); err == nil {
		payload = raw
	}

	return &model.Question{
		Id:               q.Id,
		CourseId:         q.CourseId,
		ChunkId:          q.ChunkId,
		ParentQuestionId: q.ParentQuestionId,
		UsageType:        q.UsageType,
		ConceptTitle:     q.ConceptTitle,
		BloomLevel:       q.BloomLevel,
		IsFallback:       q.IsFallback,
		Payload:          payload,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        updatedAt,
		DeletedAt:        deletedAt,
	}
}

func (m *QuestionMapper) ToEntities(questions []*model.Question) []*entity.Question {
	entities := make([]*entity.Question, len(questions))
	for i, q := range questions {
		entities[i] = m.ToEntity(q)
	}
	return entities
}
