package mapper

import (
	"time"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/model"
)

type QuestionStatusMapper struct{}

func NewQuestionStatusMapper() *QuestionStatusMapper {
	return &QuestionStatusMapper{}
}

func (m *QuestionStatusMapper) ToEntity(s *model.UserQuestionStatus) *entity.UserQuestionStatus {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserQuestionStatus{
		Id:                  s.Id,
		UserId:              s.UserId,
		QuestionId:          s.QuestionId,
		CourseId:            s.CourseId,
		Status:              s.Status,
		ConsecutiveSuccess:  s.ConsecutiveSuccess,
		ConsecutiveFails:    s.ConsecutiveFails,
		NextReviewSession:   s.NextReviewSession,
		LastAnsweredSession: s.LastAnsweredSession,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *QuestionStatusMapper) ToModel(s *entity.UserQuestionStatus) *model.UserQuestionStatus {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.UserQuestionStatus{
		Id:                  s.Id,
		UserId:              s.UserId,
		QuestionId:          s.QuestionId,
		CourseId:            s.CourseId,
		Status:              s.Status,
		ConsecutiveSuccess:  s.ConsecutiveSuccess,
		ConsecutiveFails:    s.ConsecutiveFails,
		NextReviewSession:   s.NextReviewSession,
		LastAnsweredSession: s.LastAnsweredSession,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *QuestionStatusMapper) ToEntities(statuses []*model.UserQuestionStatus) []*entity.UserQuestionStatus {
	entities := make([]*entity.UserQuestionStatus, len(statuses))
	for i, s := range statuses {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
