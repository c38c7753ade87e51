package mapper

import (
	"encoding/json"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/model"

	"gorm.io/datatypes"
)

type QuizProgressMapper struct{}

func NewQuizProgressMapper() *QuizProgressMapper {
	return &QuizProgressMapper{}
}

func (m *QuizProgressMapper) ToEntity(p *model.QuizProgress) *entity.QuizProgress {
	if p == nil {
		return nil
	}

	var details *entity.QuizProgressDetails
	if len(p.Details) > 0 {
		parsed := entity.QuizProgressDetails{}
		if err := json.Unmarshal(p.Details, &parsed); err == nil {
			details = &parsed
		}
	}

	return &entity.QuizProgress{
		Id:              p.Id,
		UserId:          p.UserId,
		QuestionId:      p.QuestionId,
		CourseId:        p.CourseId,
		ChunkId:         p.ChunkId,
		SessionNumber:   p.SessionNumber,
		IsCorrect:       p.IsCorrect,
		IsBlank:         p.IsBlank,
		DurationSeconds: p.DurationSeconds,
		ScoreChange:     p.ScoreChange,
		Details:         details,
		CreatedAt:       p.CreatedAt,
	}
}

func (m *QuizProgressMapper) ToModel(p *entity.QuizProgress) *model.QuizProgress {
	if p == nil {
		return nil
	}

	var details datatypes.JSON
	if p.Details != nil {
		if raw, err := json.Marshal(p.Details); err == nil {
			details = raw
		}
	}

	return &model.QuizProgress{
		Id:              p.Id,
		UserId:          p.UserId,
		QuestionId:      p.QuestionId,
		CourseId:        p.CourseId,
		ChunkId:         p.ChunkId,
		SessionNumber:   p.SessionNumber,
		IsCorrect:       p.IsCorrect,
		IsBlank:         p.IsBlank,
		DurationSeconds: p.DurationSeconds,
		ScoreChange:     p.ScoreChange,
		Details:         details,
		CreatedAt:       p.CreatedAt,
	}
}

func (m *QuizProgressMapper) ToEntities(records []*model.QuizProgress) []*entity.QuizProgress {
	entities := make([]*entity.QuizProgress, len(records))
	for i, p := range records {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
