package mapper

import (
	"time"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/model"
)

type ChunkMasteryMapper struct{}

func NewChunkMasteryMapper() *ChunkMasteryMapper {
	return &ChunkMasteryMapper{}
}

func (m *ChunkMasteryMapper) ToEntity(c *model.ChunkMastery) *entity.ChunkMastery {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChunkMastery{
		Id:                  c.Id,
		UserId:              c.UserId,
		ChunkId:             c.ChunkId,
		CourseId:            c.CourseId,
		MasteryScore:        c.MasteryScore,
		LastReviewedSession: c.LastReviewedSession,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *ChunkMasteryMapper) ToModel(c *entity.ChunkMastery) *model.ChunkMastery {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.ChunkMastery{
		Id:                  c.Id,
		UserId:              c.UserId,
		ChunkId:             c.ChunkId,
		CourseId:            c.CourseId,
		MasteryScore:        c.MasteryScore,
		LastReviewedSession: c.LastReviewedSession,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           updatedAt,
	}
}

func (m *ChunkMasteryMapper) ToEntities(masteries []*model.ChunkMastery) []*entity.ChunkMastery {
	entities := make([]*entity.ChunkMastery, len(masteries))
	for i, c := range masteries {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
