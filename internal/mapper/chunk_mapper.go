package mapper

import (
	"encoding/json"
	"time"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var meta *entity.ChunkMetadata
	if len(c.Metadata) > 0 {
		parsed := entity.ChunkMetadata{}
		// Malformed metadata is treated as absent; the pipeline regenerates it.
		if err := json.Unmarshal(c.Metadata, &parsed); err == nil {
			meta = &parsed
		}
	}

	return &entity.Chunk{
		Id:        c.Id,
		CourseId:  c.CourseId,
		Title:     c.Title,
		Content:   c.Content,
		Status:    c.Status,
		Metadata:  meta,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: c.DeletedAt.Valid,
	}
}

func (m *ChunkMapper) ToModel(c *entity.Chunk) *model.Chunk {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var meta datatypes.JSON
	if c.Metadata != nil {
		if raw, err := json.Marshal(c.Metadata); err == nil {
			meta = raw
		}
	}

	return &model.Chunk{
		Id:        c.Id,
		CourseId:  c.CourseId,
		Title:     c.Title,
		Content:   c.Content,
		Status:    c.Status,
		Metadata:  meta,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *ChunkMapper) ToEntities(chunks []*model.Chunk) []*entity.Chunk {
	entities := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
