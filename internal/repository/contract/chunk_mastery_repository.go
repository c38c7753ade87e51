package contract

import (
	"context"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkMasteryRepository interface {
	Upsert(ctx context.Context, mastery *entity.ChunkMastery) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChunkMastery, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChunkMastery, error)

	// FindFrontier returns the most recently touched mastery row for the
	// user within a course: the chunk they are currently working through.
	FindFrontier(ctx context.Context, userId, courseId uuid.UUID) (*entity.ChunkMastery, error)
}
