package contract

import (
	"context"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Question, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindCached is the idempotency probe of the generation pipeline: one
	// question per (chunk, usage type, concept title) key.
	FindCached(ctx context.Context, chunkId uuid.UUID, usageType, conceptTitle string) (*entity.Question, error)

	// FindUnseenFollowups returns remediation questions the user has never
	// answered, newest first.
	FindUnseenFollowups(ctx context.Context, userId, courseId uuid.UUID, limit int, exclude []uuid.UUID) ([]*entity.Question, error)

	// FindUnseenByChunk returns training questions of one chunk the user has
	// not started or still holds on the active shelf.
	FindUnseenByChunk(ctx context.Context, userId, chunkId uuid.UUID, limit int, exclude []uuid.UUID) ([]*entity.Question, error)

	// FindUnseenByCourse is the chunk-agnostic fallback of FindUnseenByChunk.
	FindUnseenByCourse(ctx context.Context, userId, courseId uuid.UUID, limit int, exclude []uuid.UUID) ([]*entity.Question, error)
}
