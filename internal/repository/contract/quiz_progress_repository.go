package contract

import (
	"context"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuizProgressRepository interface {
	Create(ctx context.Context, record *entity.QuizProgress) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizProgress, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountDistinctSolved counts how many different questions of one chunk
	// the user has ever answered.
	CountDistinctSolved(ctx context.Context, userId, chunkId uuid.UUID) (int64, error)
}
