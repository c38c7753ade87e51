package contract

import (
	"context"

	"auditpath-quiz-be/internal/entity"
	"auditpath-quiz-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkRepository interface {
	Create(ctx context.Context, chunk *entity.Chunk) error
	Update(ctx context.Context, chunk *entity.Chunk) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)

	// ClaimForProcessing atomically flips an idle/completed/failed chunk to
	// processing. Returns false when another generation run already holds it.
	ClaimForProcessing(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateMetadata(ctx context.Context, id uuid.UUID, metadata *entity.ChunkMetadata) error
}
